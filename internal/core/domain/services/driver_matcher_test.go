package services_test

import (
	"testing"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func orderAt(t *testing.T, x, y float64) *order.Order {
	t.Helper()
	addr, err := kernel.NewAddress("1 Dock Rd", "10001", kernel.MustNewLocation(x, y))
	require.NoError(t, err)
	item, err := order.NewLineItem("Box", decimal.NewFromInt(5), 1)
	require.NoError(t, err)
	return order.NewOrder(1, addr, "c@d.io", order.PaymentCard, item)
}

func driverAt(t *testing.T, name string, x, y float64, ratings ...int) *driver.Driver {
	t.Helper()
	d, err := driver.NewDriver(kernel.NewUUID(), name, "bike")
	require.NoError(t, err)
	require.NoError(t, d.UpdateLocation(kernel.MustNewLocation(x, y)))
	for _, r := range ratings {
		require.NoError(t, d.AddRating(r))
	}
	return d
}

func TestDriverMatcher_Match(t *testing.T) {
	matcher := services.NewDriverMatcher()

	t.Run("should return no match for empty candidates", func(t *testing.T) {
		d, ok := matcher.Match(orderAt(t, 0, 0), nil)

		assert.False(t, ok)
		assert.Nil(t, d)
	})

	t.Run("should pick the closest driver when ratings are equal", func(t *testing.T) {
		o := orderAt(t, 0, 0)
		far := driverAt(t, "far", 6, 8, 4)
		near := driverAt(t, "near", 3, 0, 4)

		d, ok := matcher.Match(o, []*driver.Driver{far, near})

		require.True(t, ok)
		assert.Same(t, near, d)
	})

	t.Run("should let rating outweigh a small distance gap", func(t *testing.T) {
		o := orderAt(t, 0, 0)
		// 2*0.7 + (5-3)*0.3 = 2.0 versus 2.5*0.7 + 0 = 1.75
		mediocre := driverAt(t, "mediocre", 2, 0, 3)
		excellent := driverAt(t, "excellent", 2.5, 0, 5)

		d, ok := matcher.Match(o, []*driver.Driver{mediocre, excellent})

		require.True(t, ok)
		assert.Same(t, excellent, d)
	})

	t.Run("should exclude drivers beyond the maximum distance", func(t *testing.T) {
		o := orderAt(t, 0, 0)
		edge := driverAt(t, "edge", 6, 8, 5)
		beyond := driverAt(t, "beyond", 10, 0.1, 5)

		d, ok := matcher.Match(o, []*driver.Driver{beyond, edge})

		require.True(t, ok)
		assert.Same(t, edge, d)

		_, ok = matcher.Match(o, []*driver.Driver{beyond})
		assert.False(t, ok)
	})

	t.Run("should exclude drivers rated below the threshold", func(t *testing.T) {
		o := orderAt(t, 0, 0)
		poor := driverAt(t, "poor", 0, 0, 2, 3)

		_, ok := matcher.Match(o, []*driver.Driver{poor})

		assert.False(t, ok)
	})

	t.Run("should treat unrated drivers as neutral", func(t *testing.T) {
		o := orderAt(t, 0, 0)
		rookie := driverAt(t, "rookie", 1, 0)

		d, ok := matcher.Match(o, []*driver.Driver{rookie})

		require.True(t, ok)
		assert.Same(t, rookie, d)
	})

	t.Run("should exclude drivers with unknown location", func(t *testing.T) {
		o := orderAt(t, 0, 0)
		ghost, err := driver.NewDriver(kernel.NewUUID(), "ghost", "car")
		require.NoError(t, err)

		_, ok := matcher.Match(o, []*driver.Driver{ghost})

		assert.False(t, ok)
	})

	t.Run("should exclude busy and unconstructed drivers", func(t *testing.T) {
		o := orderAt(t, 0, 0)
		busy := driverAt(t, "busy", 0, 0, 5)
		require.NoError(t, busy.AssignOrder(9))

		_, ok := matcher.Match(o, []*driver.Driver{busy, {}, nil})

		assert.False(t, ok)
	})

	t.Run("should break ties by input order", func(t *testing.T) {
		o := orderAt(t, 0, 0)
		first := driverAt(t, "first", 3, 4, 4)
		second := driverAt(t, "second", 4, 3, 4)

		d, ok := matcher.Match(o, []*driver.Driver{first, second})
		require.True(t, ok)
		assert.Same(t, first, d)

		d, ok = matcher.Match(o, []*driver.Driver{second, first})
		require.True(t, ok)
		assert.Same(t, second, d)
	})

	t.Run("should be deterministic and not mutate inputs", func(t *testing.T) {
		o := orderAt(t, 0, 0)
		a := driverAt(t, "a", 1, 1, 4)
		b := driverAt(t, "b", 2, 2, 5)
		candidates := []*driver.Driver{a, b}

		first, _ := matcher.Match(o, candidates)
		for range 10 {
			again, _ := matcher.Match(o, candidates)
			assert.Same(t, first, again)
		}
		assert.True(t, a.IsAvailable())
		assert.True(t, b.IsAvailable())
		assert.Equal(t, order.Placed, o.Status())
	})

	t.Run("should match the example driver", func(t *testing.T) {
		o := orderAt(t, 0, 0)
		d1 := driverAt(t, "D1", 3, 0, 4, 5)

		d, ok := matcher.Match(o, []*driver.Driver{d1})

		require.True(t, ok)
		assert.Same(t, d1, d)
		score, eligible := matcher.Score(o, d1)
		require.True(t, eligible)
		assert.InDelta(t, 3*0.7+0.5*0.3, score, 1e-9)
	})
}
