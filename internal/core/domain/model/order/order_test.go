package order_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validAddress(t *testing.T) kernel.Address {
	t.Helper()
	addr, err := kernel.NewAddress("12 Main St", "94107", kernel.MustNewLocation(3, 4))
	require.NoError(t, err)
	return addr
}

func item(t *testing.T, name, price string, qty int) order.LineItem {
	t.Helper()
	li, err := order.NewLineItem(name, decimal.RequireFromString(price), qty)
	require.NoError(t, err)
	return li
}

func TestNewOrder(t *testing.T) {
	t.Run("should build placed order with computed total", func(t *testing.T) {
		o := order.NewOrder(42, validAddress(t), " ann@example.com ", order.PaymentCard,
			item(t, "Margherita", "9.50", 2), item(t, "Cola", "1.25", 1))

		require.NoError(t, o.Validate())
		assert.Equal(t, order.ID(0), o.ID())
		assert.Equal(t, int64(42), o.CustomerID())
		assert.Equal(t, "ann@example.com", o.Email())
		assert.Equal(t, order.PaymentCard, o.PaymentMethod())
		assert.Equal(t, order.Placed, o.Status())
		assert.Len(t, o.Items(), 2)
		assert.True(t, decimal.RequireFromString("20.25").Equal(o.Total()))
		assert.Nil(t, o.DriverID())
		_, ok := o.EstimatedDelivery()
		assert.False(t, ok)
	})

	t.Run("should not share the caller's item slice", func(t *testing.T) {
		items := []order.LineItem{item(t, "Soup", "4.00", 1)}
		o := order.NewOrder(1, validAddress(t), "a@b.io", order.PaymentCash, items...)

		items[0] = item(t, "Steak", "40.00", 1)
		assert.Equal(t, "Soup", o.Items()[0].Name())
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("should report every violation at once", func(t *testing.T) {
		o := order.NewOrder(0, kernel.Address{}, "not-an-email", order.PaymentMethod("barter"))

		err := o.Validate()

		require.ErrorIs(t, err, errs.ErrOrderInvalid)
		var invalid *errs.OrderInvalidError
		require.ErrorAs(t, err, &invalid)
		assert.Len(t, invalid.Violations, 5)
		assert.Contains(t, err.Error(), "customer id")
		assert.Contains(t, err.Error(), "items")
		assert.Contains(t, err.Error(), "delivery location")
		assert.Contains(t, err.Error(), "email")
		assert.Contains(t, err.Error(), "payment method")
	})

	t.Run("should reject missing email", func(t *testing.T) {
		o := order.NewOrder(1, validAddress(t), "", order.PaymentCard, item(t, "Tea", "2", 1))

		err := o.Validate()

		require.ErrorIs(t, err, errs.ErrOrderInvalid)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject display-name email form", func(t *testing.T) {
		o := order.NewOrder(1, validAddress(t), "Ann <ann@example.com>", order.PaymentCard, item(t, "Tea", "2", 1))

		require.ErrorIs(t, o.Validate(), errs.ErrOrderInvalid)
	})

	t.Run("should reject email without domain dot", func(t *testing.T) {
		o := order.NewOrder(1, validAddress(t), "ann@localhost", order.PaymentCard, item(t, "Tea", "2", 1))

		require.ErrorIs(t, o.Validate(), errs.ErrOrderInvalid)
	})

	t.Run("should reject zero-value order", func(t *testing.T) {
		o := &order.Order{}

		err := o.Validate()

		require.ErrorIs(t, err, errs.ErrOrderInvalid)
		require.ErrorIs(t, err, order.ErrOrderIsNotConstructed)
	})

	t.Run("should reject nil order", func(t *testing.T) {
		var o *order.Order

		require.ErrorIs(t, o.Validate(), errs.ErrInvalidArgument)
	})
}

func TestOrder_Items(t *testing.T) {
	t.Run("should recompute total on add and remove", func(t *testing.T) {
		o := order.NewOrder(1, validAddress(t), "a@b.io", order.PaymentCard, item(t, "Tea", "2.00", 3))

		require.NoError(t, o.AddItem(item(t, "Cake", "3.50", 2)))
		assert.True(t, decimal.RequireFromString("13").Equal(o.Total()))

		require.NoError(t, o.RemoveItem(0))
		assert.True(t, decimal.RequireFromString("7").Equal(o.Total()))
		assert.Equal(t, "Cake", o.Items()[0].Name())
	})

	t.Run("should reject out of range removal", func(t *testing.T) {
		o := order.NewOrder(1, validAddress(t), "a@b.io", order.PaymentCard, item(t, "Tea", "2.00", 1))

		require.ErrorIs(t, o.RemoveItem(1), errs.ErrValueIsOutOfRange)
	})

	t.Run("should freeze items once admitted", func(t *testing.T) {
		o := order.NewOrder(1, validAddress(t), "a@b.io", order.PaymentCard, item(t, "Tea", "2.00", 1))
		require.NoError(t, o.Admit(7))

		require.ErrorIs(t, o.AddItem(item(t, "Cake", "1", 1)), order.ErrOrderIsAdmitted)
		require.ErrorIs(t, o.RemoveItem(0), order.ErrOrderIsAdmitted)
		assert.True(t, decimal.RequireFromString("2").Equal(o.Total()))
	})
}

func TestOrder_Admit(t *testing.T) {
	t.Run("should assign id once", func(t *testing.T) {
		o := order.NewOrder(1, validAddress(t), "a@b.io", order.PaymentCard, item(t, "Tea", "2", 1))

		require.NoError(t, o.Admit(3))
		assert.Equal(t, order.ID(3), o.ID())
		require.ErrorIs(t, o.Admit(4), order.ErrOrderIsAdmitted)
		assert.Equal(t, order.ID(3), o.ID())
	})

	t.Run("should reject zero id", func(t *testing.T) {
		o := order.NewOrder(1, validAddress(t), "a@b.io", order.PaymentCard, item(t, "Tea", "2", 1))

		require.ErrorIs(t, o.Admit(0), errs.ErrInvalidArgument)
	})
}

func TestOrder_Apply(t *testing.T) {
	t.Run("should walk the full lifecycle", func(t *testing.T) {
		o := order.NewOrder(1, validAddress(t), "a@b.io", order.PaymentCard, item(t, "Tea", "2", 1))
		driverID := kernel.NewUUID()
		eta := time.Date(2026, 1, 1, 12, 30, 0, 0, time.UTC)

		require.NoError(t, o.Apply(order.Transition{To: order.Accepted, DriverID: &driverID}))
		require.NoError(t, o.Apply(order.Transition{To: order.InDelivery, ETA: &eta}))
		require.NoError(t, o.Apply(order.Transition{To: order.Delivered}))

		assert.Equal(t, order.Delivered, o.Status())
		require.NotNil(t, o.DriverID())
		assert.True(t, driverID.IsEqual(*o.DriverID()))
		got, ok := o.EstimatedDelivery()
		require.True(t, ok)
		assert.Equal(t, eta, got)
	})

	t.Run("should reject skipping a stage", func(t *testing.T) {
		o := order.NewOrder(1, validAddress(t), "a@b.io", order.PaymentCard, item(t, "Tea", "2", 1))

		err := o.Apply(order.Transition{To: order.Delivered})

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, order.Placed, o.Status())
	})

	t.Run("should reject moving backward and leaving terminal state", func(t *testing.T) {
		o := order.NewOrder(1, validAddress(t), "a@b.io", order.PaymentCard, item(t, "Tea", "2", 1))
		require.NoError(t, o.Apply(order.Transition{To: order.Accepted}))

		require.ErrorIs(t, o.Apply(order.Transition{To: order.Placed}), errs.ErrInvalidTransition)

		require.NoError(t, o.Apply(order.Transition{To: order.InDelivery}))
		require.NoError(t, o.Apply(order.Transition{To: order.Delivered}))
		require.ErrorIs(t, o.Apply(order.Transition{To: order.Delivered}), errs.ErrInvalidTransition)
	})
}
