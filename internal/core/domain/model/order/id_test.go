package order_test

import (
	"sync"
	"testing"

	"dispatch/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequence(t *testing.T) {
	t.Run("should start at one", func(t *testing.T) {
		seq := order.NewSequence()

		assert.Equal(t, order.ID(1), seq.Next())
		assert.Equal(t, order.ID(2), seq.Next())
	})

	t.Run("should continue after a seeded value", func(t *testing.T) {
		// Arrange
		seq := order.NewSequenceFrom(41)

		// Act
		first, second := seq.Next(), seq.Next()

		// Assert
		assert.Equal(t, order.ID(42), first)
		assert.Equal(t, order.ID(43), second)
	})

	t.Run("should behave like a fresh sequence when seeded with zero", func(t *testing.T) {
		assert.Equal(t, order.ID(1), order.NewSequenceFrom(0).Next())
	})

	t.Run("should never repeat under concurrency", func(t *testing.T) {
		seq := order.NewSequence()
		const n = 200
		ids := make(chan order.ID, n)

		var wg sync.WaitGroup
		for range n {
			wg.Add(1)
			go func() {
				defer wg.Done()
				ids <- seq.Next()
			}()
		}
		wg.Wait()
		close(ids)

		seen := make(map[order.ID]struct{}, n)
		for id := range ids {
			seen[id] = struct{}{}
		}
		assert.Len(t, seen, n)
	})
}

func TestParseID(t *testing.T) {
	id, err := order.ParseID("17")
	require.NoError(t, err)
	assert.Equal(t, order.ID(17), id)
	assert.Equal(t, "17", id.String())

	_, err = order.ParseID("-1")
	require.Error(t, err)
}
