// Package intake admits new orders into the bounded pending-order queue.
package intake

import (
	"sync"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

// OrderQueue is a bounded FIFO of orders waiting for a driver.
//
// Enqueue performs the capacity check, validation, identity assignment and
// append under one lock, so concurrent submitters can never overrun the
// capacity. OrderQueue is safe for concurrent use.
type OrderQueue struct {
	mu       sync.Mutex
	capacity int
	ids      order.IDGenerator
	orders   []*order.Order
}

// NewOrderQueue creates an empty queue. Capacity must be positive.
func NewOrderQueue(capacity int, ids order.IDGenerator) (*OrderQueue, error) {
	if capacity <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("capacity", capacity, 1, "unbounded")
	}
	if ids == nil {
		return nil, errs.NewValueIsRequiredError("ids")
	}
	return &OrderQueue{
		capacity: capacity,
		ids:      ids,
		orders:   make([]*order.Order, 0, capacity),
	}, nil
}

// Enqueue admits o at the tail and returns its new identity.
//
// Errors:
//   - *errs.QueueFullError when the queue already holds Capacity orders
//   - *errs.OrderInvalidError listing every violated rule
//   - *errs.InvalidArgumentError for a nil or already admitted order
func (q *OrderQueue) Enqueue(o *order.Order) (order.ID, error) {
	if o == nil {
		return 0, errs.NewInvalidArgumentError("order")
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.orders) >= q.capacity {
		return 0, errs.NewQueueFullError(q.capacity)
	}
	if err := o.Validate(); err != nil {
		return 0, err
	}

	id := q.ids.Next()
	if err := o.Admit(id); err != nil {
		return 0, errs.NewInvalidArgumentErrorWithCause("order", err)
	}
	q.orders = append(q.orders, o)

	return id, nil
}

// Dequeue removes and returns the oldest order; ok is false when empty.
func (q *OrderQueue) Dequeue() (o *order.Order, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.orders) == 0 {
		return nil, false
	}
	o = q.orders[0]
	q.orders[0] = nil
	q.orders = q.orders[1:]
	return o, true
}

// Peek returns the oldest order without removing it.
func (q *OrderQueue) Peek() (o *order.Order, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.orders) == 0 {
		return nil, false
	}
	return q.orders[0], true
}

// Remove takes a specific order out of the queue wherever it sits. It
// reports whether the order was pending.
func (q *OrderQueue) Remove(id order.ID) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, o := range q.orders {
		if o.ID() == id {
			copy(q.orders[i:], q.orders[i+1:])
			q.orders[len(q.orders)-1] = nil
			q.orders = q.orders[:len(q.orders)-1]
			return true
		}
	}
	return false
}

func (q *OrderQueue) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.orders)
}

func (q *OrderQueue) IsEmpty() bool {
	return q.Size() == 0
}

func (q *OrderQueue) Capacity() int {
	return q.capacity
}

// PendingOrders returns a snapshot of the queue, oldest first. Later queue
// changes do not affect the returned slice.
func (q *OrderQueue) PendingOrders() []*order.Order {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]*order.Order(nil), q.orders...)
}
