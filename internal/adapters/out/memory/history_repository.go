// Package memory keeps status history in process memory. It is the default
// store when no database is configured.
package memory

import (
	"context"
	"slices"
	"sync"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

type StatusHistoryRepository struct {
	mu     sync.RWMutex
	events map[order.ID][]order.StatusEvent
}

// NewStatusHistoryRepository returns an empty store.
func NewStatusHistoryRepository() *StatusHistoryRepository {
	return &StatusHistoryRepository{events: make(map[order.ID][]order.StatusEvent)}
}

func (r *StatusHistoryRepository) Add(_ context.Context, event order.StatusEvent) error {
	if event.OrderID == 0 {
		return errs.NewInvalidArgumentError("order id")
	}
	if err := event.Status.Validate(); err != nil {
		return err
	}
	if event.DriverID != nil {
		id := *event.DriverID
		event.DriverID = &id
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.events[event.OrderID] = append(r.events[event.OrderID], event)
	return nil
}

// ListByOrder returns a copy of the stored events in insertion order.
func (r *StatusHistoryRepository) ListByOrder(_ context.Context, orderID order.ID) ([]order.StatusEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	events := slices.Clone(r.events[orderID])
	if events == nil {
		events = []order.StatusEvent{}
	}
	return events, nil
}

// LastOrderID returns the highest order ID with at least one event.
func (r *StatusHistoryRepository) LastOrderID(_ context.Context) (order.ID, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var last order.ID
	for id := range r.events {
		last = max(last, id)
	}
	return last, nil
}
