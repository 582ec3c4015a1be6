package ports

import (
	"context"

	"dispatch/internal/core/domain/model/order"
)

// StatusHistoryRepository stores the lifecycle steps of orders.
type StatusHistoryRepository interface {
	// Add appends one event.
	Add(ctx context.Context, event order.StatusEvent) error

	// ListByOrder returns the events of one order, oldest first. An order
	// without history yields an empty slice and no error.
	ListByOrder(ctx context.Context, orderID order.ID) ([]order.StatusEvent, error)

	// LastOrderID returns the highest order ID with recorded history, or
	// zero for an empty store.
	LastOrderID(ctx context.Context) (order.ID, error)
}
