package order

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
)

// StatusEvent records one successful lifecycle step of an order.
type StatusEvent struct {
	OrderID    ID
	Status     Status
	DriverID   *kernel.UUID
	OccurredAt time.Time
}

// NewStatusEvent snapshots the order's current status and driver.
func NewStatusEvent(o *Order, occurredAt time.Time) StatusEvent {
	return StatusEvent{
		OrderID:    o.ID(),
		Status:     o.Status(),
		DriverID:   o.DriverID(),
		OccurredAt: occurredAt,
	}
}
