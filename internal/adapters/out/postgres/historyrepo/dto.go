// Package historyrepo persists order status events with GORM.
package historyrepo

import (
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// StatusEventDTO is one row of the order_status_events table.
type StatusEventDTO struct {
	ID         uint       `gorm:"primaryKey;autoIncrement"`
	OrderID    uint64     `gorm:"index;not null"`
	Status     string     `gorm:"type:varchar(32);not null"`
	DriverID   *uuid.UUID `gorm:"type:uuid"`
	OccurredAt time.Time  `gorm:"not null"`
}

func (StatusEventDTO) TableName() string {
	return "order_status_events"
}

func fromDomain(event order.StatusEvent) StatusEventDTO {
	var driverID *uuid.UUID
	if event.DriverID != nil {
		raw := event.DriverID.Bytes()
		driverID = &raw
	}

	return StatusEventDTO{
		OrderID:    uint64(event.OrderID),
		Status:     event.Status.String(),
		DriverID:   driverID,
		OccurredAt: event.OccurredAt.UTC(),
	}
}

func toDomain(dto StatusEventDTO) (order.StatusEvent, error) {
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return order.StatusEvent{}, fmt.Errorf("event %d: %w", dto.ID, err)
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		id, err := kernel.UUIDFromBytes(dto.DriverID[:])
		if err != nil {
			return order.StatusEvent{}, fmt.Errorf("event %d: %w", dto.ID, err)
		}
		driverID = &id
	}

	return order.StatusEvent{
		OrderID:    order.ID(dto.OrderID),
		Status:     status,
		DriverID:   driverID,
		OccurredAt: dto.OccurredAt,
	}, nil
}
