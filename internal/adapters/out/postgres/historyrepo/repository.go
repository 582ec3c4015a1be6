package historyrepo

import (
	"context"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormStatusHistoryRepository implements ports.StatusHistoryRepository.
type GormStatusHistoryRepository struct {
	db *gorm.DB
}

// NewGormStatusHistoryRepository stores events in order_status_events. The
// table is created by postgres.Migrate.
func NewGormStatusHistoryRepository(db *gorm.DB) (*GormStatusHistoryRepository, error) {
	if db == nil {
		return nil, errs.NewValueIsRequiredError("db")
	}
	return &GormStatusHistoryRepository{db: db}, nil
}

// Add appends an event. Events are never updated.
func (r *GormStatusHistoryRepository) Add(ctx context.Context, event order.StatusEvent) error {
	if event.OrderID == 0 {
		return errs.NewInvalidArgumentError("order id")
	}
	if err := event.Status.Validate(); err != nil {
		return err
	}

	dto := fromDomain(event)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// ListByOrder returns the events of one order, oldest first.
func (r *GormStatusHistoryRepository) ListByOrder(ctx context.Context, orderID order.ID) ([]order.StatusEvent, error) {
	var dtos []StatusEventDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", uint64(orderID)).
		Order("occurred_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	events := make([]order.StatusEvent, 0, len(dtos))
	for _, dto := range dtos {
		event, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, nil
}

// LastOrderID returns MAX(order_id), or zero when the table is empty. Order
// IDs restart with the process, so startup seeds the sequence from it.
func (r *GormStatusHistoryRepository) LastOrderID(ctx context.Context) (order.ID, error) {
	var last uint64
	err := r.db.WithContext(ctx).
		Model(&StatusEventDTO{}).
		Select("COALESCE(MAX(order_id), 0)").
		Scan(&last).Error
	if err != nil {
		return 0, err
	}
	return order.ID(last), nil
}
