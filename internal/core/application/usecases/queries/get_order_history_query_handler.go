package queries

import (
	"context"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// GetOrderHistoryQueryHandler reads the status history store. An order with
// no history that the tracker does not know either is reported as not found.
type GetOrderHistoryQueryHandler struct {
	orders  OrderReader
	history ports.StatusHistoryRepository
}

// NewGetOrderHistoryQueryHandler creates a handler over the history store.
// orders is consulted only to tell "no events yet" from "unknown order".
//
// Example:
//
//	handler := NewGetOrderHistoryQueryHandler(coordinator, historyRepo)
//	query, _ := NewGetOrderHistoryQuery(7)
//	events, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    return nil
//	}
func NewGetOrderHistoryQueryHandler(orders OrderReader, history ports.StatusHistoryRepository) GetOrderHistoryQueryHandler {
	return GetOrderHistoryQueryHandler{orders: orders, history: history}
}

// Handle returns the events oldest first. A tracked order without events
// yields an empty slice; an unknown one yields ObjectNotFound.
func (h GetOrderHistoryQueryHandler) Handle(ctx context.Context, query GetOrderHistoryQuery) ([]order.StatusEvent, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	events, err := h.history.ListByOrder(ctx, query.OrderID())
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		if _, ok := h.orders.Order(query.OrderID()); !ok {
			return nil, errs.NewObjectNotFoundError("order", query.OrderID())
		}
	}
	return events, nil
}
