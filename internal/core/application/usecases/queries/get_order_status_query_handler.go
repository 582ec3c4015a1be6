package queries

import (
	"context"

	"dispatch/internal/pkg/errs"
)

// GetOrderStatusQueryHandler reads one tracked order.
type GetOrderStatusQueryHandler struct {
	orders OrderReader
}

// NewGetOrderStatusQueryHandler creates a handler over an OrderReader.
func NewGetOrderStatusQueryHandler(orders OrderReader) GetOrderStatusQueryHandler {
	return GetOrderStatusQueryHandler{orders: orders}
}

// Handle returns an ObjectNotFound error for orders that are not tracked.
func (h GetOrderStatusQueryHandler) Handle(_ context.Context, query GetOrderStatusQuery) (GetOrderStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderStatusQueryResponse{}, err
	}

	o, ok := h.orders.Order(query.OrderID())
	if !ok {
		return GetOrderStatusQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID())
	}
	return newOrderStatusResponse(o), nil
}
