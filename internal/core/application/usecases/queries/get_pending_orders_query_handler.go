package queries

import (
	"context"
)

// GetPendingOrdersQueryHandler lists queued orders, including those still
// awaiting payment. The fleet report job uses it to size the backlog.
type GetPendingOrdersQueryHandler struct {
	orders PendingOrderLister
}

// NewGetPendingOrdersQueryHandler creates a handler over a PendingOrderLister.
func NewGetPendingOrdersQueryHandler(orders PendingOrderLister) GetPendingOrdersQueryHandler {
	return GetPendingOrdersQueryHandler{orders: orders}
}

// Handle returns the queue in submission order.
func (h GetPendingOrdersQueryHandler) Handle(_ context.Context, query GetPendingOrdersQuery) ([]GetOrderStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	pending := h.orders.PendingOrders()
	result := make([]GetOrderStatusQueryResponse, 0, len(pending))
	for _, o := range pending {
		result = append(result, newOrderStatusResponse(o))
	}
	return result, nil
}
