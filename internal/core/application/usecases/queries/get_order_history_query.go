package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrGetOrderHistoryQueryIsNotConstructed = errors.New(
	"GetOrderHistoryQuery must be created via NewGetOrderHistoryQuery constructor",
)

// GetOrderHistoryQuery lists the recorded status changes of one order,
// oldest first.
type GetOrderHistoryQuery struct {
	orderID order.ID
	guard   guard.ConstructorGuard
}

// NewGetOrderHistoryQuery requires a non-zero order ID.
func NewGetOrderHistoryQuery(orderID order.ID) (GetOrderHistoryQuery, error) {
	if orderID == 0 {
		return GetOrderHistoryQuery{}, errs.NewValueIsRequiredError("order id")
	}
	return GetOrderHistoryQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderHistoryQueryIsNotConstructed if validation fails.
func (q GetOrderHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderHistoryQueryIsNotConstructed)
}

// OrderID returns the order whose history is requested.
func (q GetOrderHistoryQuery) OrderID() order.ID {
	return q.orderID
}
