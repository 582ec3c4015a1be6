package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOrderStatusQueryIsNotConstructed = errors.New(
	"GetOrderStatusQuery must be created via NewGetOrderStatusQuery constructor",
)

// GetOrderStatusQuery fetches the tracked state of one order.
//
// Example:
//
//	query, err := NewGetOrderStatusQuery(orderID)
//	if err != nil {
//	    return err
//	}
//	status, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // unknown order
//	}
type GetOrderStatusQuery struct {
	orderID order.ID
	guard   guard.ConstructorGuard
}

// NewGetOrderStatusQuery requires a non-zero order ID.
func NewGetOrderStatusQuery(orderID order.ID) (GetOrderStatusQuery, error) {
	if orderID == 0 {
		return GetOrderStatusQuery{}, errs.NewValueIsRequiredError("order id")
	}
	return GetOrderStatusQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderStatusQueryIsNotConstructed if validation fails.
func (q GetOrderStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderStatusQueryIsNotConstructed)
}

// OrderID returns the requested order.
func (q GetOrderStatusQuery) OrderID() order.ID {
	return q.orderID
}

// GetOrderStatusQueryResponse is the read model of one order.
type GetOrderStatusQueryResponse struct {
	ID                order.ID
	CustomerID        int64
	Status            order.Status
	Total             decimal.Decimal
	Address           kernel.Address
	DriverID          *kernel.UUID
	EstimatedDelivery *time.Time
}

func newOrderStatusResponse(o *order.Order) GetOrderStatusQueryResponse {
	resp := GetOrderStatusQueryResponse{
		ID:         o.ID(),
		CustomerID: o.CustomerID(),
		Status:     o.Status(),
		Total:      o.Total(),
		Address:    o.Address(),
		DriverID:   o.DriverID(),
	}
	if eta, ok := o.EstimatedDelivery(); ok {
		resp.EstimatedDelivery = &eta
	}
	return resp
}
