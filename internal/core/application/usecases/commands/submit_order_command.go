package commands

import (
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrSubmitOrderCommandIsNotConstructed = errors.New(
	"SubmitOrderCommand must be created via NewSubmitOrderCommand constructor",
)

// SubmitOrderItem is one raw order line. UnitPrice is a decimal string such
// as "9.50".
type SubmitOrderItem struct {
	Name      string
	UnitPrice string
	Quantity  int
}

// SubmitOrderInput is the raw order as received from a client.
type SubmitOrderInput struct {
	CustomerID    int64
	Street        string
	ZipCode       string
	X, Y          float64
	Email         string
	PaymentMethod string
	Items         []SubmitOrderItem
}

// SubmitOrderCommand turns raw client input into the values an Order is
// built from. The constructor only checks what it needs to build the
// address and line items; business rules such as the customer ID, email and
// payment method are enforced on admission.
//
// Example:
//
//	cmd, err := NewSubmitOrderCommand(SubmitOrderInput{
//	    CustomerID: 42, Street: "12 Main St", ZipCode: "94107", X: 3, Y: 4,
//	    Email: "ann@example.com", PaymentMethod: "card",
//	    Items: []SubmitOrderItem{{Name: "Margherita", UnitPrice: "9.50", Quantity: 2}},
//	})
//	if err != nil {
//	    return err
//	}
//	id, err := handler.Handle(ctx, cmd)
type SubmitOrderCommand struct { //nolint:recvcheck //using for validation
	customerID    int64
	address       kernel.Address
	email         string
	paymentMethod order.PaymentMethod
	items         []order.LineItem

	guard guard.ConstructorGuard
}

// NewSubmitOrderCommand parses the raw input into an address and line items.
// Returns every address and item problem at once, joined with errors.Join.
func NewSubmitOrderCommand(in SubmitOrderInput) (SubmitOrderCommand, error) {
	command := SubmitOrderCommand{
		customerID:    in.CustomerID,
		email:         in.Email,
		paymentMethod: order.PaymentMethod(in.PaymentMethod),
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setAddress(in.Street, in.ZipCode, in.X, in.Y),
		command.setItems(in.Items),
	); err != nil {
		return SubmitOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrSubmitOrderCommandIsNotConstructed if validation fails.
func (c SubmitOrderCommand) Validate() error {
	return c.guard.Validate(ErrSubmitOrderCommandIsNotConstructed)
}

// Order builds a fresh, not yet admitted order.
func (c SubmitOrderCommand) Order() *order.Order {
	return order.NewOrder(c.customerID, c.address, c.email, c.paymentMethod, c.items...)
}

func (c *SubmitOrderCommand) setAddress(street, zipCode string, x, y float64) error {
	location, err := kernel.NewLocation(x, y)
	if err != nil {
		return err
	}
	address, err := kernel.NewAddress(street, zipCode, location)
	if err != nil {
		return err
	}
	c.address = address
	return nil
}

func (c *SubmitOrderCommand) setItems(raw []SubmitOrderItem) error {
	var violations []error
	items := make([]order.LineItem, 0, len(raw))
	for i, r := range raw {
		price, err := decimal.NewFromString(r.UnitPrice)
		if err != nil {
			violations = append(violations, fmt.Errorf("item %d: unit price: %w", i, err))
			continue
		}
		item, err := order.NewLineItem(r.Name, price, r.Quantity)
		if err != nil {
			violations = append(violations, fmt.Errorf("item %d: %w", i, err))
			continue
		}
		items = append(items, item)
	}
	if err := errors.Join(violations...); err != nil {
		return err
	}
	c.items = items
	return nil
}
