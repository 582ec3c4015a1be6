package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrAssignOrderCommandIsNotConstructed = errors.New(
	"AssignOrderCommand must be created via NewAssignOrderCommand constructor",
)

// AssignOrderCommand manually assigns a pending order to a specific driver.
type AssignOrderCommand struct { //nolint:recvcheck //using for validation
	orderID  order.ID
	driverID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignOrderCommand creates a command to hand one pending order to one
// driver chosen by the caller instead of the matcher.
// A zero order ID or an unset driver ID is rejected; both problems are
// reported together when both are present.
//
// Example:
//
//	cmd, err := NewAssignOrderCommand(orderID, driverID)
//	if err != nil {
//	    return fmt.Errorf("invalid assignment: %w", err)
//	}
//	if err := handler.Handle(ctx, cmd); errors.Is(err, errs.ErrDriverBusy) {
//	    log.Println("driver already has an order")
//	}
func NewAssignOrderCommand(orderID order.ID, driverID kernel.UUID) (AssignOrderCommand, error) {
	command := AssignOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setDriverID(driverID),
	); err != nil {
		return AssignOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAssignOrderCommandIsNotConstructed if validation fails.
func (c AssignOrderCommand) Validate() error {
	return c.guard.Validate(ErrAssignOrderCommandIsNotConstructed)
}

// OrderID returns the order to assign.
func (c AssignOrderCommand) OrderID() order.ID {
	return c.orderID
}

// DriverID returns the driver that takes the order.
func (c AssignOrderCommand) DriverID() kernel.UUID {
	return c.driverID
}

func (c *AssignOrderCommand) setOrderID(id order.ID) error {
	if id == 0 {
		return errs.NewValueIsRequiredError("order id")
	}
	c.orderID = id
	return nil
}

func (c *AssignOrderCommand) setDriverID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.driverID = id
	return nil
}
