package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrStartDeliveryCommandIsNotConstructed = errors.New(
	"StartDeliveryCommand must be created via NewStartDeliveryCommand constructor",
)

// StartDeliveryCommand reports that the driver picked the order up.
type StartDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderID  order.ID
	driverID kernel.UUID

	guard guard.ConstructorGuard
}

// NewStartDeliveryCommand creates a command for the pick-up step.
// Both the order ID and the assigned driver's ID are required.
func NewStartDeliveryCommand(orderID order.ID, driverID kernel.UUID) (StartDeliveryCommand, error) {
	command := StartDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setDriverID(driverID),
	); err != nil {
		return StartDeliveryCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrStartDeliveryCommandIsNotConstructed if validation fails.
func (c StartDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrStartDeliveryCommandIsNotConstructed)
}

// OrderID returns the order being picked up.
func (c StartDeliveryCommand) OrderID() order.ID {
	return c.orderID
}

// DriverID returns the driver picking it up.
func (c StartDeliveryCommand) DriverID() kernel.UUID {
	return c.driverID
}

func (c *StartDeliveryCommand) setOrderID(id order.ID) error {
	if id == 0 {
		return errs.NewValueIsRequiredError("order id")
	}
	c.orderID = id
	return nil
}

func (c *StartDeliveryCommand) setDriverID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.driverID = id
	return nil
}
