package commands

import (
	"context"
)

// CompleteDeliveryCommandHandler closes a delivery; the freed driver is
// offered to pending orders straight away.
type CompleteDeliveryCommandHandler struct {
	completer DeliveryCompleter
}

// NewCompleteDeliveryCommandHandler creates a handler for delivery completion.
//
// Example:
//
//	handler := NewCompleteDeliveryCommandHandler(coordinator)
//	cmd, err := NewCompleteDeliveryCommand(orderID, driverID)
//	if err != nil {
//	    return err
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("delivery %s not closed: %w", orderID, err)
//	}
func NewCompleteDeliveryCommandHandler(completer DeliveryCompleter) CompleteDeliveryCommandHandler {
	return CompleteDeliveryCommandHandler{completer: completer}
}

// Handle marks the order delivered and frees the driver. An order that is
// still accepted passes through in_delivery first. Returns ProcessingFailed
// when the driver is not busy with exactly this order.
func (h CompleteDeliveryCommandHandler) Handle(ctx context.Context, cmd CompleteDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.completer.CompleteDelivery(ctx, cmd.OrderID(), cmd.DriverID())
}
