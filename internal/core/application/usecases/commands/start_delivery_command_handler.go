package commands

import (
	"context"
)

// StartDeliveryCommandHandler moves an accepted order to in_delivery, which
// also fixes its estimated delivery time.
//
// Example:
//
//	handler := NewStartDeliveryCommandHandler(coordinator)
//	cmd, _ := NewStartDeliveryCommand(orderID, driverID)
//	if err := handler.Handle(ctx, cmd); errors.Is(err, errs.ErrInvalidTransition) {
//	    log.Println("order is not waiting for pick-up")
//	}
type StartDeliveryCommandHandler struct {
	starter DeliveryStarter
}

// NewStartDeliveryCommandHandler creates a handler for the pick-up step.
func NewStartDeliveryCommandHandler(starter DeliveryStarter) StartDeliveryCommandHandler {
	return StartDeliveryCommandHandler{starter: starter}
}

// Handle fails with ProcessingFailed when the driver is not the one assigned
// to the order or the order is not accepted.
func (h StartDeliveryCommandHandler) Handle(ctx context.Context, cmd StartDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.starter.StartDelivery(ctx, cmd.OrderID(), cmd.DriverID())
}
