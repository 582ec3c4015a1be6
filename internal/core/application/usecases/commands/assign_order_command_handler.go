package commands

import (
	"context"

	"dispatch/internal/pkg/errs"
)

// AssignOrderCommandHandler resolves the order and driver by ID and assigns
// them, bypassing the matcher.
type AssignOrderCommandHandler struct {
	assigner OrderAssigner
}

// NewAssignOrderCommandHandler creates a handler for manual assignments.
// Requires an OrderAssigner that can look up orders and drivers and commit
// the pair, which the dispatch coordinator does.
//
// Example:
//
//	handler := NewAssignOrderCommandHandler(coordinator)
//	cmd, _ := NewAssignOrderCommand(7, driverID)
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrObjectNotFound):
//	    log.Println("unknown order or driver")
//	case errors.Is(err, errs.ErrDriverBusy):
//	    log.Println("driver is busy")
//	case err != nil:
//	    log.Printf("assignment failed: %v", err)
//	}
func NewAssignOrderCommandHandler(assigner OrderAssigner) AssignOrderCommandHandler {
	return AssignOrderCommandHandler{assigner: assigner}
}

// Handle resolves the order and the driver, then assigns them.
// Returns ObjectNotFound when either is unknown. Failures of the assignment
// itself come back as ProcessingFailed with the cause (DriverBusy,
// InvalidTransition) reachable through errors.Is.
func (h AssignOrderCommandHandler) Handle(ctx context.Context, cmd AssignOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	o, ok := h.assigner.Order(cmd.OrderID())
	if !ok {
		return errs.NewObjectNotFoundError("order", cmd.OrderID())
	}
	d, ok := h.assigner.Driver(cmd.DriverID())
	if !ok {
		return errs.NewObjectNotFoundError("driver", cmd.DriverID())
	}

	return h.assigner.AssignOrderToDriver(ctx, o, d)
}
