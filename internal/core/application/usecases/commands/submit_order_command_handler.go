package commands

import (
	"context"

	"dispatch/internal/core/domain/model/order"
)

// SubmitOrderCommandHandler builds the order and hands it to the coordinator.
type SubmitOrderCommandHandler struct {
	submitter OrderSubmitter
}

// NewSubmitOrderCommandHandler creates a handler for order submission.
// Requires an OrderSubmitter, which admits, charges and confirms the order.
func NewSubmitOrderCommandHandler(submitter OrderSubmitter) SubmitOrderCommandHandler {
	return SubmitOrderCommandHandler{submitter: submitter}
}

// Handle returns the identity assigned on admission.
func (h SubmitOrderCommandHandler) Handle(ctx context.Context, cmd SubmitOrderCommand) (order.ID, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	id, err := h.submitter.SubmitOrder(ctx, cmd.Order())
	if err != nil {
		return 0, err
	}
	return id, nil
}
