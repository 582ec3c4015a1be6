package commands

import (
	"context"
)

// DispatchPendingCommandHandler runs one matching pass. Both the periodic
// job and POST /api/v1/dispatch use it.
type DispatchPendingCommandHandler struct {
	dispatcher PendingDispatcher
}

// NewDispatchPendingCommandHandler creates a handler for matching passes.
func NewDispatchPendingCommandHandler(dispatcher PendingDispatcher) DispatchPendingCommandHandler {
	return DispatchPendingCommandHandler{dispatcher: dispatcher}
}

// Handle returns how many orders were assigned in this pass.
func (h DispatchPendingCommandHandler) Handle(ctx context.Context, cmd DispatchPendingCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}
	return h.dispatcher.DispatchPending(ctx), nil
}
