package commands

import (
	"context"
)

// UpdateDriverLocationCommandHandler records a driver's position and retries
// pending orders, since the driver may now be in range.
type UpdateDriverLocationCommandHandler struct {
	updater DriverLocationUpdater
}

// NewUpdateDriverLocationCommandHandler creates a handler for position updates.
func NewUpdateDriverLocationCommandHandler(updater DriverLocationUpdater) UpdateDriverLocationCommandHandler {
	return UpdateDriverLocationCommandHandler{updater: updater}
}

func (h UpdateDriverLocationCommandHandler) Handle(ctx context.Context, cmd UpdateDriverLocationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.updater.UpdateDriverLocation(ctx, cmd.DriverID(), cmd.Location())
}
