package commands

import (
	"context"

	"dispatch/internal/core/domain/model/driver"
)

// RegisterDriverCommandHandler builds the driver and registers it, which
// also retries pending orders.
type RegisterDriverCommandHandler struct {
	registrar DriverRegistrar
}

// NewRegisterDriverCommandHandler creates a handler for driver registration.
func NewRegisterDriverCommandHandler(registrar DriverRegistrar) RegisterDriverCommandHandler {
	return RegisterDriverCommandHandler{registrar: registrar}
}

// Handle builds the driver and registers it. Re-registering an available
// driver replaces its record; re-registering a busy one returns DriverBusy.
func (h RegisterDriverCommandHandler) Handle(ctx context.Context, cmd RegisterDriverCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	d, err := driver.NewDriver(cmd.DriverID(), cmd.Name(), cmd.Vehicle())
	if err != nil {
		return err
	}
	if location, ok := cmd.Location(); ok {
		if err = d.UpdateLocation(location); err != nil {
			return err
		}
	}

	return h.registrar.RegisterDriver(ctx, d)
}
