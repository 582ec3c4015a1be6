package commands

import (
	"errors"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	ErrRegisterDriverCommandIsNotConstructed = errors.New(
		"RegisterDriverCommand must be created via NewRegisterDriverCommand constructor",
	)
	ErrNameIsRequired    = errs.NewValueIsRequiredError("name")
	ErrVehicleIsRequired = errs.NewValueIsRequiredError("vehicle")
)

// RegisterDriverCommand adds a driver to the pool. A fresh ID is generated
// unless the caller re-registers an existing driver; location is optional.
//
// Example:
//
//	loc := kernel.MustNewLocation(2, 3)
//	cmd, err := NewRegisterDriverCommand(nil, "Dana", "scooter", &loc)
//	if err != nil {
//	    return err
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return err
//	}
//	fmt.Println("registered", cmd.DriverID())
type RegisterDriverCommand struct { //nolint:recvcheck //using for validation
	driverID kernel.UUID
	name     string
	vehicle  string
	location *kernel.Location

	guard guard.ConstructorGuard
}

// NewRegisterDriverCommand creates a command to add a driver to the pool.
// A nil driverID generates a fresh one. Name and vehicle must not be blank;
// location is optional but must be valid when given.
func NewRegisterDriverCommand(
	driverID *kernel.UUID,
	name, vehicle string,
	location *kernel.Location,
) (RegisterDriverCommand, error) {
	command := RegisterDriverCommand{
		guard: guard.NewConstructorGuard(),
	}

	id := kernel.NewUUID()
	if driverID != nil {
		id = *driverID
	}

	if err := errors.Join(
		command.setDriverID(id),
		command.setName(name),
		command.setVehicle(vehicle),
		command.setLocation(location),
	); err != nil {
		return RegisterDriverCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrRegisterDriverCommandIsNotConstructed if validation fails.
func (c RegisterDriverCommand) Validate() error {
	return c.guard.Validate(ErrRegisterDriverCommandIsNotConstructed)
}

// DriverID returns the given or generated driver ID.
func (c RegisterDriverCommand) DriverID() kernel.UUID {
	return c.driverID
}

// Name returns the driver's display name.
func (c RegisterDriverCommand) Name() string {
	return c.name
}

// Vehicle returns the vehicle description.
func (c RegisterDriverCommand) Vehicle() string {
	return c.vehicle
}

// Location returns the starting position, if one was given.
func (c RegisterDriverCommand) Location() (kernel.Location, bool) {
	if c.location == nil {
		return kernel.Location{}, false
	}
	return *c.location, true
}

func (c *RegisterDriverCommand) setDriverID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.driverID = id
	return nil
}

func (c *RegisterDriverCommand) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameIsRequired
	}
	c.name = name
	return nil
}

func (c *RegisterDriverCommand) setVehicle(vehicle string) error {
	if strings.TrimSpace(vehicle) == "" {
		return ErrVehicleIsRequired
	}
	c.vehicle = vehicle
	return nil
}

func (c *RegisterDriverCommand) setLocation(location *kernel.Location) error {
	if location == nil {
		return nil
	}
	if err := location.Validate(); err != nil {
		return err
	}
	loc := *location
	c.location = &loc
	return nil
}
