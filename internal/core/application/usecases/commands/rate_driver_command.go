package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrRateDriverCommandIsNotConstructed = errors.New(
	"RateDriverCommand must be created via NewRateDriverCommand constructor",
)

// RateDriverCommand records a customer rating for a driver.
//
// Example:
//
//	cmd, err := NewRateDriverCommand(driverID, 5)
//	if err != nil {
//	    return err // rating outside 1..5
//	}
//	err = handler.Handle(ctx, cmd)
type RateDriverCommand struct { //nolint:recvcheck //using for validation
	driverID kernel.UUID
	rating   int

	guard guard.ConstructorGuard
}

// NewRateDriverCommand requires a driver ID and a rating in
// driver.MinRating..driver.MaxRating; out-of-range values return
// ValueIsOutOfRange.
func NewRateDriverCommand(driverID kernel.UUID, rating int) (RateDriverCommand, error) {
	command := RateDriverCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setDriverID(driverID),
		command.setRating(rating),
	); err != nil {
		return RateDriverCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrRateDriverCommandIsNotConstructed if validation fails.
func (c RateDriverCommand) Validate() error {
	return c.guard.Validate(ErrRateDriverCommandIsNotConstructed)
}

func (c RateDriverCommand) DriverID() kernel.UUID {
	return c.driverID
}

func (c RateDriverCommand) Rating() int {
	return c.rating
}

func (c *RateDriverCommand) setDriverID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.driverID = id
	return nil
}

func (c *RateDriverCommand) setRating(rating int) error {
	if rating < driver.MinRating || rating > driver.MaxRating {
		return errs.NewValueIsOutOfRangeError("rating", rating, driver.MinRating, driver.MaxRating)
	}
	c.rating = rating
	return nil
}
