package commands

import (
	"context"
)

// RateDriverCommandHandler records a customer rating. A better average can
// make the driver eligible, so pending orders are retried afterwards.
type RateDriverCommandHandler struct {
	rater DriverRater
}

// NewRateDriverCommandHandler creates a handler for driver ratings.
func NewRateDriverCommandHandler(rater DriverRater) RateDriverCommandHandler {
	return RateDriverCommandHandler{rater: rater}
}

// Handle returns ObjectNotFound for an unknown driver and ValueIsOutOfRange
// for a rating outside 1..5.
func (h RateDriverCommandHandler) Handle(ctx context.Context, cmd RateDriverCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.rater.RateDriver(ctx, cmd.DriverID(), cmd.Rating())
}
