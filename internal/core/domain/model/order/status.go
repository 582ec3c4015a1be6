package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
//	Placed ──> Accepted ──> InDelivery ──> Delivered
//
// No transition may skip a stage or move backward; Delivered is terminal.
type Status int

const (
	// Unknown is the zero value and never a valid state.
	Unknown Status = iota
	// Placed: admitted and waiting for a driver.
	Placed
	// Accepted: a driver has been assigned.
	Accepted
	// InDelivery: the driver picked the order up; an ETA is set.
	InDelivery
	// Delivered: terminal.
	Delivered
)

var statusNames = map[Status]string{
	Unknown:    "unknown",
	Placed:     "placed",
	Accepted:   "accepted",
	InDelivery: "in_delivery",
	Delivered:  "delivered",
}

// ParseStatus maps the wire name of a status back to its value.
func ParseStatus(s string) (Status, error) {
	for status, name := range statusNames {
		if name == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return statusNames[Unknown]
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if s < Placed || s > Delivered {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) IsTerminal() bool {
	return s == Delivered
}

// Next returns the immediate successor of s.
func (s Status) Next() (Status, error) {
	if err := s.Validate(); err != nil {
		return Unknown, err
	}
	if s.IsTerminal() {
		return Unknown, errs.NewInvalidTransitionError(s, Unknown)
	}
	return s + 1, nil
}

// ValidateTransition returns an InvalidTransitionError unless next is the
// immediate successor of s.
func (s Status) ValidateTransition(next Status) error {
	successor, err := s.Next()
	if err != nil || successor != next {
		return errs.NewInvalidTransitionError(s, next)
	}
	return nil
}
