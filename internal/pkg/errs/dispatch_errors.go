package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrOrderInvalid          = errors.New("order is invalid")
	ErrQueueFull             = errors.New("order queue is full")
	ErrOrderProcessingFailed = errors.New("order processing failed")
	ErrInvalidTransition     = errors.New("invalid status transition")
	ErrInvalidArgument       = errors.New("invalid argument")
	ErrDriverBusy            = errors.New("driver is busy")
)

// OrderInvalidError lists every rule an order violated, not just the first.
// errors.Is matches ErrOrderInvalid and each individual violation.
type OrderInvalidError struct {
	Violations []error
}

func NewOrderInvalidError(violations ...error) *OrderInvalidError {
	return &OrderInvalidError{Violations: violations}
}

func (e *OrderInvalidError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Error())
	}
	return fmt.Sprintf("%s: %s", ErrOrderInvalid, strings.Join(msgs, "; "))
}

func (e *OrderInvalidError) Unwrap() []error {
	return append([]error{ErrOrderInvalid}, e.Violations...)
}

// QueueFullError is transient: the caller may retry once the queue drains.
type QueueFullError struct {
	Capacity int
}

func NewQueueFullError(capacity int) *QueueFullError {
	return &QueueFullError{Capacity: capacity}
}

func (e *QueueFullError) Error() string {
	return fmt.Sprintf("%s: capacity is %d", ErrQueueFull, e.Capacity)
}

func (e *QueueFullError) Unwrap() error {
	return ErrQueueFull
}

// ProcessingFailedError wraps the reason an operation on an order failed.
// errors.Is matches both ErrOrderProcessingFailed and the cause chain.
type ProcessingFailedError struct {
	Operation string
	Cause     error
}

func NewProcessingFailedError(operation string) *ProcessingFailedError {
	return &ProcessingFailedError{Operation: operation}
}

func NewProcessingFailedErrorWithCause(operation string, cause error) *ProcessingFailedError {
	return &ProcessingFailedError{Operation: operation, Cause: cause}
}

func (e *ProcessingFailedError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrOrderProcessingFailed, e.Operation), e.Cause)
}

func (e *ProcessingFailedError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrOrderProcessingFailed}
	}
	return []error{ErrOrderProcessingFailed, e.Cause}
}

// InvalidTransitionError reports a status change that is not the immediate
// successor of the current status.
type InvalidTransitionError struct {
	From string
	To   string
}

func NewInvalidTransitionError(from, to fmt.Stringer) *InvalidTransitionError {
	return &InvalidTransitionError{From: from.String(), To: to.String()}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// InvalidArgumentError reports a missing identifier or argument.
type InvalidArgumentError struct {
	ParamName string
	Cause     error
}

func NewInvalidArgumentError(paramName string) *InvalidArgumentError {
	return &InvalidArgumentError{ParamName: paramName}
}

func NewInvalidArgumentErrorWithCause(paramName string, cause error) *InvalidArgumentError {
	return &InvalidArgumentError{ParamName: paramName, Cause: cause}
}

func (e *InvalidArgumentError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrInvalidArgument, e.ParamName), e.Cause)
}

func (e *InvalidArgumentError) Unwrap() error {
	return ErrInvalidArgument
}

// DriverBusyError reports an attempt to commit a driver that already has an order.
type DriverBusyError struct {
	DriverID string
}

func NewDriverBusyError(driverID fmt.Stringer) *DriverBusyError {
	return &DriverBusyError{DriverID: driverID.String()}
}

func (e *DriverBusyError) Error() string {
	return fmt.Sprintf("%s: %s", ErrDriverBusy, e.DriverID)
}

func (e *DriverBusyError) Unwrap() error {
	return ErrDriverBusy
}
