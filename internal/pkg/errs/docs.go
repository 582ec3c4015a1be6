// Package errs provides the typed errors used across the dispatch service.
//
// Generic value errors:
//   - ValueIsRequiredError: a required value is missing
//   - ValueIsInvalidError: a value is malformed
//   - ValueIsOutOfRangeError: a value falls outside its bounds
//   - ObjectNotFoundError: a referenced object does not exist
//
// Dispatch taxonomy:
//   - OrderInvalidError: order validation failed; carries every violation
//   - QueueFullError: the intake queue is at capacity (transient)
//   - ProcessingFailedError: submission, assignment or completion failed
//   - InvalidTransitionError: an order status change skips or reverses the lifecycle
//   - InvalidArgumentError: a required identifier or argument is missing
//   - DriverBusyError: the driver is already committed to an order
//
// Each type pairs a sentinel (ErrValueIsRequired, ErrQueueFull, ...) with a
// struct carrying details, constructors with and without cause, and Unwrap so
// callers can classify with errors.Is and inspect with errors.As.
package errs
