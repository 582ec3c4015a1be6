// Package services provides domain services that implement business rules
// spanning several aggregates.
//
// The package includes:
//   - DriverMatcher: selects the best available driver for an order
//
// Domain services are pure: they read aggregates and return decisions, while
// the application layer applies those decisions.
package services
