// Package driver provides the Driver aggregate: a courier that can carry at
// most one order at a time.
//
// The package includes:
//   - Driver: identity, name, vehicle, optional last known location, recent
//     ratings and the currently assigned order
//   - RatingHistory: a fixed-capacity window of the most recent ratings
//
// Key business rules:
//   - A driver is available exactly when no order is assigned
//   - Assigning an order to a busy driver fails with a DriverBusy error
//   - An unknown location is a valid state; such a driver is never matched
//   - Only the last RatingHistoryCapacity ratings count towards the average
package driver
