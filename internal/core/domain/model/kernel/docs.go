// Package kernel provides the shared value objects of the dispatch domain.
//
// The package includes:
//   - UUID: identifier for drivers, wrapping github.com/google/uuid
//   - Location: a point on the dispatch plane measured in distance units
//   - Address: a delivery destination (street, zip code, location)
//
// Values are immutable and carry a constructor guard, so the zero value fails
// Validate and cannot leak into the domain unnoticed.
package kernel
