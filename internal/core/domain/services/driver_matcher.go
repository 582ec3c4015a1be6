package services

import (
	"math"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

const (
	// MaxDistance is the farthest a driver may be from the delivery location.
	MaxDistance = 10.0
	// MinRating is the lowest average rating a driver may have to be matched.
	MinRating = 3.0
	// NeutralRating stands in for the average of a driver with no ratings.
	NeutralRating = 3.0

	distanceWeight = 0.7
	ratingWeight   = 0.3
)

// DriverMatcher selects the single best driver for an order.
//
// Eligibility:
//   - last known location within MaxDistance of the delivery location
//     (drivers with unknown location are ineligible)
//   - average rating at least MinRating (unrated drivers score NeutralRating)
//   - no order currently assigned
//
// Eligible drivers are scored as
//
//	distance*0.7 + (driver.MaxRating-averageRating)*0.3
//
// and the lowest score wins. Ties keep the earliest candidate, so the result
// is deterministic for a given input order.
//
// Example usage:
//
//	matcher := services.NewDriverMatcher()
//	best, ok := matcher.Match(o, available)
//	if !ok {
//	    // leave the order pending
//	}
type DriverMatcher struct{}

func NewDriverMatcher() DriverMatcher {
	return DriverMatcher{}
}

// Match returns the best eligible candidate, or false when the list is empty
// or nobody qualifies. It never mutates the order or the drivers.
func (m DriverMatcher) Match(o *order.Order, candidates []*driver.Driver) (*driver.Driver, bool) {
	if o == nil {
		return nil, false
	}
	destination := o.Address().Location()
	if destination.Validate() != nil {
		return nil, false
	}

	var (
		best      *driver.Driver
		bestScore = math.MaxFloat64
	)

	for _, d := range candidates {
		score, eligible := m.score(d, destination)
		if !eligible {
			continue
		}
		if score < bestScore {
			bestScore = score
			best = d
		}
	}

	return best, best != nil
}

// Score exposes the weighted score of a driver for an order; eligible is
// false when the driver would be filtered out.
func (m DriverMatcher) Score(o *order.Order, d *driver.Driver) (score float64, eligible bool) {
	if o == nil {
		return 0, false
	}
	return m.score(d, o.Address().Location())
}

func (m DriverMatcher) score(d *driver.Driver, destination kernel.Location) (float64, bool) {
	if d.Validate() != nil || !d.IsAvailable() {
		return 0, false
	}

	location, known := d.Location()
	if !known {
		return 0, false
	}
	distance, err := location.Distance(destination)
	if err != nil || distance > MaxDistance {
		return 0, false
	}

	rating, rated := d.AverageRating()
	if !rated {
		rating = NeutralRating
	}
	if rating < MinRating {
		return 0, false
	}

	return distance*distanceWeight + (driver.MaxRating-rating)*ratingWeight, true
}
