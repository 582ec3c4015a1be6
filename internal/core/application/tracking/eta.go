package tracking

import (
	"time"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/order"
)

// DefaultLeadTime is added to "now" when an order goes out for delivery.
const DefaultLeadTime = 30 * time.Minute

// ETAEstimator computes the estimated delivery time when an order enters
// InDelivery. d may be nil when no driver is known.
type ETAEstimator interface {
	Estimate(now time.Time, o *order.Order, d *driver.Driver) time.Time
}

// FixedLeadTime estimates now + LeadTime regardless of the driver.
type FixedLeadTime struct {
	LeadTime time.Duration
}

func (f FixedLeadTime) Estimate(now time.Time, _ *order.Order, _ *driver.Driver) time.Time {
	return now.Add(f.LeadTime)
}

// DistanceAwareETA estimates now + Base + PerUnit*distance(driver, destination).
// Without a driver location it falls back to now + Base.
type DistanceAwareETA struct {
	Base    time.Duration
	PerUnit time.Duration
}

func (e DistanceAwareETA) Estimate(now time.Time, o *order.Order, d *driver.Driver) time.Time {
	eta := now.Add(e.Base)
	if o == nil || d == nil {
		return eta
	}
	from, ok := d.Location()
	if !ok {
		return eta
	}
	distance, err := from.Distance(o.Address().Location())
	if err != nil {
		return eta
	}
	return eta.Add(time.Duration(distance * float64(e.PerUnit)))
}
