package driver

import (
	"errors"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	// ErrNameIsRequired is returned when a driver is created without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrVehicleIsRequired is returned when a driver is created without a vehicle.
	ErrVehicleIsRequired = errs.NewValueIsRequiredError("vehicle")
	// ErrDriverIsNotConstructed is returned when using an improperly initialized Driver.
	ErrDriverIsNotConstructed = errors.New("Driver must be created via NewDriver constructor")
	// ErrNoOrderAssigned is returned when releasing an order from an idle driver.
	ErrNoOrderAssigned = errors.New("driver has no assigned order")
)

// Driver is a courier registered with the dispatch service.
//
// Key responsibilities:
//   - Carrying identity (ID, name, vehicle)
//   - Tracking the last known location used for matching
//   - Keeping a bounded window of recent ratings
//   - Holding at most one assigned order
//
// Driver is not safe for concurrent use; the dispatch coordinator owns live
// instances and hands out clones.
//
// Example usage:
//
//	d, err := driver.NewDriver(kernel.NewUUID(), "Dana", "scooter")
//	if err != nil {
//	    // handle construction error
//	}
//	_ = d.UpdateLocation(kernel.MustNewLocation(1, 2))
type Driver struct {
	id       kernel.UUID
	name     string
	vehicle  string
	location *kernel.Location
	ratings  RatingHistory
	// currentOrder is nil while the driver is available.
	currentOrder *order.ID
	guard        guard.ConstructorGuard
}

// NewDriver creates an available driver with unknown location and no ratings.
// All parameter errors are reported together.
func NewDriver(id kernel.UUID, name, vehicle string) (*Driver, error) {
	d := &Driver{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setName(name),
		d.setVehicle(vehicle),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// Validate checks that the Driver was built by NewDriver.
func (d *Driver) Validate() error {
	if d == nil {
		return ErrDriverIsNotConstructed
	}
	return d.guard.Validate(ErrDriverIsNotConstructed)
}

// IsEqual compares drivers by identity.
func (d *Driver) IsEqual(other *Driver) bool {
	if other == nil {
		return false
	}
	return d.id.IsEqual(other.id)
}

func (d *Driver) ID() kernel.UUID {
	return d.id
}

func (d *Driver) Name() string {
	return d.name
}

func (d *Driver) Vehicle() string {
	return d.vehicle
}

// Location returns the last known position; ok is false when it is unknown.
func (d *Driver) Location() (loc kernel.Location, ok bool) {
	if d.location == nil {
		return kernel.Location{}, false
	}
	return *d.location, true
}

// UpdateLocation records a new position.
func (d *Driver) UpdateLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("location", err)
	}
	d.location = &location
	return nil
}

// Ratings returns a copy of the rating window.
func (d *Driver) Ratings() RatingHistory {
	return d.ratings.clone()
}

// AddRating records a rating in [MinRating, MaxRating].
func (d *Driver) AddRating(rating int) error {
	return d.ratings.Add(rating)
}

// AverageRating is the mean of the recent ratings; ok is false for a driver
// who has not been rated yet.
func (d *Driver) AverageRating() (avg float64, ok bool) {
	return d.ratings.Average()
}

// IsAvailable reports whether the driver has no assigned order.
func (d *Driver) IsAvailable() bool {
	return d.currentOrder == nil
}

// CurrentOrder returns the assigned order, if any.
func (d *Driver) CurrentOrder() (order.ID, bool) {
	if d.currentOrder == nil {
		return 0, false
	}
	return *d.currentOrder, true
}

// AssignOrder commits the driver to orderID. It fails with a DriverBusy
// error if another order is already assigned.
func (d *Driver) AssignOrder(orderID order.ID) error {
	if orderID == 0 {
		return errs.NewInvalidArgumentError("order id")
	}
	if d.currentOrder != nil {
		return errs.NewDriverBusyError(d.id)
	}
	d.currentOrder = &orderID
	return nil
}

// ReleaseOrder frees the driver from orderID.
func (d *Driver) ReleaseOrder(orderID order.ID) error {
	if d.currentOrder == nil {
		return ErrNoOrderAssigned
	}
	if *d.currentOrder != orderID {
		return errs.NewInvalidArgumentErrorWithCause("order id",
			errs.NewObjectNotFoundError("assigned order", orderID))
	}
	d.currentOrder = nil
	return nil
}

// Clone returns a deep copy safe to hand outside the owning pool.
func (d *Driver) Clone() *Driver {
	c := *d
	if d.location != nil {
		loc := *d.location
		c.location = &loc
	}
	if d.currentOrder != nil {
		id := *d.currentOrder
		c.currentOrder = &id
	}
	c.ratings = d.ratings.clone()
	return &c
}

func (d *Driver) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Driver) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	d.name = name
	return nil
}

func (d *Driver) setVehicle(vehicle string) error {
	vehicle = strings.TrimSpace(vehicle)
	if vehicle == "" {
		return ErrVehicleIsRequired
	}
	d.vehicle = vehicle
	return nil
}
