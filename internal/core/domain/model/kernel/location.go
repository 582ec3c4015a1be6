package kernel

import (
	"errors"
	"fmt"
	"math"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrLocationIsNotConstructed is returned when a zero-value Location is used.
var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError(
	"location must be created via NewLocation constructor")

// Location is a point on the dispatch plane. Coordinates are expressed in
// the same distance units the driver matcher uses for its radius.
type Location struct { //nolint:recvcheck // setters use pointer receivers
	x     float64
	y     float64
	guard guard.ConstructorGuard
}

// NewLocation returns a Location at (x, y). Both coordinates must be finite.
func NewLocation(x, y float64) (Location, error) {
	loc := Location{guard: guard.NewConstructorGuard()}

	if err := errors.Join(loc.setX(x), loc.setY(y)); err != nil {
		return Location{}, err
	}

	return loc, nil
}

// MustNewLocation is NewLocation for literals known to be valid.
func MustNewLocation(x, y float64) Location {
	loc, err := NewLocation(x, y)
	if err != nil {
		panic(err)
	}
	return loc
}

func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

func (l Location) X() float64 {
	return l.x
}

func (l Location) Y() float64 {
	return l.y
}

func (l Location) String() string {
	return fmt.Sprintf("Location(%g,%g)", l.x, l.y)
}

// IsEqual reports whether both locations are valid and share coordinates.
func (l Location) IsEqual(other Location) (bool, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return l.x == other.x && l.y == other.y, nil
}

// Distance returns the straight-line (Euclidean) distance between l and other.
func (l Location) Distance(other Location) (float64, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	return math.Hypot(l.x-other.x, l.y-other.y), nil
}

func (l *Location) setX(x float64) error {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return errs.NewValueIsInvalidErrorWithCause("x", fmt.Errorf("%v is not a finite coordinate", x))
	}
	l.x = x
	return nil
}

func (l *Location) setY(y float64) error {
	if math.IsNaN(y) || math.IsInf(y, 0) {
		return errs.NewValueIsInvalidErrorWithCause("y", fmt.Errorf("%v is not a finite coordinate", y))
	}
	l.y = y
	return nil
}
