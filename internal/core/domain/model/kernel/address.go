package kernel

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	// ErrAddressIsNotConstructed is returned when a zero-value Address is used.
	ErrAddressIsNotConstructed = errs.NewValueIsRequiredError("address must be created via NewAddress constructor")
	// ErrStreetIsRequired is returned for a blank street line.
	ErrStreetIsRequired = errs.NewValueIsRequiredError("street")

	zipCodePattern = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
)

// Address is a delivery destination: a street line, a postal/zip code and
// the point the matcher measures driver distance against.
type Address struct { //nolint:recvcheck // setters use pointer receivers
	street   string
	zipCode  string
	location Location
	guard    guard.ConstructorGuard
}

// NewAddress validates and builds an Address. Zip codes use the 5-digit or
// ZIP+4 form.
func NewAddress(street, zipCode string, location Location) (Address, error) {
	addr := Address{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		addr.setStreet(street),
		addr.setZipCode(zipCode),
		addr.setLocation(location),
	); err != nil {
		return Address{}, err
	}

	return addr, nil
}

func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

func (a Address) Street() string {
	return a.street
}

func (a Address) ZipCode() string {
	return a.zipCode
}

func (a Address) Location() Location {
	return a.location
}

func (a Address) String() string {
	return fmt.Sprintf("%s, %s", a.street, a.zipCode)
}

func (a *Address) setStreet(street string) error {
	street = strings.TrimSpace(street)
	if street == "" {
		return ErrStreetIsRequired
	}
	a.street = street
	return nil
}

func (a *Address) setZipCode(zipCode string) error {
	zipCode = strings.TrimSpace(zipCode)
	if !zipCodePattern.MatchString(zipCode) {
		return errs.NewValueIsInvalidErrorWithCause("zip code", fmt.Errorf("%q is not a valid zip code", zipCode))
	}
	a.zipCode = zipCode
	return nil
}

func (a *Address) setLocation(location Location) error {
	if err := location.Validate(); err != nil {
		return err
	}
	a.location = location
	return nil
}
