// Package guard provides ConstructorGuard, a marker that lets value objects,
// aggregates, commands and queries detect whether they were built through
// their constructor or are zero values.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the guard is unset
// and the caller did not supply its own error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded as an unexported field. Only the constructor
// sets it, so a zero-value struct fails Validate.
//
// Example:
//
//	type RegisterDriverCommand struct {
//	    name  string
//	    guard guard.ConstructorGuard
//	}
//
//	func NewRegisterDriverCommand(name string) (RegisterDriverCommand, error) {
//	    return RegisterDriverCommand{name: name, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (c RegisterDriverCommand) Validate() error {
//	    return c.guard.Validate(ErrRegisterDriverCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a constructed guard. For a zero-value guard it
// returns validationError, or ErrDefaultConstructorGuard when that is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
