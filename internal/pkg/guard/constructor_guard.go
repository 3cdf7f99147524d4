// Package guard provides ConstructorGuard, which lets value objects, commands
// and queries detect that they were built as zero values instead of through
// their constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in types that must only be created by a constructor.
// The zero value is "not constructed".
//
// Example:
//
//	type ListMenuItemsQuery struct {
//	    vendorID kernel.UUID
//	    guard    guard.ConstructorGuard
//	}
//
//	func (q ListMenuItemsQuery) Validate() error {
//	    return q.guard.Validate(ErrListMenuItemsQueryIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when nil)
// if the guard is a zero value.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
