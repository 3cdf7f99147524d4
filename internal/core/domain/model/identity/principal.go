// Package identity models the authenticated caller of a core operation.
//
// A Principal is resolved once, when the request is authenticated, and then
// passed explicitly into commands and queries. It is a closed set of kinds:
// Customer, Vendor and Courier. Code that needs a specific kind uses a type
// switch or the As* helpers instead of probing for profile attributes.
package identity

import (
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// Kind enumerates principal kinds.
type Kind string

const (
	KindCustomer Kind = "customer"
	KindVendor   Kind = "vendor"
	KindCourier  Kind = "courier"
)

// Principal is implemented only by Customer, Vendor and Courier.
type Principal interface {
	Kind() Kind
	UserID() kernel.UUID
	principal()
}

// Customer is a marketplace user placing orders and bookings.
type Customer struct {
	userID kernel.UUID
}

// Vendor is a user acting through their vendor profile.
type Vendor struct {
	userID   kernel.UUID
	vendorID kernel.UUID
}

// Courier is a user acting through their courier profile.
type Courier struct {
	userID    kernel.UUID
	courierID kernel.UUID
}

func NewCustomer(userID kernel.UUID) (Customer, error) {
	if err := userID.Validate(); err != nil {
		return Customer{}, err
	}
	return Customer{userID: userID}, nil
}

func NewVendor(userID, vendorID kernel.UUID) (Vendor, error) {
	if err := userID.Validate(); err != nil {
		return Vendor{}, err
	}
	if err := vendorID.Validate(); err != nil {
		return Vendor{}, errs.NewValueIsRequiredErrorWithCause("vendor profile", err)
	}
	return Vendor{userID: userID, vendorID: vendorID}, nil
}

func NewCourier(userID, courierID kernel.UUID) (Courier, error) {
	if err := userID.Validate(); err != nil {
		return Courier{}, err
	}
	if err := courierID.Validate(); err != nil {
		return Courier{}, errs.NewValueIsRequiredErrorWithCause("courier profile", err)
	}
	return Courier{userID: userID, courierID: courierID}, nil
}

// New builds the principal of the given kind. profileID is ignored for customers.
func New(kind Kind, userID, profileID kernel.UUID) (Principal, error) {
	switch kind {
	case KindCustomer:
		return NewCustomer(userID)
	case KindVendor:
		return NewVendor(userID, profileID)
	case KindCourier:
		return NewCourier(userID, profileID)
	default:
		return nil, errs.NewValueIsInvalidErrorWithCause("principal kind", fmt.Errorf("%q is not a known kind", kind))
	}
}

func (Customer) Kind() Kind { return KindCustomer }
func (c Customer) UserID() kernel.UUID { return c.userID }
func (Customer) principal() {}

func (Vendor) Kind() Kind { return KindVendor }
func (v Vendor) UserID() kernel.UUID { return v.userID }
func (v Vendor) VendorID() kernel.UUID { return v.vendorID }
func (Vendor) principal() {}

func (Courier) Kind() Kind { return KindCourier }
func (c Courier) UserID() kernel.UUID { return c.userID }
func (c Courier) CourierID() kernel.UUID { return c.courierID }
func (Courier) principal() {}

// AsVendor returns the vendor principal or a ForbiddenError naming operation.
func AsVendor(p Principal, operation string) (Vendor, error) {
	v, ok := p.(Vendor)
	if !ok {
		return Vendor{}, errs.NewForbiddenError(operation, "only vendors can perform this operation")
	}
	return v, nil
}

// AsCustomer returns the customer principal or a ForbiddenError naming operation.
func AsCustomer(p Principal, operation string) (Customer, error) {
	c, ok := p.(Customer)
	if !ok {
		return Customer{}, errs.NewForbiddenError(operation, "only customers can perform this operation")
	}
	return c, nil
}
