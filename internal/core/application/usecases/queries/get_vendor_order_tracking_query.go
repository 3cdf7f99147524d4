package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/identity"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/guard"
)

var ErrGetVendorOrderTrackingQueryIsNotConstructed = errors.New(
	"GetVendorOrderTrackingQuery must be created via NewGetVendorOrderTrackingQuery constructor",
)

// GetVendorOrderTrackingQuery lists every order placed with the calling vendor.
type GetVendorOrderTrackingQuery struct {
	vendorID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetVendorOrderTrackingQuery(principal identity.Principal) (GetVendorOrderTrackingQuery, error) {
	v, err := identity.AsVendor(principal, "track orders")
	if err != nil {
		return GetVendorOrderTrackingQuery{}, err
	}
	return GetVendorOrderTrackingQuery{vendorID: v.VendorID(), guard: guard.NewConstructorGuard()}, nil
}

func (q GetVendorOrderTrackingQuery) Validate() error {
	return q.guard.Validate(ErrGetVendorOrderTrackingQueryIsNotConstructed)
}

// TrackedOrder is an order row on the vendor's tracking board. DishName is
// the first line's dish and Items lists every dish in order.
type TrackedOrder struct {
	ID       kernel.UUID
	Customer string
	DishName string
	Address  string
	Items    []string
	Total    kernel.Money
	Status   order.Status
}
