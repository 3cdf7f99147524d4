package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/identity"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrGetMenuItemQueryIsNotConstructed = errors.New(
	"GetMenuItemQuery must be created via NewGetMenuItemQuery constructor",
)

// GetMenuItemQuery reads one item of the calling vendor's menu.
type GetMenuItemQuery struct {
	vendorID kernel.UUID
	itemID   kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetMenuItemQuery(principal identity.Principal, itemID kernel.UUID) (GetMenuItemQuery, error) {
	v, err := identity.AsVendor(principal, "view menu item")
	if err != nil {
		return GetMenuItemQuery{}, err
	}
	if err = itemID.Validate(); err != nil {
		return GetMenuItemQuery{}, errs.NewValueIsRequiredErrorWithCause("menu item id", err)
	}
	return GetMenuItemQuery{vendorID: v.VendorID(), itemID: itemID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetMenuItemQuery) Validate() error {
	return q.guard.Validate(ErrGetMenuItemQueryIsNotConstructed)
}
