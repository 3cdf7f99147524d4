package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/identity"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrListMenuItemsQueryIsNotConstructed = errors.New(
	"ListMenuItemsQuery must be created via NewListMenuItemsQuery constructor",
)

// ListMenuItemsQuery lists the calling vendor's menu.
type ListMenuItemsQuery struct {
	vendorID kernel.UUID

	guard guard.ConstructorGuard
}

func NewListMenuItemsQuery(principal identity.Principal) (ListMenuItemsQuery, error) {
	v, err := identity.AsVendor(principal, "list menu items")
	if err != nil {
		return ListMenuItemsQuery{}, err
	}
	return ListMenuItemsQuery{vendorID: v.VendorID(), guard: guard.NewConstructorGuard()}, nil
}

func (q ListMenuItemsQuery) Validate() error {
	return q.guard.Validate(ErrListMenuItemsQueryIsNotConstructed)
}

type MenuItem struct {
	ID           kernel.UUID
	DishName     string
	Description  string
	Price        kernel.Money
	Category     string
	Quantity     int
	AvailableNow bool
}
