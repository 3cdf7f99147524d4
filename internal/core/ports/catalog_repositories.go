package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/menu"
	"marketplace/internal/core/domain/model/vendor"
)

type VendorRepository interface {
	Add(ctx context.Context, v *vendor.Vendor) error
	Get(ctx context.Context, id kernel.UUID) (*vendor.Vendor, error)
	// ExistsForUser reports whether userID already owns a vendor profile.
	ExistsForUser(ctx context.Context, userID kernel.UUID) (bool, error)
}

type MenuRepository interface {
	Add(ctx context.Context, item *menu.Item) error
	// GetMany returns the items with the given ids that exist. Missing ids
	// are simply absent from the result.
	GetMany(ctx context.Context, ids []kernel.UUID) ([]*menu.Item, error)
	// GetForUpdate locks one of the vendor's items; items of other vendors
	// are reported as not found.
	GetForUpdate(ctx context.Context, id, vendorID kernel.UUID) (*menu.Item, error)
	Update(ctx context.Context, item *menu.Item) error
	// Remove withdraws one of the vendor's items from the menu.
	Remove(ctx context.Context, id, vendorID kernel.UUID) error
}
