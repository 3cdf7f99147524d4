package queries

import (
	"context"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/identity"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ScopeName selects whose orders an analytics query aggregates.
type ScopeName string

const (
	ScopeVendor   ScopeName = "vendor"
	ScopePlatform ScopeName = "platform"
)

// Scope is either a single vendor or the whole platform.
type Scope struct {
	vendorID kernel.UUID
	platform bool
}

// NewScope resolves name against the caller. An empty name means the
// caller's own vendor; vendor scope requires a vendor principal.
func NewScope(name ScopeName, principal identity.Principal) (Scope, error) {
	switch name {
	case "", ScopeVendor:
		v, err := identity.AsVendor(principal, "view vendor analytics")
		if err != nil {
			return Scope{}, err
		}
		return Scope{vendorID: v.VendorID()}, nil
	case ScopePlatform:
		if principal == nil {
			return Scope{}, errs.NewValueIsRequiredError("principal")
		}
		return Scope{platform: true}, nil
	default:
		return Scope{}, errs.NewValueIsInvalidErrorWithCause("scope", fmt.Errorf("unknown scope %q", name))
	}
}

func (s Scope) IsPlatform() bool { return s.platform }
func (s Scope) VendorID() kernel.UUID { return s.vendorID }

// sqlArgs feeds the "(@platform OR o.vendor_id = @vendor_id)" filter.
func (s Scope) sqlArgs() map[string]any {
	return map[string]any{"platform": s.platform, "vendor_id": s.vendorID.Bytes()}
}

// vendorLocation loads the configured time zone of a vendor.
func vendorLocation(ctx context.Context, db *gorm.DB, vendorID kernel.UUID) (*time.Location, error) {
	var zones []string
	err := db.WithContext(ctx).
		Raw(`SELECT time_zone FROM vendor_profiles WHERE id = ?`, vendorID.Bytes()).
		Scan(&zones).Error
	if err != nil {
		return nil, err
	}
	if len(zones) == 0 {
		return nil, errs.NewObjectNotFoundError("vendor", vendorID)
	}

	loc, err := time.LoadLocation(zones[0])
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("vendor time zone", err)
	}
	return loc, nil
}

// scopeLocation is the vendor's zone, or fallback for the platform.
func scopeLocation(ctx context.Context, db *gorm.DB, scope Scope, fallback *time.Location) (*time.Location, error) {
	if scope.platform {
		if fallback == nil {
			return time.UTC, nil
		}
		return fallback, nil
	}
	return vendorLocation(ctx, db, scope.vendorID)
}

func fromUUID(id uuid.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(id[:])
}
