package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/identity"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrGetVendorDashboardQueryIsNotConstructed = errors.New(
	"GetVendorDashboardQuery must be created via NewGetVendorDashboardQuery constructor",
)

// GetVendorDashboardQuery builds the dashboard of the calling vendor as of now.
// Month and year select the sales chart; zero means the current month or
// year in the vendor's time zone.
//
// Example:
//
//	query, err := NewGetVendorDashboardQuery(principal, time.Now(), 3, 2025)
//	if err != nil {
//	    return err
//	}
//	dashboard, err := handler.Handle(ctx, query)
type GetVendorDashboardQuery struct {
	vendorID kernel.UUID
	now      time.Time
	month    int
	year     int

	guard guard.ConstructorGuard
}

func NewGetVendorDashboardQuery(principal identity.Principal, now time.Time, month, year int) (GetVendorDashboardQuery, error) {
	v, err := identity.AsVendor(principal, "view dashboard")
	if err != nil {
		return GetVendorDashboardQuery{}, err
	}
	if month < 0 || month > 12 {
		return GetVendorDashboardQuery{}, errs.NewValueIsOutOfRangeError("month", month, 1, 12)
	}
	if year < 0 {
		return GetVendorDashboardQuery{}, errs.NewValueIsOutOfRangeError("year", year, 1, 9999)
	}
	if now.IsZero() {
		return GetVendorDashboardQuery{}, errs.NewValueIsRequiredError("now")
	}

	return GetVendorDashboardQuery{
		vendorID: v.VendorID(),
		now:      now,
		month:    month,
		year:     year,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q GetVendorDashboardQuery) Validate() error {
	return q.guard.Validate(ErrGetVendorDashboardQueryIsNotConstructed)
}

func (q GetVendorDashboardQuery) VendorID() kernel.UUID { return q.vendorID }
func (q GetVendorDashboardQuery) Now() time.Time { return q.now }

// chartMonth applies the current month and year to unset fields.
func (q GetVendorDashboardQuery) chartMonth(loc *time.Location) (int, time.Month) {
	local := q.now.In(loc)
	year, month := q.year, time.Month(q.month)
	if year == 0 {
		year = local.Year()
	}
	if month == 0 {
		month = local.Month()
	}
	return year, month
}
