package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/identity"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/guard"
)

var ErrGetVendorTransactionsQueryIsNotConstructed = errors.New(
	"GetVendorTransactionsQuery must be created via NewGetVendorTransactionsQuery constructor",
)

// TransactionDateLayout renders transaction dates in the vendor's time zone.
const TransactionDateLayout = "2006-01-02 15:04"

// GetVendorTransactionsQuery lists the paid orders of the calling vendor.
type GetVendorTransactionsQuery struct {
	vendorID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetVendorTransactionsQuery(principal identity.Principal) (GetVendorTransactionsQuery, error) {
	v, err := identity.AsVendor(principal, "view transactions")
	if err != nil {
		return GetVendorTransactionsQuery{}, err
	}
	return GetVendorTransactionsQuery{vendorID: v.VendorID(), guard: guard.NewConstructorGuard()}, nil
}

func (q GetVendorTransactionsQuery) Validate() error {
	return q.guard.Validate(ErrGetVendorTransactionsQueryIsNotConstructed)
}

func (q GetVendorTransactionsQuery) VendorID() kernel.UUID { return q.vendorID }

// VendorTransaction is one paid order. Customer is the buyer's display name.
type VendorTransaction struct {
	OrderID  kernel.UUID
	Amount   kernel.Money
	Date     string
	Status   order.Status
	Customer string
}

// GetVendorTransactionsQueryResponse carries the transactions newest first.
// TotalEarnings is the sum of their amounts.
type GetVendorTransactionsQueryResponse struct {
	TotalEarnings kernel.Money
	Transactions  []VendorTransaction
}
