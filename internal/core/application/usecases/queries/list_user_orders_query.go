package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/identity"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/guard"
)

var ErrListUserOrdersQueryIsNotConstructed = errors.New(
	"ListUserOrdersQuery must be created via NewListUserOrdersQuery constructor",
)

// ListUserOrdersQuery lists the orders the calling customer has placed.
type ListUserOrdersQuery struct {
	userID kernel.UUID

	guard guard.ConstructorGuard
}

func NewListUserOrdersQuery(principal identity.Principal) (ListUserOrdersQuery, error) {
	c, err := identity.AsCustomer(principal, "list orders")
	if err != nil {
		return ListUserOrdersQuery{}, err
	}
	return ListUserOrdersQuery{userID: c.UserID(), guard: guard.NewConstructorGuard()}, nil
}

func (q ListUserOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListUserOrdersQueryIsNotConstructed)
}

type UserOrder struct {
	ID                   kernel.UUID
	VendorID             kernel.UUID
	VendorName           string
	Name                 string
	DeliveryAddress      string
	Total                kernel.Money
	Status               order.Status
	PaymentConfirmed     bool
	UserReceiptConfirmed bool
	PlacedAt             time.Time
	DeliveredAt          *time.Time
	Lines                []OrderLine
}
