package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/identity"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/payment"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrListUserPaymentsQueryIsNotConstructed = errors.New(
	"ListUserPaymentsQuery must be created via NewListUserPaymentsQuery constructor",
)

// ListUserPaymentsQuery lists the payments started by the calling account.
type ListUserPaymentsQuery struct {
	userID kernel.UUID

	guard guard.ConstructorGuard
}

func NewListUserPaymentsQuery(principal identity.Principal) (ListUserPaymentsQuery, error) {
	if principal == nil {
		return ListUserPaymentsQuery{}, errs.NewValueIsRequiredError("principal")
	}
	return ListUserPaymentsQuery{userID: principal.UserID(), guard: guard.NewConstructorGuard()}, nil
}

func (q ListUserPaymentsQuery) Validate() error {
	return q.guard.Validate(ErrListUserPaymentsQueryIsNotConstructed)
}

type UserPayment struct {
	ID            kernel.UUID
	Amount        kernel.Money
	Currency      string
	Method        payment.Method
	Reference     string
	TransactionID string
	Status        payment.Status
	Description   string
	CreatedAt     time.Time
}
