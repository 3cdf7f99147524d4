package queries

import (
	"errors"
	"time"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrGetOrderActivityQueryIsNotConstructed = errors.New(
	"GetOrderActivityQuery must be created via NewGetOrderActivityQuery constructor",
)

// GetOrderActivityQuery summarizes how this calendar week's orders ended up,
// compared with the week before.
type GetOrderActivityQuery struct {
	scope Scope
	now   time.Time

	guard guard.ConstructorGuard
}

func NewGetOrderActivityQuery(scope Scope, now time.Time) (GetOrderActivityQuery, error) {
	if now.IsZero() {
		return GetOrderActivityQuery{}, errs.NewValueIsRequiredError("now")
	}
	return GetOrderActivityQuery{scope: scope, now: now, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderActivityQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderActivityQueryIsNotConstructed)
}

func (q GetOrderActivityQuery) Scope() Scope { return q.scope }
