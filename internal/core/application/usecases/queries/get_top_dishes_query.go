package queries

import (
	"errors"
	"time"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrGetTopDishesQueryIsNotConstructed = errors.New(
	"GetTopDishesQuery must be created via NewGetTopDishesQuery constructor",
)

// GetTopDishesQuery ranks the dishes ordered during the calendar week that
// contains now.
type GetTopDishesQuery struct {
	scope Scope
	now   time.Time

	guard guard.ConstructorGuard
}

func NewGetTopDishesQuery(scope Scope, now time.Time) (GetTopDishesQuery, error) {
	if now.IsZero() {
		return GetTopDishesQuery{}, errs.NewValueIsRequiredError("now")
	}
	return GetTopDishesQuery{scope: scope, now: now, guard: guard.NewConstructorGuard()}, nil
}

func (q GetTopDishesQuery) Validate() error {
	return q.guard.Validate(ErrGetTopDishesQueryIsNotConstructed)
}

func (q GetTopDishesQuery) Scope() Scope { return q.scope }
