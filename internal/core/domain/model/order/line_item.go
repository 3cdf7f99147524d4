package order

import (
	"errors"
	"fmt"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// LineItem is a menu item captured at the moment the order was placed. Dish
// name and unit price are snapshots so later menu edits do not rewrite history.
type LineItem struct {
	MenuItemID kernel.UUID
	DishName   string
	UnitPrice  kernel.Money
	Quantity   int
}

func NewLineItem(menuItemID kernel.UUID, dishName string, unitPrice kernel.Money, quantity int) (LineItem, error) {
	item := LineItem{
		MenuItemID: menuItemID,
		DishName:   strings.TrimSpace(dishName),
		UnitPrice:  unitPrice,
		Quantity:   quantity,
	}
	if err := item.validate(); err != nil {
		return LineItem{}, err
	}
	return item, nil
}

func (l LineItem) validate() error {
	var problems []error
	if err := l.MenuItemID.Validate(); err != nil {
		problems = append(problems, err)
	}
	if l.DishName == "" {
		problems = append(problems, errs.NewValueIsRequiredError("dish name"))
	}
	if l.Quantity <= 0 {
		problems = append(problems,
			errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is not greater than 0", l.Quantity)))
	}
	return errors.Join(problems...)
}

// Total is UnitPrice * Quantity.
func (l LineItem) Total() kernel.Money {
	total, _ := l.UnitPrice.Times(l.Quantity)
	return total
}

// GenerateName builds a display name from the first two dish names, adding
// "..." when more follow.
func GenerateName(dishNames []string) string {
	if len(dishNames) <= 2 {
		return strings.Join(dishNames, ", ")
	}
	return strings.Join(dishNames[:2], ", ") + "..."
}

func sumItems(items []LineItem) kernel.Money {
	var total kernel.Money
	for _, item := range items {
		total = total.Add(item.Total())
	}
	return total
}
