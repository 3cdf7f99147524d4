package menu

import (
	"errors"
	"fmt"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem or RestoreItem")

// Item is a dish a vendor offers. Price changes never touch placed orders,
// which keep their own snapshot of name and unit price.
type Item struct {
	id           kernel.UUID
	vendorID     kernel.UUID
	dishName     string
	description  string
	price        kernel.Money
	category     string
	quantity     int
	availableNow bool

	isConstructed bool
}

// Details are the editable fields of a menu item.
type Details struct {
	DishName     string
	Description  string
	Price        kernel.Money
	Category     string
	Quantity     int
	AvailableNow bool
}

func NewItem(id, vendorID kernel.UUID, d Details) (*Item, error) {
	d.DishName = strings.TrimSpace(d.DishName)
	d.Category = strings.TrimSpace(d.Category)

	var problems []error
	if err := id.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("menu item id", err))
	}
	if err := vendorID.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("vendor id", err))
	}
	if d.DishName == "" {
		problems = append(problems, errs.NewValueIsRequiredError("dish name"))
	}
	if d.Category == "" {
		problems = append(problems, errs.NewValueIsRequiredError("category"))
	}
	if d.Price.IsZero() {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("price must be greater than 0")))
	}
	if d.Quantity < 0 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("quantity", d.Quantity, 0, "unbounded"))
	}
	if err := errors.Join(problems...); err != nil {
		return nil, err
	}

	return &Item{
		id:            id,
		vendorID:      vendorID,
		dishName:      d.DishName,
		description:   strings.TrimSpace(d.Description),
		price:         d.Price,
		category:      d.Category,
		quantity:      d.Quantity,
		availableNow:  d.AvailableNow,
		isConstructed: true,
	}, nil
}

// RestoreItem is NewItem for rows read back from storage.
func RestoreItem(id, vendorID kernel.UUID, d Details) (*Item, error) {
	return NewItem(id, vendorID, d)
}

func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// Patch lists the fields a partial update changes. Nil fields keep their value.
type Patch struct {
	DishName     *string
	Description  *string
	Price        *kernel.Money
	Category     *string
	Quantity     *int
	AvailableNow *bool
}

// Details returns the editable fields.
func (i *Item) Details() Details {
	return Details{
		DishName:     i.dishName,
		Description:  i.description,
		Price:        i.price,
		Category:     i.category,
		Quantity:     i.quantity,
		AvailableNow: i.availableNow,
	}
}

// Update applies p with the same rules as NewItem. On error the item is
// unchanged.
func (i *Item) Update(p Patch) error {
	if err := i.Validate(); err != nil {
		return err
	}

	d := i.Details()
	if p.DishName != nil {
		d.DishName = *p.DishName
	}
	if p.Description != nil {
		d.Description = *p.Description
	}
	if p.Price != nil {
		d.Price = *p.Price
	}
	if p.Category != nil {
		d.Category = *p.Category
	}
	if p.Quantity != nil {
		d.Quantity = *p.Quantity
	}
	if p.AvailableNow != nil {
		d.AvailableNow = *p.AvailableNow
	}

	updated, err := NewItem(i.id, i.vendorID, d)
	if err != nil {
		return err
	}
	*i = *updated
	return nil
}

// BelongsTo reports whether the item is sold by vendorID.
func (i *Item) BelongsTo(vendorID kernel.UUID) bool {
	return i.vendorID.IsEqual(vendorID)
}

func (i *Item) ID() kernel.UUID { return i.id }
func (i *Item) VendorID() kernel.UUID { return i.vendorID }
func (i *Item) DishName() string { return i.dishName }
func (i *Item) Description() string { return i.description }
func (i *Item) Price() kernel.Money { return i.price }
func (i *Item) Category() string { return i.category }
func (i *Item) Quantity() int { return i.quantity }
func (i *Item) AvailableNow() bool { return i.availableNow }
