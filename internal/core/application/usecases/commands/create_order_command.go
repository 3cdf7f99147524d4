package commands

import (
	"errors"
	"fmt"
	"strings"

	"marketplace/internal/core/domain/model/identity"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// OrderItemRequest is one requested dish. Quantity defaults to 1.
type OrderItemRequest struct {
	MenuItemID kernel.UUID
	Quantity   int
}

// CreateOrderCommand places a new order with a single vendor.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(customer, kernel.NewUUID(), vendorID, "",
//	    "12 Allen Avenue, Ikeja", []OrderItemRequest{{MenuItemID: jollofID, Quantity: 2}})
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	customer        identity.Customer
	orderID         kernel.UUID
	vendorID        kernel.UUID
	orderName       string
	deliveryAddress string
	items           []OrderItemRequest

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand checks the request shape. Vendor and menu ownership
// are verified by the handler against the store.
func NewCreateOrderCommand(
	principal identity.Principal,
	orderID, vendorID kernel.UUID,
	orderName, deliveryAddress string,
	items []OrderItemRequest,
) (CreateOrderCommand, error) {
	customer, err := identity.AsCustomer(principal, "place order")
	if err != nil {
		return CreateOrderCommand{}, err
	}

	cmd := CreateOrderCommand{
		customer:        customer,
		orderName:       strings.TrimSpace(orderName),
		deliveryAddress: strings.TrimSpace(deliveryAddress),
		guard:           guard.NewConstructorGuard(),
	}

	if err = errors.Join(
		cmd.setIDs(orderID, vendorID),
		cmd.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) Customer() identity.Customer { return c.customer }
func (c CreateOrderCommand) OrderID() kernel.UUID { return c.orderID }
func (c CreateOrderCommand) VendorID() kernel.UUID { return c.vendorID }
func (c CreateOrderCommand) OrderName() string { return c.orderName }
func (c CreateOrderCommand) DeliveryAddress() string { return c.deliveryAddress }

func (c CreateOrderCommand) Items() []OrderItemRequest {
	return append([]OrderItemRequest(nil), c.items...)
}

// MenuItemIDs returns the requested dish ids in request order.
func (c CreateOrderCommand) MenuItemIDs() []kernel.UUID {
	ids := make([]kernel.UUID, len(c.items))
	for i, item := range c.items {
		ids[i] = item.MenuItemID
	}
	return ids
}

func (c *CreateOrderCommand) setIDs(orderID, vendorID kernel.UUID) error {
	var problems []error
	if err := orderID.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("order id", err))
	}
	if err := vendorID.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("vendor", err))
	}
	if err := errors.Join(problems...); err != nil {
		return err
	}

	c.orderID = orderID
	c.vendorID = vendorID
	return nil
}

func (c *CreateOrderCommand) setItems(items []OrderItemRequest) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	seen := make(map[kernel.UUID]bool, len(items))
	normalized := make([]OrderItemRequest, 0, len(items))
	for _, item := range items {
		if err := item.MenuItemID.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("items", err)
		}
		if seen[item.MenuItemID] {
			return errs.NewValueIsInvalidErrorWithCause("items",
				fmt.Errorf("menu item %s is listed more than once", item.MenuItemID))
		}
		seen[item.MenuItemID] = true

		if item.Quantity == 0 {
			item.Quantity = 1
		}
		if item.Quantity < 0 {
			return errs.NewValueIsOutOfRangeError("quantity", item.Quantity, 1, "unbounded")
		}
		normalized = append(normalized, item)
	}

	c.items = normalized
	return nil
}
