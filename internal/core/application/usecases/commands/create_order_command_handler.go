package commands

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/menu"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

var ErrMenuItemsDoNotBelongToVendor = errors.New("one or more menu items are invalid for this vendor")

// CreateOrderResult summarizes the stored order.
type CreateOrderResult struct {
	OrderID    kernel.UUID
	Name       string
	TotalPrice kernel.Money
	Status     order.Status
}

// CreateOrderCommandHandler places an order in pending status. Line items
// snapshot each dish's current name and price so later menu edits do not
// change what the customer owes.
type CreateOrderCommandHandler struct {
	uowFactory PlaceOrderUoWFactory
	clock      ports.Clock
}

func NewCreateOrderCommandHandler(uowFactory PlaceOrderUoWFactory, clock ports.Clock) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (CreateOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateOrderResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CreateOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	v, err := uow.VendorRepository().Get(ctx, cmd.VendorID())
	if err != nil {
		return CreateOrderResult{}, err
	}

	found, err := uow.MenuRepository().GetMany(ctx, cmd.MenuItemIDs())
	if err != nil {
		return CreateOrderResult{}, err
	}

	lines, err := buildLineItems(cmd.Items(), found, v.ID())
	if err != nil {
		return CreateOrderResult{}, err
	}

	o, err := order.NewOrder(cmd.OrderID(), cmd.Customer().UserID(), v.ID(),
		cmd.OrderName(), cmd.DeliveryAddress(), lines, h.clock.Now())
	if err != nil {
		return CreateOrderResult{}, err
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return CreateOrderResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CreateOrderResult{}, err
	}

	return CreateOrderResult{
		OrderID:    o.ID(),
		Name:       o.Name(),
		TotalPrice: o.TotalPrice(),
		Status:     o.Status(),
	}, nil
}

func buildLineItems(requested []OrderItemRequest, found []*menu.Item, vendorID kernel.UUID) ([]order.LineItem, error) {
	byID := make(map[kernel.UUID]*menu.Item, len(found))
	for _, item := range found {
		if item.BelongsTo(vendorID) {
			byID[item.ID()] = item
		}
	}

	lines := make([]order.LineItem, 0, len(requested))
	for _, req := range requested {
		item, ok := byID[req.MenuItemID]
		if !ok {
			return nil, errs.NewValueIsInvalidErrorWithCause("items", ErrMenuItemsDoNotBelongToVendor)
		}
		line, err := order.NewLineItem(item.ID(), item.DishName(), item.Price(), req.Quantity)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}
