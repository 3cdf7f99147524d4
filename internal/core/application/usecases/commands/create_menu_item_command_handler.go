package commands

import (
	"context"

	"marketplace/internal/core/domain/model/menu"
)

// CreateMenuItemCommandHandler stores a dish for a registered vendor.
type CreateMenuItemCommandHandler struct {
	uowFactory CatalogUoWFactory
}

func NewCreateMenuItemCommandHandler(uowFactory CatalogUoWFactory) CreateMenuItemCommandHandler {
	return CreateMenuItemCommandHandler{uowFactory: uowFactory}
}

func (h *CreateMenuItemCommandHandler) Handle(ctx context.Context, cmd CreateMenuItemCommand) (*menu.Item, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	item, err := menu.NewItem(cmd.ItemID(), cmd.VendorID(), cmd.Details())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err = uow.VendorRepository().Get(ctx, cmd.VendorID()); err != nil {
		return nil, err
	}

	if err = uow.MenuRepository().Add(ctx, item); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return item, nil
}
