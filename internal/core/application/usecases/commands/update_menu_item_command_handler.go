package commands

import (
	"context"

	"marketplace/internal/core/domain/model/menu"
)

type UpdateMenuItemCommandHandler struct {
	uowFactory CatalogUoWFactory
}

func NewUpdateMenuItemCommandHandler(uowFactory CatalogUoWFactory) UpdateMenuItemCommandHandler {
	return UpdateMenuItemCommandHandler{uowFactory: uowFactory}
}

// Handle returns ObjectNotFound for items outside the caller's menu.
func (h *UpdateMenuItemCommandHandler) Handle(ctx context.Context, cmd UpdateMenuItemCommand) (*menu.Item, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	item, err := uow.MenuRepository().GetForUpdate(ctx, cmd.ItemID(), cmd.VendorID())
	if err != nil {
		return nil, err
	}

	if err = item.Update(cmd.Patch()); err != nil {
		return nil, err
	}

	if err = uow.MenuRepository().Update(ctx, item); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return item, nil
}
