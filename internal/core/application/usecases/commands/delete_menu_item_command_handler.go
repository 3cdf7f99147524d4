package commands

import (
	"context"
)

type DeleteMenuItemCommandHandler struct {
	uowFactory CatalogUoWFactory
}

func NewDeleteMenuItemCommandHandler(uowFactory CatalogUoWFactory) DeleteMenuItemCommandHandler {
	return DeleteMenuItemCommandHandler{uowFactory: uowFactory}
}

func (h *DeleteMenuItemCommandHandler) Handle(ctx context.Context, cmd DeleteMenuItemCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.MenuRepository().Remove(ctx, cmd.ItemID(), cmd.VendorID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
