package commands

import (
	"context"

	"marketplace/internal/core/domain/model/vendor"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// RegisterVendorCommandHandler stores a new vendor profile. An account owns
// at most one profile; a second registration is a ConflictError.
type RegisterVendorCommandHandler struct {
	uowFactory      CatalogUoWFactory
	clock           ports.Clock
	defaultTimeZone string
}

func NewRegisterVendorCommandHandler(
	uowFactory CatalogUoWFactory,
	clock ports.Clock,
	defaultTimeZone string,
) RegisterVendorCommandHandler {
	return RegisterVendorCommandHandler{
		uowFactory:      uowFactory,
		clock:           clock,
		defaultTimeZone: defaultTimeZone,
	}
}

func (h *RegisterVendorCommandHandler) Handle(ctx context.Context, cmd RegisterVendorCommand) (*vendor.Vendor, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	profile := cmd.Profile()
	if profile.TimeZone == "" {
		profile.TimeZone = h.defaultTimeZone
	}

	v, err := vendor.NewVendor(cmd.VendorID(), cmd.UserID(), profile, h.clock.Now())
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

	vendorRepo := uow.VendorRepository()
	exists, err := vendorRepo.ExistsForUser(ctx, cmd.UserID())
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errs.NewConflictError("vendor profile for user", cmd.UserID().String())
	}

	if err = vendorRepo.Add(ctx, v); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return v, nil
}
