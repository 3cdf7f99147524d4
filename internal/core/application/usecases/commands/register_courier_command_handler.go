package commands

import (
	"context"

	"marketplace/internal/core/domain/model/courier"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// RegisterCourierCommandHandler stores a new courier profile. A second
// profile for the same account, or a phone number already in use, is a
// ConflictError.
type RegisterCourierCommandHandler struct {
	uowFactory CourierUoWFactory
	clock      ports.Clock
}

func NewRegisterCourierCommandHandler(uowFactory CourierUoWFactory, clock ports.Clock) RegisterCourierCommandHandler {
	return RegisterCourierCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h *RegisterCourierCommandHandler) Handle(ctx context.Context, cmd RegisterCourierCommand) (*courier.Courier, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	c, err := courier.NewCourier(cmd.CourierID(), cmd.UserID(), cmd.Profile(), h.clock.Now())
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

	courierRepo := uow.CourierRepository()
	exists, err := courierRepo.ExistsForUser(ctx, cmd.UserID())
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errs.NewConflictError("courier profile for user", cmd.UserID().String())
	}

	taken, err := courierRepo.PhoneTaken(ctx, c.Phone())
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, errs.NewConflictError("courier phone", c.Phone())
	}

	if err = courierRepo.Add(ctx, c); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return c, nil
}
