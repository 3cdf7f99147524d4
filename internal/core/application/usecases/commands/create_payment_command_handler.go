package commands

import (
	"context"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/payment"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// CreatePaymentResult carries what the client needs to open the checkout.
type CreatePaymentResult struct {
	PaymentID        kernel.UUID
	Reference        string
	AuthorizationURL string
	AccessCode       string
}

// CreatePaymentCommandHandler stores a pending payment, then initializes the
// gateway transaction outside the database transaction. A failed
// initialization is recorded on the payment as failed and reported as
// errs.ErrGatewayUnavailable.
type CreatePaymentCommandHandler struct {
	uowFactory  PaymentUoWFactory
	gateway     ports.PaymentGateway
	clock       ports.Clock
	callbackURL string
}

func NewCreatePaymentCommandHandler(
	uowFactory PaymentUoWFactory,
	gateway ports.PaymentGateway,
	clock ports.Clock,
	callbackURL string,
) CreatePaymentCommandHandler {
	return CreatePaymentCommandHandler{
		uowFactory:  uowFactory,
		gateway:     gateway,
		clock:       clock,
		callbackURL: callbackURL,
	}
}

func (h *CreatePaymentCommandHandler) Handle(ctx context.Context, cmd CreatePaymentCommand) (CreatePaymentResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreatePaymentResult{}, err
	}

	p, email, err := h.store(ctx, cmd)
	if err != nil {
		return CreatePaymentResult{}, err
	}

	checkout, err := h.gateway.Initialize(ctx, ports.InitializeRequest{
		Email:       email,
		AmountMinor: p.Amount().Minor(),
		Currency:    p.Currency(),
		Reference:   p.Reference(),
		CallbackURL: h.callbackURL,
		Metadata: map[string]any{
			"payment_id":  p.ID().String(),
			"user_id":     p.UserID().String(),
			"description": p.Description(),
		},
	})
	if err != nil {
		if markErr := h.markFailed(ctx, p.Reference(), err); markErr != nil {
			return CreatePaymentResult{}, fmt.Errorf("%w: %w (marking payment failed: %w)", errs.ErrGatewayUnavailable, err, markErr)
		}
		return CreatePaymentResult{}, fmt.Errorf("%w: %w", errs.ErrGatewayUnavailable, err)
	}

	return CreatePaymentResult{
		PaymentID:        p.ID(),
		Reference:        p.Reference(),
		AuthorizationURL: checkout.AuthorizationURL,
		AccessCode:       checkout.AccessCode,
	}, nil
}

func (h *CreatePaymentCommandHandler) store(ctx context.Context, cmd CreatePaymentCommand) (*payment.Payment, string, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, "", err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	user, err := uow.UserRepository().Get(ctx, cmd.UserID())
	if err != nil {
		return nil, "", err
	}

	p, err := payment.NewPayment(cmd.PaymentID(), cmd.UserID(), cmd.Amount(), cmd.Currency(),
		cmd.Method(), cmd.Description(), h.clock.Now())
	if err != nil {
		return nil, "", err
	}

	if err = uow.PaymentRepository().Add(ctx, p); err != nil {
		return nil, "", err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, "", err
	}

	return p, user.Email, nil
}

func (h *CreatePaymentCommandHandler) markFailed(ctx context.Context, reference string, cause error) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	paymentRepo := uow.PaymentRepository()
	p, err := paymentRepo.GetByReferenceForUpdate(ctx, reference)
	if err != nil {
		return err
	}

	if err = p.MarkFailed(map[string]any{"error": cause.Error()}, h.clock.Now()); err != nil {
		return err
	}
	if err = paymentRepo.Update(ctx, p); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
