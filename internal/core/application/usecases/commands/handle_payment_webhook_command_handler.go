package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/payment"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

const (
	EventChargeSuccess = "charge.success"
	EventChargeFailed  = "charge.failed"
)

var ErrInvalidWebhookSignature = errors.New("invalid signature")

type webhookEnvelope struct {
	Event string         `json:"event"`
	Data  map[string]any `json:"data"`
}

// HandlePaymentWebhookCommandHandler settles payments from gateway
// notifications. Events other than charge.success and charge.failed are
// acknowledged and ignored, as is charge.failed for a payment that already
// succeeded.
type HandlePaymentWebhookCommandHandler struct {
	uowFactory PaymentUoWFactory
	gateway    ports.PaymentGateway
	clock      ports.Clock
}

func NewHandlePaymentWebhookCommandHandler(
	uowFactory PaymentUoWFactory,
	gateway ports.PaymentGateway,
	clock ports.Clock,
) HandlePaymentWebhookCommandHandler {
	return HandlePaymentWebhookCommandHandler{
		uowFactory: uowFactory,
		gateway:    gateway,
		clock:      clock,
	}
}

// HandlePaymentWebhookResult tells the caller whether the notification
// changed a payment. Ignored notifications are still acknowledged.
type HandlePaymentWebhookResult struct {
	Event     string
	Reference string
	Applied   bool
}

func (h *HandlePaymentWebhookCommandHandler) Handle(ctx context.Context, cmd HandlePaymentWebhookCommand) (HandlePaymentWebhookResult, error) {
	if err := cmd.Validate(); err != nil {
		return HandlePaymentWebhookResult{}, err
	}

	if !h.gateway.VerifySignature(cmd.Body(), cmd.Signature()) {
		return HandlePaymentWebhookResult{}, errs.NewValueIsInvalidErrorWithCause("webhook signature", ErrInvalidWebhookSignature)
	}

	envelope, err := decodeWebhook(cmd.Body())
	if err != nil {
		return HandlePaymentWebhookResult{}, err
	}
	result := HandlePaymentWebhookResult{Event: envelope.Event}
	if envelope.Event != EventChargeSuccess && envelope.Event != EventChargeFailed {
		return result, nil
	}

	result.Reference, _ = envelope.Data["reference"].(string)
	if result.Reference == "" {
		return result, errs.NewValueIsRequiredError("data.reference")
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return result, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	paymentRepo := uow.PaymentRepository()
	p, err := paymentRepo.GetByReferenceForUpdate(ctx, result.Reference)
	if err != nil {
		return result, err
	}

	now := h.clock.Now()
	switch envelope.Event {
	case EventChargeSuccess:
		p.MarkSuccessful(transactionID(envelope.Data["id"]), envelope.Data, now)
	case EventChargeFailed:
		err = p.MarkFailed(envelope.Data, now)
		if errors.Is(err, payment.ErrPaymentAlreadySettled) {
			return result, nil
		}
		if err != nil {
			return result, err
		}
	}

	if err = paymentRepo.Update(ctx, p); err != nil {
		return result, err
	}
	if err = uow.Commit(ctx); err != nil {
		return result, err
	}

	result.Applied = true
	return result, nil
}

func decodeWebhook(body []byte) (webhookEnvelope, error) {
	var envelope webhookEnvelope
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&envelope); err != nil {
		return webhookEnvelope{}, errs.NewValueIsInvalidErrorWithCause("webhook body", err)
	}
	return envelope, nil
}

// transactionID renders Paystack's numeric transaction id without exponent
// notation.
func transactionID(v any) string {
	switch id := v.(type) {
	case nil:
		return ""
	case json.Number:
		return id.String()
	default:
		return fmt.Sprint(id)
	}
}
