package commands

import (
	"errors"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrHandlePaymentWebhookCommandIsNotConstructed = errors.New(
	"HandlePaymentWebhookCommand must be created via NewHandlePaymentWebhookCommand constructor",
)

// HandlePaymentWebhookCommand carries a gateway notification exactly as
// received. The body is kept raw because the signature covers its bytes.
type HandlePaymentWebhookCommand struct { //nolint:recvcheck //using for validation
	body      []byte
	signature string

	guard guard.ConstructorGuard
}

func NewHandlePaymentWebhookCommand(body []byte, signature string) (HandlePaymentWebhookCommand, error) {
	if len(body) == 0 {
		return HandlePaymentWebhookCommand{}, errs.NewValueIsRequiredError("webhook body")
	}
	if signature == "" {
		return HandlePaymentWebhookCommand{}, errs.NewValueIsRequiredError("webhook signature")
	}

	return HandlePaymentWebhookCommand{
		body:      body,
		signature: signature,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c HandlePaymentWebhookCommand) Validate() error {
	return c.guard.Validate(ErrHandlePaymentWebhookCommandIsNotConstructed)
}

func (c HandlePaymentWebhookCommand) Body() []byte { return c.body }
func (c HandlePaymentWebhookCommand) Signature() string { return c.signature }
