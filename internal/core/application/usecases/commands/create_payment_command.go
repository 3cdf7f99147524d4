package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/identity"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/payment"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrCreatePaymentCommandIsNotConstructed = errors.New(
	"CreatePaymentCommand must be created via NewCreatePaymentCommand constructor",
)

// CreatePaymentCommand starts a hosted Paystack checkout for the caller.
type CreatePaymentCommand struct { //nolint:recvcheck //using for validation
	userID      kernel.UUID
	paymentID   kernel.UUID
	amount      kernel.Money
	currency    string
	method      payment.Method
	description string

	guard guard.ConstructorGuard
}

func NewCreatePaymentCommand(
	principal identity.Principal,
	paymentID kernel.UUID,
	amount kernel.Money,
	currency string,
	method payment.Method,
	description string,
) (CreatePaymentCommand, error) {
	if principal == nil {
		return CreatePaymentCommand{}, errs.NewValueIsRequiredError("principal")
	}
	if err := paymentID.Validate(); err != nil {
		return CreatePaymentCommand{}, errs.NewValueIsRequiredErrorWithCause("payment id", err)
	}

	return CreatePaymentCommand{
		userID:      principal.UserID(),
		paymentID:   paymentID,
		amount:      amount,
		currency:    currency,
		method:      method,
		description: description,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c CreatePaymentCommand) Validate() error {
	return c.guard.Validate(ErrCreatePaymentCommandIsNotConstructed)
}

func (c CreatePaymentCommand) UserID() kernel.UUID { return c.userID }
func (c CreatePaymentCommand) PaymentID() kernel.UUID { return c.paymentID }
func (c CreatePaymentCommand) Amount() kernel.Money { return c.amount }
func (c CreatePaymentCommand) Currency() string { return c.currency }
func (c CreatePaymentCommand) Method() payment.Method { return c.method }
func (c CreatePaymentCommand) Description() string { return c.description }
