package payment

import (
	"errors"
	"fmt"
	"maps"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

var ErrPaymentIsNotConstructed = errors.New("Payment must be created via NewPayment or RestorePayment")

// ErrPaymentAlreadySettled reports a failure notification for a payment that
// has already succeeded.
var ErrPaymentAlreadySettled = errors.New("payment has already succeeded")

// DefaultCurrency is used when a payment request names none.
const DefaultCurrency = "NGN"

type Method string

const (
	MethodCard         Method = "card"
	MethodBankTransfer Method = "bank_transfer"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusSuccessful Status = "successful"
	StatusFailed     Status = "failed"
	StatusCancelled  Status = "cancelled"
)

// Payment is a charge collected through the payment gateway. The reference
// is unique and is what the gateway echoes back in webhooks.
type Payment struct {
	id            kernel.UUID
	userID        kernel.UUID
	amount        kernel.Money
	currency      string
	method        Method
	reference     string
	transactionID string
	status        Status
	description   string
	metadata      map[string]any
	createdAt     time.Time
	updatedAt     time.Time

	isConstructed bool
}

// NewReference builds a gateway reference such as "BESTYY_9F86D081884C7D65".
func NewReference() string {
	raw := strings.ReplaceAll(kernel.NewUUID().String(), "-", "")
	return "BESTYY_" + strings.ToUpper(raw[:16])
}

// NewPayment creates a pending payment with a fresh reference.
func NewPayment(
	id, userID kernel.UUID,
	amount kernel.Money,
	currency string,
	method Method,
	description string,
	now time.Time,
) (*Payment, error) {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		currency = DefaultCurrency
	}

	var problems []error
	if err := id.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("payment id", err))
	}
	if err := userID.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("user id", err))
	}
	if amount.IsZero() {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("amount must be greater than 0")))
	}
	if len(currency) != 3 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("currency", fmt.Errorf("%q is not a 3-letter code", currency)))
	}
	if method != MethodCard && method != MethodBankTransfer {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("payment method", fmt.Errorf("%q is not supported", string(method))))
	}
	if err := errors.Join(problems...); err != nil {
		return nil, err
	}

	return &Payment{
		id:            id,
		userID:        userID,
		amount:        amount,
		currency:      currency,
		method:        method,
		reference:     NewReference(),
		status:        StatusPending,
		description:   strings.TrimSpace(description),
		metadata:      map[string]any{},
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}, nil
}

// Snapshot is the persisted state of a payment.
type Snapshot struct {
	ID            kernel.UUID
	UserID        kernel.UUID
	Amount        kernel.Money
	Currency      string
	Method        Method
	Reference     string
	TransactionID string
	Status        Status
	Description   string
	Metadata      map[string]any
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func RestorePayment(s Snapshot) (*Payment, error) {
	if err := errors.Join(s.ID.Validate(), s.UserID.Validate()); err != nil {
		return nil, err
	}
	if s.Reference == "" {
		return nil, errs.NewValueIsRequiredError("payment reference")
	}
	switch s.Status {
	case StatusPending, StatusSuccessful, StatusFailed, StatusCancelled:
	default:
		return nil, errs.NewValueIsInvalidErrorWithCause("payment status", fmt.Errorf("%q is not a valid status", string(s.Status)))
	}
	if s.Metadata == nil {
		s.Metadata = map[string]any{}
	}
	return &Payment{
		id:            s.ID,
		userID:        s.UserID,
		amount:        s.Amount,
		currency:      s.Currency,
		method:        s.Method,
		reference:     s.Reference,
		transactionID: s.TransactionID,
		status:        s.Status,
		description:   s.Description,
		metadata:      s.Metadata,
		createdAt:     s.CreatedAt,
		updatedAt:     s.UpdatedAt,
		isConstructed: true,
	}, nil
}

func (p *Payment) Snapshot() Snapshot {
	return Snapshot{
		ID:            p.id,
		UserID:        p.userID,
		Amount:        p.amount,
		Currency:      p.currency,
		Method:        p.method,
		Reference:     p.reference,
		TransactionID: p.transactionID,
		Status:        p.status,
		Description:   p.description,
		Metadata:      maps.Clone(p.metadata),
		CreatedAt:     p.createdAt,
		UpdatedAt:     p.updatedAt,
	}
}

func (p *Payment) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPaymentIsNotConstructed
	}
	return nil
}

// MarkSuccessful records a charge.success notification.
func (p *Payment) MarkSuccessful(transactionID string, metadata map[string]any, now time.Time) {
	p.status = StatusSuccessful
	p.transactionID = transactionID
	p.metadata = metadata
	p.updatedAt = now
}

// MarkFailed records a charge.failed notification or a failed initialization.
// A successful payment is final: the call changes nothing and returns
// ErrPaymentAlreadySettled.
func (p *Payment) MarkFailed(metadata map[string]any, now time.Time) error {
	if p.status == StatusSuccessful {
		return ErrPaymentAlreadySettled
	}
	p.status = StatusFailed
	if metadata != nil {
		p.metadata = metadata
	}
	p.updatedAt = now
	return nil
}

func (p *Payment) ID() kernel.UUID { return p.id }
func (p *Payment) UserID() kernel.UUID { return p.userID }
func (p *Payment) Amount() kernel.Money { return p.amount }
func (p *Payment) Currency() string { return p.currency }
func (p *Payment) Method() Method { return p.method }
func (p *Payment) Reference() string { return p.reference }
func (p *Payment) TransactionID() string { return p.transactionID }
func (p *Payment) Status() Status { return p.status }
func (p *Payment) Description() string { return p.description }
