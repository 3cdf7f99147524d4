package ports

import (
	"context"

	"marketplace/internal/core/domain/model/payment"
)

type PaymentRepository interface {
	// Add persists a new payment. A duplicate reference is a ConflictError.
	Add(ctx context.Context, p *payment.Payment) error
	Update(ctx context.Context, p *payment.Payment) error
	// GetByReferenceForUpdate locks the payment row for webhook processing.
	GetByReferenceForUpdate(ctx context.Context, reference string) (*payment.Payment, error)
}
