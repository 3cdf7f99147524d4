package queries

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/payment"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListUserPaymentsQueryHandler struct {
	db *gorm.DB
}

func NewListUserPaymentsQueryHandler(db *gorm.DB) ListUserPaymentsQueryHandler {
	return ListUserPaymentsQueryHandler{db: db}
}

func (h ListUserPaymentsQueryHandler) Handle(ctx context.Context, query ListUserPaymentsQuery) ([]UserPayment, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			amount,
			currency,
			payment_method,
			paystack_reference,
			COALESCE(paystack_transaction_id, ''),
			status,
			COALESCE(description, ''),
			created_at
		FROM payments
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
	`, query.userID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := make([]UserPayment, 0)
	for rows.Next() {
		var (
			id             uuid.UUID
			amount         int64
			method, status string
			p              UserPayment
		)
		err = rows.Scan(&id, &amount, &p.Currency, &method, &p.Reference, &p.TransactionID, &status,
			&p.Description, &p.CreatedAt)
		if err != nil {
			return nil, err
		}
		if p.ID, err = fromUUID(id); err != nil {
			return nil, err
		}
		if p.Amount, err = kernel.NewMoney(amount); err != nil {
			return nil, err
		}
		p.Method = payment.Method(method)
		p.Status = payment.Status(status)
		payments = append(payments, p)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return payments, nil
}
