package queries

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/identity"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetVendorTransactionsQueryHandler struct {
	db *gorm.DB
}

func NewGetVendorTransactionsQueryHandler(db *gorm.DB) GetVendorTransactionsQueryHandler {
	return GetVendorTransactionsQueryHandler{db: db}
}

// Handle reads every payment-confirmed order of the vendor, ordered by
// created_at then id, both descending.
func (h GetVendorTransactionsQueryHandler) Handle(
	ctx context.Context,
	query GetVendorTransactionsQuery,
) (GetVendorTransactionsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetVendorTransactionsQueryResponse{}, err
	}

	loc, err := vendorLocation(ctx, h.db, query.vendorID)
	if err != nil {
		return GetVendorTransactionsQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.total_price,
			o.created_at,
			o.status,
			COALESCE(u.first_name, ''),
			COALESCE(u.last_name, ''),
			COALESCE(u.username, '')
		FROM orders o
		LEFT JOIN users u ON u.id = o.user_id
		WHERE o.vendor_id = ? AND o.payment_confirmed
		ORDER BY o.created_at DESC, o.id DESC
	`, query.vendorID.Bytes()).Rows()
	if err != nil {
		return GetVendorTransactionsQueryResponse{}, err
	}
	defer rows.Close()

	resp := GetVendorTransactionsQueryResponse{Transactions: make([]VendorTransaction, 0)}
	for rows.Next() {
		var (
			id                    uuid.UUID
			amount                int64
			createdAt             time.Time
			status                string
			first, last, username string
			tx                    VendorTransaction
		)
		if err = rows.Scan(&id, &amount, &createdAt, &status, &first, &last, &username); err != nil {
			return GetVendorTransactionsQueryResponse{}, err
		}

		if tx.OrderID, err = fromUUID(id); err != nil {
			return GetVendorTransactionsQueryResponse{}, err
		}
		if tx.Amount, err = kernel.NewMoney(amount); err != nil {
			return GetVendorTransactionsQueryResponse{}, err
		}
		if tx.Status, err = order.StatusFromCode(status); err != nil {
			return GetVendorTransactionsQueryResponse{}, err
		}
		tx.Date = createdAt.In(loc).Format(TransactionDateLayout)
		tx.Customer = identity.DisplayName(first, last, username)

		resp.TotalEarnings = resp.TotalEarnings.Add(tx.Amount)
		resp.Transactions = append(resp.Transactions, tx)
	}

	if err = rows.Err(); err != nil {
		return GetVendorTransactionsQueryResponse{}, err
	}
	return resp, nil
}
