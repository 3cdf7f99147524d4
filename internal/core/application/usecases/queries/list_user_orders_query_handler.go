package queries

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListUserOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListUserOrdersQueryHandler(db *gorm.DB) ListUserOrdersQueryHandler {
	return ListUserOrdersQueryHandler{db: db}
}

// Handle returns the customer's orders newest first, each with its lines.
func (h ListUserOrdersQueryHandler) Handle(ctx context.Context, query ListUserOrdersQuery) ([]UserOrder, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.vendor_id,
			COALESCE(v.business_name, ''),
			o.order_name,
			o.delivery_address,
			o.total_price,
			o.status,
			o.payment_confirmed,
			o.user_receipt_confirmed,
			o.order_placed_at,
			o.delivered_at
		FROM orders o
		LEFT JOIN vendor_profiles v ON v.id = o.vendor_id
		WHERE o.user_id = ?
		ORDER BY o.created_at DESC, o.id DESC
	`, query.userID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]UserOrder, 0)
	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var (
			id, vendorID uuid.UUID
			total        int64
			status       string
			deliveredAt  *time.Time
			o            UserOrder
		)
		err = rows.Scan(&id, &vendorID, &o.VendorName, &o.Name, &o.DeliveryAddress, &total, &status,
			&o.PaymentConfirmed, &o.UserReceiptConfirmed, &o.PlacedAt, &deliveredAt)
		if err != nil {
			return nil, err
		}
		if o.ID, err = fromUUID(id); err != nil {
			return nil, err
		}
		if o.VendorID, err = fromUUID(vendorID); err != nil {
			return nil, err
		}
		if o.Total, err = kernel.NewMoney(total); err != nil {
			return nil, err
		}
		if o.Status, err = order.StatusFromCode(status); err != nil {
			return nil, err
		}
		o.DeliveredAt = deliveredAt

		orders = append(orders, o)
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	lines, err := loadOrderLines(ctx, h.db, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Lines = lines[ids[i]]
		if orders[i].Lines == nil {
			orders[i].Lines = make([]OrderLine, 0)
		}
	}

	return orders, nil
}
