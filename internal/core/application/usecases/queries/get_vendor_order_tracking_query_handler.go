package queries

import (
	"context"

	"marketplace/internal/core/domain/model/identity"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetVendorOrderTrackingQueryHandler struct {
	db *gorm.DB
}

func NewGetVendorOrderTrackingQueryHandler(db *gorm.DB) GetVendorOrderTrackingQueryHandler {
	return GetVendorOrderTrackingQueryHandler{db: db}
}

// Handle returns the vendor's orders newest first.
func (h GetVendorOrderTrackingQueryHandler) Handle(
	ctx context.Context,
	query GetVendorOrderTrackingQuery,
) ([]TrackedOrder, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			COALESCE(u.first_name, ''),
			COALESCE(u.last_name, ''),
			COALESCE(u.username, ''),
			o.delivery_address,
			o.total_price,
			o.status
		FROM orders o
		LEFT JOIN users u ON u.id = o.user_id
		WHERE o.vendor_id = ?
		ORDER BY o.created_at DESC, o.id DESC
	`, query.vendorID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tracked := make([]TrackedOrder, 0)
	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var (
			id                    uuid.UUID
			first, last, username string
			total                 int64
			status                string
			o                     TrackedOrder
		)
		if err = rows.Scan(&id, &first, &last, &username, &o.Address, &total, &status); err != nil {
			return nil, err
		}
		if o.ID, err = fromUUID(id); err != nil {
			return nil, err
		}
		if o.Total, err = kernel.NewMoney(total); err != nil {
			return nil, err
		}
		if o.Status, err = order.StatusFromCode(status); err != nil {
			return nil, err
		}
		o.Customer = identity.DisplayName(first, last, username)

		tracked = append(tracked, o)
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
	for i := range tracked {
		items := lines[ids[i]]
		tracked[i].Items = make([]string, 0, len(items))
		for _, line := range items {
			tracked[i].Items = append(tracked[i].Items, line.DishName)
		}
		if len(items) > 0 {
			tracked[i].DishName = items[0].DishName
		}
	}

	return tracked, nil
}
