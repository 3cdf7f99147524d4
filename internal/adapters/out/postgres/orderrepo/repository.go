package orderrepo

import (
	"context"
	"errors"

	"marketplace/internal/adapters/out/postgres/outboxrepo"
	"marketplace/internal/core/domain/model/identity"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/outbox"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order and its line items.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update compares and swaps on the version column and writes one outbox
// message per recorded status change.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(map[string]any{
			"status":                    dto.Status,
			"payment_confirmed":         dto.PaymentConfirmed,
			"payment_confirmed_at":      dto.PaymentConfirmedAt,
			"user_receipt_confirmed":    dto.UserReceiptConfirmed,
			"user_receipt_confirmed_at": dto.UserReceiptConfirmedAt,
			"order_ready_at":            dto.OrderReadyAt,
			"out_for_delivery_at":       dto.OutForDeliveryAt,
			"delivered_at":              dto.DeliveredAt,
			"updated_at":                dto.UpdatedAt,
			"version":                   gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewConflictError("order", aggregate.ID().String())
	}

	outboxRepo := outboxrepo.NewGormOutboxRepository(r.db)
	for _, event := range aggregate.PullEvents() {
		msg, err := outbox.NewMessage(event.OrderID, order.EventStatusChanged, event.VendorID.String(), event, event.OccurredAt)
		if err != nil {
			return err
		}
		if err = outboxRepo.Add(ctx, msg); err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// GetForUpdate locks the order row with SELECT ... FOR UPDATE.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID, owner identity.Principal) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	q := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"})
	switch p := owner.(type) {
	case identity.Customer:
		q = q.Where("user_id = ?", p.UserID().Bytes())
	case identity.Vendor:
		q = q.Where("vendor_id = ?", p.VendorID().Bytes())
	default:
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}

	var dto OrderDTO
	if err := q.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	if err := r.db.WithContext(ctx).
		Where("order_id = ?", dto.ID).
		Order("position").
		Find(&dto.Items).Error; err != nil {
		return nil, err
	}

	return toDomain(dto)
}
