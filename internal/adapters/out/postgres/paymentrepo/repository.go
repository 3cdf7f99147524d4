// Package paymentrepo persists gateway payments.
package paymentrepo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/payment"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// uniqueViolation is the Postgres SQLSTATE for a unique constraint failure.
const uniqueViolation = "23505"

type PaymentDTO struct {
	ID                    uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID                uuid.UUID `gorm:"type:uuid;not null;index"`
	Amount                int64     `gorm:"not null"`
	Currency              string    `gorm:"size:3;not null;default:NGN"`
	PaymentMethod         string    `gorm:"size:20;not null"`
	PaystackReference     string    `gorm:"size:100;not null;uniqueIndex"`
	PaystackTransactionID *string   `gorm:"size:100"`
	Status                string    `gorm:"size:20;not null;default:pending"`
	Description           string
	Metadata              []byte    `gorm:"type:jsonb;not null;default:'{}'"`
	CreatedAt             time.Time `gorm:"not null;index;autoCreateTime:false"`
	UpdatedAt             time.Time `gorm:"not null;autoUpdateTime:false"`
}

func (PaymentDTO) TableName() string {
	return "payments"
}

type GormPaymentRepository struct {
	db *gorm.DB
}

func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

func (r *GormPaymentRepository) Add(ctx context.Context, p *payment.Payment) error {
	if err := p.Validate(); err != nil {
		return err
	}
	dto, err := fromDomain(p)
	if err != nil {
		return err
	}

	if err = r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return errs.NewConflictErrorWithCause("payment reference", dto.PaystackReference, err)
		}
		return err
	}
	return nil
}

func (r *GormPaymentRepository) Update(ctx context.Context, p *payment.Payment) error {
	if err := p.Validate(); err != nil {
		return err
	}
	dto, err := fromDomain(p)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&PaymentDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"status":                  dto.Status,
		"paystack_transaction_id": dto.PaystackTransactionID,
		"metadata":                dto.Metadata,
		"updated_at":              dto.UpdatedAt,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("payment", p.ID().String())
	}
	return nil
}

func (r *GormPaymentRepository) GetByReferenceForUpdate(ctx context.Context, reference string) (*payment.Payment, error) {
	var dto PaymentDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "paystack_reference = ?", reference).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("payment", reference)
		}
		return nil, err
	}
	return toDomain(dto)
}

func fromDomain(p *payment.Payment) (PaymentDTO, error) {
	s := p.Snapshot()
	metadata, err := json.Marshal(s.Metadata)
	if err != nil {
		return PaymentDTO{}, errs.NewValueIsInvalidErrorWithCause("payment metadata", err)
	}

	var txID *string
	if s.TransactionID != "" {
		txID = &s.TransactionID
	}

	return PaymentDTO{
		ID:                    s.ID.Bytes(),
		UserID:                s.UserID.Bytes(),
		Amount:                s.Amount.Minor(),
		Currency:              s.Currency,
		PaymentMethod:         string(s.Method),
		PaystackReference:     s.Reference,
		PaystackTransactionID: txID,
		Status:                string(s.Status),
		Description:           s.Description,
		Metadata:              metadata,
		CreatedAt:             s.CreatedAt,
		UpdatedAt:             s.UpdatedAt,
	}, nil
}

func toDomain(dto PaymentDTO) (*payment.Payment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}
	amount, err := kernel.NewMoney(dto.Amount)
	if err != nil {
		return nil, err
	}

	metadata := map[string]any{}
	if len(dto.Metadata) > 0 {
		if err = json.Unmarshal(dto.Metadata, &metadata); err != nil {
			return nil, err
		}
	}

	var txID string
	if dto.PaystackTransactionID != nil {
		txID = *dto.PaystackTransactionID
	}

	return payment.RestorePayment(payment.Snapshot{
		ID:            id,
		UserID:        userID,
		Amount:        amount,
		Currency:      dto.Currency,
		Method:        payment.Method(dto.PaymentMethod),
		Reference:     dto.PaystackReference,
		TransactionID: txID,
		Status:        payment.Status(dto.Status),
		Description:   dto.Description,
		Metadata:      metadata,
		CreatedAt:     dto.CreatedAt,
		UpdatedAt:     dto.UpdatedAt,
	})
}
