// Package outboxrepo stores integration events in the outbox_messages table.
package outboxrepo

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/outbox"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MessageDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	AggregateID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	EventType    string     `gorm:"size:100;not null"`
	PartitionKey string     `gorm:"size:100"`
	Payload      []byte     `gorm:"type:jsonb;not null"`
	OccurredAt   time.Time  `gorm:"not null;index"`
	ProcessedAt  *time.Time `gorm:"index"`
}

func (MessageDTO) TableName() string {
	return "outbox_messages"
}

type GormOutboxRepository struct {
	db *gorm.DB
}

func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

// Add stores msg using the repository's connection, which is the caller's
// transaction when one is open.
func (r *GormOutboxRepository) Add(ctx context.Context, msg outbox.Message) error {
	dto := MessageDTO{
		ID:           msg.ID.Bytes(),
		AggregateID:  msg.AggregateID.Bytes(),
		EventType:    msg.EventType,
		PartitionKey: msg.PartitionKey,
		Payload:      msg.Payload,
		OccurredAt:   msg.OccurredAt,
		ProcessedAt:  msg.ProcessedAt,
	}
	return r.db.WithContext(ctx).Create(&dto).Error
}

// ClaimBatch selects the oldest unprocessed messages FOR UPDATE SKIP LOCKED.
func (r *GormOutboxRepository) ClaimBatch(ctx context.Context, limit int) ([]outbox.Message, error) {
	var dtos []MessageDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("processed_at IS NULL").
		Order("occurred_at, id").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	messages := make([]outbox.Message, 0, len(dtos))
	for _, dto := range dtos {
		id, idErr := kernel.UUIDFromBytes(dto.ID[:])
		if idErr != nil {
			return nil, idErr
		}
		aggregateID, idErr := kernel.UUIDFromBytes(dto.AggregateID[:])
		if idErr != nil {
			return nil, idErr
		}
		messages = append(messages, outbox.Message{
			ID:           id,
			AggregateID:  aggregateID,
			EventType:    dto.EventType,
			PartitionKey: dto.PartitionKey,
			Payload:      dto.Payload,
			OccurredAt:   dto.OccurredAt,
			ProcessedAt:  dto.ProcessedAt,
		})
	}
	return messages, nil
}

func (r *GormOutboxRepository) MarkProcessed(ctx context.Context, ids []kernel.UUID, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	raw := make([]uuid.UUID, len(ids))
	for i, id := range ids {
		raw[i] = id.Bytes()
	}
	return r.db.WithContext(ctx).
		Model(&MessageDTO{}).
		Where("id IN ?", raw).
		Update("processed_at", at).Error
}
