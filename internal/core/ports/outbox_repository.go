package ports

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/outbox"
)

// OutboxRepository serves the relay job. ClaimBatch locks up to limit
// unprocessed messages, skipping rows already locked by another relay, so
// it must run inside a transaction.
type OutboxRepository interface {
	ClaimBatch(ctx context.Context, limit int) ([]outbox.Message, error)
	MarkProcessed(ctx context.Context, ids []kernel.UUID, at time.Time) error
}
