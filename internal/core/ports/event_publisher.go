package ports

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/outbox"
)

// EventPublisher delivers relayed outbox messages to a broker or live feed.
type EventPublisher interface {
	Publish(ctx context.Context, msg outbox.Message) error
}

// Clock supplies the current time to handlers.
type Clock interface {
	Now() time.Time
}
