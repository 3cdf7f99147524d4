// Package outbox models integration events stored alongside the aggregate
// change that produced them and relayed to brokers afterwards.
package outbox

import (
	"encoding/json"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// Message is one pending or relayed integration event.
//
// PartitionKey groups messages that must stay ordered; for order events it is
// the vendor id, which also routes them to the vendor's live feed.
type Message struct {
	ID           kernel.UUID
	AggregateID  kernel.UUID
	EventType    string
	PartitionKey string
	Payload      []byte
	OccurredAt   time.Time
	ProcessedAt  *time.Time
}

// NewMessage serializes event as JSON.
func NewMessage(aggregateID kernel.UUID, eventType, partitionKey string, event any, occurredAt time.Time) (Message, error) {
	if err := aggregateID.Validate(); err != nil {
		return Message{}, errs.NewValueIsRequiredErrorWithCause("aggregate id", err)
	}
	if strings.TrimSpace(eventType) == "" {
		return Message{}, errs.NewValueIsRequiredError("event type")
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return Message{}, errs.NewValueIsInvalidErrorWithCause("event payload", err)
	}

	return Message{
		ID:           kernel.NewUUID(),
		AggregateID:  aggregateID,
		EventType:    eventType,
		PartitionKey: partitionKey,
		Payload:      payload,
		OccurredAt:   occurredAt,
	}, nil
}
