package commands

import (
	"context"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/outbox"
	"marketplace/internal/core/ports"
)

// RelayOutboxCommandHandler publishes claimed outbox messages in occurrence
// order. Messages are claimed with SKIP LOCKED, so several relays can run
// side by side. Publishing stops at the first failure; messages delivered
// before it are marked processed and the rest stay pending for the next run,
// which makes delivery at-least-once.
type RelayOutboxCommandHandler struct {
	uowFactory OutboxUoWFactory
	publishers []ports.EventPublisher
	clock      ports.Clock
}

func NewRelayOutboxCommandHandler(
	uowFactory OutboxUoWFactory,
	clock ports.Clock,
	publishers ...ports.EventPublisher,
) RelayOutboxCommandHandler {
	return RelayOutboxCommandHandler{
		uowFactory: uowFactory,
		publishers: publishers,
		clock:      clock,
	}
}

// Handle returns the number of messages published.
func (h *RelayOutboxCommandHandler) Handle(ctx context.Context, cmd RelayOutboxCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outboxRepo := uow.OutboxRepository()
	messages, err := outboxRepo.ClaimBatch(ctx, cmd.BatchSize())
	if err != nil {
		return 0, err
	}
	if len(messages) == 0 {
		return 0, nil
	}

	delivered := make([]kernel.UUID, 0, len(messages))
	var publishErr error
	for _, msg := range messages {
		if publishErr = h.publish(ctx, msg); publishErr != nil {
			break
		}
		delivered = append(delivered, msg.ID)
	}

	if err = outboxRepo.MarkProcessed(ctx, delivered, h.clock.Now()); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return len(delivered), publishErr
}

func (h *RelayOutboxCommandHandler) publish(ctx context.Context, msg outbox.Message) error {
	for _, p := range h.publishers {
		if err := p.Publish(ctx, msg); err != nil {
			return fmt.Errorf("publish outbox message %s: %w", msg.ID, err)
		}
	}
	return nil
}
