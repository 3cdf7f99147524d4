package commands

import (
	"errors"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

const DefaultRelayBatchSize = 100

var ErrRelayOutboxCommandIsNotConstructed = errors.New(
	"RelayOutboxCommand must be created via NewRelayOutboxCommand constructor",
)

// RelayOutboxCommand moves up to BatchSize pending outbox messages to the
// configured publishers.
type RelayOutboxCommand struct {
	batchSize int

	guard guard.ConstructorGuard
}

func NewRelayOutboxCommand(batchSize int) (RelayOutboxCommand, error) {
	if batchSize <= 0 {
		return RelayOutboxCommand{}, errs.NewValueIsOutOfRangeError("batch size", batchSize, 1, "unbounded")
	}

	return RelayOutboxCommand{
		batchSize: batchSize,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c RelayOutboxCommand) Validate() error {
	return c.guard.Validate(ErrRelayOutboxCommandIsNotConstructed)
}

func (c RelayOutboxCommand) BatchSize() int {
	return c.batchSize
}
