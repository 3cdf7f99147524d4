package ports

import (
	"context"

	"marketplace/internal/core/domain/model/courier"
	"marketplace/internal/core/domain/model/kernel"
)

// CourierRepository stores courier profiles. A user owns at most one, and
// no two couriers share a phone number.
type CourierRepository interface {
	Add(ctx context.Context, c *courier.Courier) error
	Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error)
	ExistsForUser(ctx context.Context, userID kernel.UUID) (bool, error)
	PhoneTaken(ctx context.Context, phone string) (bool, error)
}
