package ports

import (
	"context"

	"marketplace/internal/core/domain/model/identity"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order together with its line items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update writes the order only if its stored version still equals
	// aggregate.Version(), bumping the version on success. A lost race is a
	// ConflictError. Events pulled from the aggregate are written to the
	// outbox in the same transaction.
	Update(ctx context.Context, aggregate *order.Order) error

	// GetForUpdate loads the order visible to owner and locks its row until
	// the surrounding transaction ends. Customers see their own orders,
	// vendors the orders placed with them; anything else is ObjectNotFound.
	GetForUpdate(ctx context.Context, id kernel.UUID, owner identity.Principal) (*order.Order, error)
}
