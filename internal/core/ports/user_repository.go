package ports

import (
	"context"

	"marketplace/internal/core/domain/model/identity"
	"marketplace/internal/core/domain/model/kernel"
)

// UserRepository reads accounts owned by the authentication service.
type UserRepository interface {
	Get(ctx context.Context, id kernel.UUID) (identity.User, error)
}
