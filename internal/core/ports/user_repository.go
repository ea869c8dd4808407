package ports

import (
	"context"

	"github.com/mercadito/marketplace-api/internal/core/domain"
)

// UserRepository defines the interface for account persistence.
// Email uniqueness is enforced by the store itself; Create must surface a
// concurrent duplicate insert as domain.ErrEmailTaken.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
