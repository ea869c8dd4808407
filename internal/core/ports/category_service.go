package ports

import (
	"context"

	"github.com/mercadito/marketplace-api/internal/core/domain"
)

// CategoryInput carries the client-controlled category fields.
type CategoryInput struct {
	Name        string
	Description string
	Icon        string
}

// CategoryService defines use-case operations for categories. Mutations are
// admin-only; that rule is enforced at the route layer because categories
// carry no owner.
type CategoryService interface {
	Get(ctx context.Context, id string) (*domain.Category, error)
	List(ctx context.Context) ([]*domain.Category, error)
	Create(ctx context.Context, input CategoryInput) (*domain.Category, error)
	Update(ctx context.Context, id string, input CategoryInput) (*domain.Category, error)
	Delete(ctx context.Context, id string) error
}
