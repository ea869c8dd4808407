package ports

import (
	"context"

	"github.com/mercadito/marketplace-api/internal/core/domain"
)

// OrderRepository defines persistence operations for orders.
type OrderRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	FindByOwner(ctx context.Context, ownerID string) ([]*domain.Order, error)
	Save(ctx context.Context, o *domain.Order) (*domain.Order, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	DeleteByID(ctx context.Context, id string) error
}
