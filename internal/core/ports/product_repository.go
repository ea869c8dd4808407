package ports

import (
	"context"

	"github.com/mercadito/marketplace-api/internal/core/domain"
)

// ProductRepository defines persistence operations for products.
type ProductRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	FindAll(ctx context.Context) ([]*domain.Product, error)
	FindByCategory(ctx context.Context, category string) ([]*domain.Product, error)
	FindByOwner(ctx context.Context, ownerID string) ([]*domain.Product, error)
	Save(ctx context.Context, p *domain.Product) (*domain.Product, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	DeleteByID(ctx context.Context, id string) error
}
