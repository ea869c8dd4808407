package ports

import (
	"context"

	"github.com/mercadito/marketplace-api/internal/core/domain"
)

// ProductInput carries the client-controlled product fields. The owner is
// deliberately absent: it is always derived from the authenticated
// principal, never from the payload.
type ProductInput struct {
	Name        string
	Price       int
	Category    string
	Description string
	Image       string
	Stock       int
}

// ProductService defines use-case operations for products. Mutating
// operations receive the calling principal and enforce ownership.
type ProductService interface {
	Get(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context, category string) ([]*domain.Product, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Product, error)
	Create(ctx context.Context, principal domain.Principal, input ProductInput) (*domain.Product, error)
	Update(ctx context.Context, principal domain.Principal, id string, input ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, principal domain.Principal, id string) error
}
