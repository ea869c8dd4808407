package ports

import (
	"context"

	"github.com/mercadito/marketplace-api/internal/core/domain"
)

// OrderInput carries the client-controlled order fields.
type OrderInput struct {
	Total  float64
	Status domain.OrderStatus
}

// OrderService defines use-case operations for orders.
type OrderService interface {
	Get(ctx context.Context, id string) (*domain.Order, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Order, error)
	Create(ctx context.Context, principal domain.Principal, input OrderInput) (*domain.Order, error)
	UpdateStatus(ctx context.Context, principal domain.Principal, id string, status domain.OrderStatus) (*domain.Order, error)
	Delete(ctx context.Context, principal domain.Principal, id string) error
}
