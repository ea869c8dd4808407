package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/mercadito/marketplace-api/internal/core/domain"
	"github.com/mercadito/marketplace-api/internal/core/ports"
)

// OrderService implements order use cases with owner-or-admin enforcement
// on mutations.
type OrderService struct {
	repo   ports.OrderRepository
	audit  ports.AuditSink
	logger zerolog.Logger
}

func NewOrderService(repo ports.OrderRepository, audit ports.AuditSink, logger zerolog.Logger) *OrderService {
	return &OrderService{repo: repo, audit: audit, logger: logger}
}

func (s *OrderService) Get(ctx context.Context, id string) (*domain.Order, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *OrderService) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Order, error) {
	return s.repo.FindByOwner(ctx, ownerID)
}

// Create stores a new order owned by the calling principal.
func (s *OrderService) Create(ctx context.Context, principal domain.Principal, input ports.OrderInput) (*domain.Order, error) {
	status := input.Status
	if status == "" {
		status = domain.OrderPending
	}
	if !domain.ValidOrderStatus(status) {
		return nil, domain.ErrInvalidOrderStatus
	}

	now := time.Now().UTC()
	order := &domain.Order{
		OwnerID:   principal.SubjectID,
		Total:     input.Total,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repo.Save(ctx, order)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create order")
		return nil, err
	}

	s.logger.Info().Str("order_id", created.ID).Str("owner_id", created.OwnerID).Msg("order created")
	return created, nil
}

// UpdateStatus changes an order's status. Only the status field is mutable;
// the owner set at creation is untouchable. Existence is checked before the
// ownership decision.
func (s *OrderService) UpdateStatus(ctx context.Context, principal domain.Principal, id string, status domain.OrderStatus) (*domain.Order, error) {
	if !domain.ValidOrderStatus(status) {
		return nil, domain.ErrInvalidOrderStatus
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !principal.CanModify(existing) {
		return nil, domain.ErrForbidden
	}

	existing.Status = status
	existing.UpdatedAt = time.Now().UTC()

	return s.repo.Save(ctx, existing)
}

// Delete removes an order after the owner-or-admin check.
func (s *OrderService) Delete(ctx context.Context, principal domain.Principal, id string) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !principal.CanModify(existing) {
		return domain.ErrForbidden
	}

	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return err
	}

	if s.audit != nil {
		s.audit.Record(ports.AuditEntry{
			Subject:   principal.Email,
			Action:    ports.AuditResourceDeleted,
			Detail:    "order " + id,
			Timestamp: time.Now().UTC(),
		})
	}
	return nil
}
