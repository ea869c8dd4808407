package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/mercadito/marketplace-api/internal/core/domain"
	"github.com/mercadito/marketplace-api/internal/core/ports"
)

// ProductService implements product use cases with per-resource ownership
// enforcement on mutations.
type ProductService struct {
	repo   ports.ProductRepository
	audit  ports.AuditSink
	logger zerolog.Logger
}

func NewProductService(repo ports.ProductRepository, audit ports.AuditSink, logger zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, audit: audit, logger: logger}
}

func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ProductService) List(ctx context.Context, category string) ([]*domain.Product, error) {
	if category != "" {
		return s.repo.FindByCategory(ctx, category)
	}
	return s.repo.FindAll(ctx)
}

func (s *ProductService) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Product, error) {
	return s.repo.FindByOwner(ctx, ownerID)
}

// Create stores a new product. The owner is always the calling principal;
// any owner value a client might have sent never reaches this layer.
func (s *ProductService) Create(ctx context.Context, principal domain.Principal, input ports.ProductInput) (*domain.Product, error) {
	now := time.Now().UTC()
	product := &domain.Product{
		Name:        input.Name,
		Price:       input.Price,
		Category:    input.Category,
		Description: input.Description,
		Image:       input.Image,
		Stock:       input.Stock,
		OwnerID:     principal.SubjectID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Save(ctx, product)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create product")
		return nil, err
	}

	s.logger.Info().Str("product_id", created.ID).Str("owner_id", created.OwnerID).Msg("product created")
	return created, nil
}

// Update replaces the client-controlled fields of an existing product.
// Existence is checked before ownership, and OwnerID is carried over from
// the stored document so updates can never reassign ownership.
func (s *ProductService) Update(ctx context.Context, principal domain.Principal, id string, input ports.ProductInput) (*domain.Product, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !principal.CanModify(existing) {
		return nil, domain.ErrForbidden
	}

	existing.Name = input.Name
	existing.Price = input.Price
	existing.Category = input.Category
	existing.Description = input.Description
	existing.Image = input.Image
	existing.Stock = input.Stock
	existing.UpdatedAt = time.Now().UTC()

	return s.repo.Save(ctx, existing)
}

// Delete removes a product after the owner-or-admin check. A missing id
// yields domain.ErrProductNotFound before any authorization decision.
func (s *ProductService) Delete(ctx context.Context, principal domain.Principal, id string) error {
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
			Detail:    "product " + id,
			Timestamp: time.Now().UTC(),
		})
	}
	return nil
}
