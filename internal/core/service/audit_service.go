package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mercadito/marketplace-api/internal/core/ports"
)

type auditService struct {
	repo   ports.AuditRepository
	logger zerolog.Logger
}

// NewAuditService returns an AuditService that persists entries to the
// audit repository.
func NewAuditService(repo ports.AuditRepository, logger zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, logger: logger}
}

// Process persists a single audit entry.
func (s *auditService) Process(ctx context.Context, entry ports.AuditEntry) error {
	if err := s.repo.Insert(ctx, entry); err != nil {
		return fmt.Errorf("record audit entry: %w", err)
	}
	s.logger.Debug().
		Str("subject", entry.Subject).
		Str("action", entry.Action).
		Msg("audit entry recorded")
	return nil
}
