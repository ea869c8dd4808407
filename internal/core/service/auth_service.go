package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/mercadito/marketplace-api/internal/core/domain"
	"github.com/mercadito/marketplace-api/internal/core/ports"
	"github.com/mercadito/marketplace-api/pkg/token"
)

// LoginThrottle abstracts the failed-login rate limiter (Redis).
type LoginThrottle interface {
	TooManyFailures(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}

// dummyHash is a valid bcrypt hash of an unguessable value. When the email
// does not exist we still run one bcrypt comparison against it so the
// response time never reveals whether the account exists.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// AuthService implements registration and login.
type AuthService struct {
	repo     ports.UserRepository
	codec    *token.Codec
	throttle LoginThrottle
	audit    ports.AuditSink
	logger   zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, codec *token.Codec, throttle LoginThrottle, audit ports.AuditSink, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, codec: codec, throttle: throttle, audit: audit, logger: logger}
}

// Register creates an account with role "user", a bcrypt password hash, and
// a freshly issued token. The ExistsByEmail pre-check gives a fast answer;
// the store's unique index on email remains the authoritative guard, and a
// concurrent duplicate insert still comes back as domain.ErrEmailTaken.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*ports.AuthResult, error) {
	if input.Email == "" || input.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	taken, err := s.repo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        input.Email,
		GivenName:    input.GivenName,
		FamilyName:   input.FamilyName,
		PasswordHash: string(hash),
		Roles:        []string{domain.RoleUser},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	signed, err := s.codec.Issue(created.Email, created.ID, created.Roles, now)
	if err != nil {
		return nil, err
	}

	s.record(ports.AuditEntry{Subject: created.Email, Action: ports.AuditUserRegistered, Timestamp: now})
	s.logger.Info().Str("email", created.Email).Msg("user registered")

	return &ports.AuthResult{User: created, Token: signed}, nil
}

// Login verifies credentials and issues a token. A missing account and a
// wrong password both return domain.ErrInvalidCredentials, with no
// distinguishable signal in the response or its timing.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		blocked, err := s.throttle.TooManyFailures(ctx, email)
		if err != nil {
			s.logger.Warn().Err(err).Msg("login throttle check failed, proceeding")
		} else if blocked {
			return nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
		s.loginFailed(ctx, email)
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		// A store failure is not a credential failure: it must surface as an
		// internal error, not count against the account.
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.loginFailed(ctx, email)
		return nil, domain.ErrInvalidCredentials
	}

	now := time.Now().UTC()
	signed, err := s.codec.Issue(user.Email, user.ID, user.Roles, now)
	if err != nil {
		return nil, err
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, email); err != nil {
			s.logger.Warn().Err(err).Msg("login throttle reset failed")
		}
	}
	s.record(ports.AuditEntry{Subject: user.Email, Action: ports.AuditLoginSucceeded, Timestamp: now})

	return &ports.AuthResult{User: user, Token: signed}, nil
}

func (s *AuthService) loginFailed(ctx context.Context, email string) {
	if s.throttle != nil {
		if err := s.throttle.RecordFailure(ctx, email); err != nil {
			s.logger.Warn().Err(err).Msg("login throttle record failed")
		}
	}
	s.record(ports.AuditEntry{Subject: email, Action: ports.AuditLoginFailed, Timestamp: time.Now().UTC()})
}

func (s *AuthService) record(entry ports.AuditEntry) {
	if s.audit != nil {
		s.audit.Record(entry)
	}
}
