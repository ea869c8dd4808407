package ports

import (
	"context"

	"github.com/mercadito/marketplace-api/internal/core/domain"
)

// RegisterInput carries all data needed to create an account.
type RegisterInput struct {
	Email      string
	Password   string
	GivenName  string
	FamilyName string
}

// AuthResult is returned by Register and Login: the account plus a freshly
// issued bearer token.
type AuthResult struct {
	User  *domain.User
	Token string
}

// AuthService defines the authentication use cases.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
}
