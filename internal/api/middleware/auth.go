package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/mercadito/marketplace-api/internal/core/domain"
	"github.com/mercadito/marketplace-api/pkg/token"
)

// principalKey is the echo context key the resolved principal lives under.
const principalKey = "auth.principal"

// PrincipalFrom returns the principal bound to the request, if any.
func PrincipalFrom(c echo.Context) (domain.Principal, bool) {
	p, ok := c.Get(principalKey).(domain.Principal)
	return p, ok
}

// BindPrincipal attaches a principal to the request context. Exported so
// handler tests can exercise authenticated paths without running the gate.
func BindPrincipal(c echo.Context, p domain.Principal) {
	c.Set(principalKey, p)
}

// Authenticate resolves the bearer token into a request-scoped principal.
//
// The gate fails open to anonymous: a missing header, a non-Bearer scheme,
// or a token that will not parse all leave the request unauthenticated and
// let it continue, deferring the reject decision to the authorization
// layer. That keeps public routes reachable even with a garbage header.
// If a principal is already bound the gate does nothing, so running it
// twice can never overwrite an identity.
func Authenticate(codec *token.Codec, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, bound := PrincipalFrom(c); bound {
				return next(c)
			}

			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return next(c)
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return next(c)
			}

			raw := strings.TrimSpace(parts[1])
			claims, err := codec.Parse(raw)
			if err != nil {
				log.Debug().Err(err).Str("path", c.Path()).Msg("bearer token rejected, continuing as anonymous")
				return next(c)
			}

			BindPrincipal(c, domain.Principal{
				SubjectID: claims.UserID,
				Email:     claims.Subject,
				Roles:     claims.Roles,
			})
			return next(c)
		}
	}
}
