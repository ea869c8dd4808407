package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mercadito/marketplace-api/internal/api/metrics"
	"github.com/mercadito/marketplace-api/internal/api/policy"
	"github.com/mercadito/marketplace-api/internal/core/domain"
	"github.com/mercadito/marketplace-api/internal/core/ports"
)

// Authorize enforces the static route rules. A request failing here never
// reaches a handler: no principal where one is required maps to 401,
// an insufficient role to 403. Denials are counted and audited.
func Authorize(table policy.Table, audit ports.AuditSink) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var principal *domain.Principal
			if p, ok := PrincipalFrom(c); ok {
				principal = &p
			}

			decision := table.Evaluate(c.Request().Method, c.Request().URL.Path)
			if err := decision.Allows(principal); err != nil {
				reason := "unauthenticated"
				subject := ""
				if principal != nil {
					reason = "forbidden"
					subject = principal.Email
				}
				metrics.AccessDeniedTotal.WithLabelValues(reason).Inc()
				if audit != nil {
					audit.Record(ports.AuditEntry{
						Subject:   subject,
						Action:    ports.AuditAccessDenied,
						Detail:    c.Request().Method + " " + c.Request().URL.Path,
						Timestamp: time.Now().UTC(),
					})
				}
				return err
			}
			return next(c)
		}
	}
}
