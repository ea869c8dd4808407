package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mercadito/marketplace-api/internal/api/middleware"
	"github.com/mercadito/marketplace-api/internal/core/domain"
)

// currentPrincipal extracts the principal bound by the authentication gate.
// Handlers behind an authenticated route should always find one; its absence
// means the route table and the route registration disagree, which is safer
// surfaced as 401 than as a nil-principal ownership check downstream.
func currentPrincipal(c echo.Context) (domain.Principal, error) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		return domain.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return p, nil
}
