package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/weekly-exercises/catalog-api/internal/core/domain"
)

// currentClaims returns the claims injected by the Auth middleware. A handler
// mounted without the middleware gets domain.ErrUnauthorized.
func currentClaims(c echo.Context) (*domain.Claims, error) {
	claims, ok := domain.ClaimsFrom(c.Request().Context())
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return claims, nil
}
