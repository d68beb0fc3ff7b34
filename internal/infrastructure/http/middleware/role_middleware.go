package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/ShashankMk031/ZenAI-AI-Backend/errors"
	"github.com/ShashankMk031/ZenAI-AI-Backend/pkg/jwt"
)

// RequireRole only lets callers whose token carries one of roles through.
// Requests without claims pass, since they only reach here when
// authentication is disabled.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get(ClaimsContextKey).(*jwt.Claims)
			if !ok || claims == nil {
				return next(c)
			}
			if !allowed[claims.Role] {
				return reject(c, errors.ErrForbidden())
			}
			return next(c)
		}
	}
}
