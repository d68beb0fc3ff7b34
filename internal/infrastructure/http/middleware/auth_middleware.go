package middleware

import (
	stdErrors "errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ShashankMk031/ZenAI-AI-Backend/errors"
	"github.com/ShashankMk031/ZenAI-AI-Backend/pkg/jwt"
)

// Context keys set on authenticated requests
const (
	ClaimsContextKey  = "claims"
	SubjectContextKey = "subject"
)

// TokenValidator validates API bearer tokens
type TokenValidator interface {
	ValidateToken(token string) (*jwt.Claims, error)
}

// EchoAuth returns an Echo middleware that requires a valid bearer token and
// stores its claims on the context. A nil validator lets every request through.
func EchoAuth(validator TokenValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if validator == nil {
			return next
		}
		return func(c echo.Context) error {
			token := extractToken(c)
			if token == "" {
				return reject(c, errors.ErrUnauthenticated())
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				if stdErrors.Is(err, jwt.ErrTokenExpired) {
					return reject(c, errors.ErrTokenExpired())
				}
				return reject(c, errors.ErrInvalidToken())
			}

			c.Set(ClaimsContextKey, claims)
			c.Set(SubjectContextKey, claims.Subject)
			return next(c)
		}
	}
}

// GetSubject returns the authenticated caller, if any
func GetSubject(c echo.Context) (string, bool) {
	subject, ok := c.Get(SubjectContextKey).(string)
	return subject, ok
}

func extractToken(c echo.Context) string {
	// Expected format: "Bearer <token>"
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

func reject(c echo.Context, appErr errors.AppError) error {
	return c.JSON(appErr.HTTPCode, map[string]interface{}{
		"code":    appErr.Code,
		"message": appErr.Message,
	})
}
