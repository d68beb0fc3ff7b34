package jwt

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims represents the API token claims. Subject names the caller.
type Claims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}
