package auth

import (
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"voyago/internal/users"
)

type JWTClaims struct {
	UserID uuid.UUID  `json:"user_id"`
	Email  string     `json:"email"`
	Role   users.Role `json:"role"`
	Type   string     `json:"type"` // "access" or "refresh"
	jwt.RegisteredClaims
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}
