package token

import (
	"errors"
	"time"

	"schoolhub-erp/internal/core/domain"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("token is invalid")
)

// Lifetime is the fixed session token validity window.
const Lifetime = 7 * 24 * time.Hour

// Claims represents the session token claims. Role and school id are a cached
// snapshot of the principal at issue time; the guard re-reads the principal row
// before trusting them.
type Claims struct {
	PrincipalID uint        `json:"principal_id"`
	Role        domain.Role `json:"role"`
	SchoolID    *uint       `json:"school_id,omitempty"`
	jwt.RegisteredClaims
}

// Generate issues a signed session token for the principal.
func Generate(principalID uint, role domain.Role, schoolID *uint, secret string) (string, error) {
	return GenerateAt(principalID, role, schoolID, secret, time.Now())
}

// GenerateAt issues a token with an explicit issue time.
func GenerateAt(principalID uint, role domain.Role, schoolID *uint, secret string, issuedAt time.Time) (string, error) {
	claims := Claims{
		PrincipalID: principalID,
		Role:        role,
		SchoolID:    schoolID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(Lifetime)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			Issuer:    "schoolhub-erp",
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString([]byte(secret))
}

// Validate verifies signature and expiry and returns the claims.
// Malformed, tampered and expired tokens are not distinguished beyond the
// expired case the middleware uses for its message; callers must treat both
// as an authentication failure.
func Validate(tokenString, secret string) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	if claims, ok := tok.Claims.(*Claims); ok && tok.Valid {
		return claims, nil
	}

	return nil, ErrTokenInvalid
}
