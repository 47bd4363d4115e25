package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the typed JWT payload issued by the Sylo auth service.
// BusinessID is the tenant scope for every catalog call.
type Claims struct {
	BusinessID string `json:"business_id"`
	UserID     string `json:"user_id"`
	Role       string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken creates a signed HS256 token. The service itself only
// verifies tokens; this exists for tooling and tests.
func GenerateToken(secret, businessID, userID, role string, ttl time.Duration) (string, error) {
	claims := Claims{
		BusinessID: businessID,
		UserID:     userID,
		Role:       role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ValidateToken parses and validates a JWT string.
func ValidateToken(secret, t string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(t, &Claims{}, func(tok *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
