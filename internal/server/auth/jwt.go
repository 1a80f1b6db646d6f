// Package auth issues and verifies the directory server's access tokens.
package auth

import (
	"time"

	"github.com/geosick-health/geosick/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the account identity alongside the standard claims.
type Claims struct {
	jwt.RegisteredClaims
	Phone string `json:"phone"`
	Role  string `json:"role"`
}

// GenerateToken signs an HS256 token for the given account.
func GenerateToken(phone, role string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		Phone: phone,
		Role:  role,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies the token signature and expiry and returns its claims.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
