// Package auth issues and verifies the signed session tokens carried
// in the Authorization header.
package auth

import (
	"errors"
	"time"

	"fordinner/internal/pkg/common"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the registered claims plus the decoded identity the API
// layer works with.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string  `json:"userId"`
	Email    string  `json:"email"`
	Username *string `json:"username,omitempty"`
}

// GenerateToken signs a session token for a user identity.
func GenerateToken(userID, email string, username *string, secretKey []byte, validity time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validity)),
		},
		UserID:   userID,
		Email:    email,
		Username: username,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies a token and returns its claims. Expired tokens
// and malformed/invalid tokens surface as distinct errors so the API
// layer can answer 401 vs 403.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.WrapError(common.ErrTokenExpired, err)
		}
		return nil, common.WrapError(common.ErrInvalidToken, err)
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
