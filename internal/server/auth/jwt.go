// Package auth issues and verifies the signed access tokens that identify
// users, and extracts bearer tokens from the Authorization header.
package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/fablehq/fable-server/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// BearerPrefix is the expected Authorization header scheme.
const BearerPrefix = "Bearer "

// Claims includes the registered claims plus the user's ID as subject data.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"uid"`
}

// GenerateToken mints an HS256-signed token binding userID, valid for
// validityDuration from now.
func GenerateToken(userID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		UserID: userID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetUserIDFromToken verifies the signature and expiry of tokenString and
// returns the bound user ID. Expired tokens yield common.ErrTokenExpired;
// any other verification failure yields common.ErrInvalidToken.
func GetUserIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}

	if !token.Valid || claims.UserID == "" {
		return "", common.ErrInvalidToken
	}

	return claims.UserID, nil
}

// ExtractBearer returns the token part of an Authorization header value.
// The value must start with "Bearer " and carry a non-empty remainder;
// otherwise common.ErrMissingToken is returned.
func ExtractBearer(headerValue string) (string, error) {
	if !strings.HasPrefix(headerValue, BearerPrefix) {
		return "", common.ErrMissingToken
	}
	token := headerValue[len(BearerPrefix):]
	if token == "" {
		return "", common.ErrMissingToken
	}
	return token, nil
}
