// Package auth issues and verifies the access tokens that carry a caller's
// identity and classification.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/linekeeper/internal/common"
	"github.com/dmitrijs2005/linekeeper/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
)

const issuer = "linekeeper"

// Claims are the registered claims plus the caller's classification.
// Subject is "table:id".
type Claims struct {
	jwt.RegisteredClaims
	Classification string `json:"cls"`
}

// GenerateToken signs an HS256 token for caller valid for validityDuration.
func GenerateToken(caller models.Caller, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   caller.Subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		Classification: string(caller.Classification),
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return tokenString, nil
}

// ParseToken verifies tokenString and returns the caller it names.
// Expired tokens fail with ErrTokenExpired, anything else unusable with
// ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (models.Caller, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.Caller{}, common.ErrTokenExpired
		}
		return models.Caller{}, common.ErrInvalidToken
	}
	if !token.Valid || claims.Subject == "" {
		return models.Caller{}, common.ErrInvalidToken
	}

	c, err := models.ParseClassification(claims.Classification)
	if err != nil {
		return models.Caller{}, common.ErrInvalidToken
	}
	return models.Caller{Subject: claims.Subject, Classification: c}, nil
}
