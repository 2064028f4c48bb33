// Package auth implements the stateless token layer: HS256-signed JWTs with
// a kind discriminator separating short-lived access tokens from long-lived
// refresh tokens. Tokens are self-contained; no server-side state gates
// their validity.
package auth

import (
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// TokenKind discriminates the two token flavors. A token of one kind is
// never accepted where the other is expected.
type TokenKind string

const (
	KindAccess  TokenKind = "access"
	KindRefresh TokenKind = "refresh"
)

// Claims is the closed claim set carried by every token: the registered
// claims (Subject holds the user ID) plus the kind discriminator.
type Claims struct {
	jwt.RegisteredClaims
	Kind TokenKind `json:"kind"`
}

// GenerateToken signs a token of the given kind for userID, valid from now
// for validityDuration.
func GenerateToken(userID string, kind TokenKind, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		Kind: kind,
	})

	return token.SignedString(secretKey)
}

// GetUserIDFromToken verifies tokenString (signature, expiry, kind, in that
// order) and returns the subject user ID. Every failure collapses into
// common.ErrInvalidToken so the error is not a verification oracle.
func GetUserIDFromToken(tokenString string, expectedKind TokenKind, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return "", common.ErrInvalidToken
	}

	if !token.Valid || claims.Kind != expectedKind || claims.Subject == "" {
		return "", common.ErrInvalidToken
	}

	return claims.Subject, nil
}
