// Package auth issues and verifies the signed bearer tokens handed out by
// POST /token.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/streetsmarts/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the registered claims plus the username, which the client
// shows without another round-trip. Subject holds the user id.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// nowFn is a seam for tests.
var nowFn = time.Now

func GenerateToken(userID, username string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := nowFn()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		Username: username,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies signature, algorithm and expiry. Expired tokens yield
// common.ErrTokenExpired; anything else unusable yields common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(nowFn))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid || claims.Subject == "" {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}

// GetUserIDFromToken is ParseToken for callers that only need the subject.
func GetUserIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims, err := ParseToken(tokenString, secretKey)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}
