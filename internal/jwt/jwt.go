package jwt

import (
	"fmt"
	"strings"
	"time"

	"github.com/alesweet/order-service/internal/models/claims"
	"github.com/alesweet/order-service/internal/models/user"
	"github.com/golang-jwt/jwt/v4"
)

// BuildString creates a JWT string for the given user and token expiration time.
func BuildString(u *user.User, secret string, tokenExp time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims.Auth{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenExp)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID: u.ID,
		Login:  u.Login,
		Role:   u.Role,
	})

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseClaims extracts the auth claims from a JWT token.
// A "Bearer " prefix is tolerated.
func ParseClaims(tokenString, secret string) (*claims.Auth, error) {
	authClaims := new(claims.Auth)

	tokenString = strings.TrimPrefix(tokenString, "Bearer ")

	token, err := jwt.ParseWithClaims(tokenString, authClaims,
		func(token *jwt.Token) (interface{}, error) {
			// Verify that the token method is HS256.
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf(
					"unexpected signing method: %v", token.Header["alg"],
				)
			}

			return []byte(secret), nil
		})
	if err != nil {
		return nil, fmt.Errorf("error parsing token: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return authClaims, nil
}
