// Package auth holds the password hashing and session token primitives shared
// by the auth service and the JWT middleware.
package auth

import (
	"errors"
	"time"

	"github.com/Charusm03/todo-app/internal/model"
	"github.com/Charusm03/todo-app/internal/policy"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every verification failure: bad signature, wrong
// signing method, malformed token, or expiry in the past. Callers must not
// distinguish between these cases.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the identity payload embedded in every session token.
// JSON keys match the tokens issued by earlier deployments of this API.
type Claims struct {
	UserID   string      `json:"id"`
	Username string      `json:"username"`
	Role     policy.Role `json:"role"`
	jwt.RegisteredClaims
}

// IssueToken signs an HS256 token carrying the user's id, username and role.
func IssueToken(secret string, user *model.User, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:   user.ID.String(),
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken verifies signature and expiry and returns the embedded claims.
func ParseToken(secret, raw string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
