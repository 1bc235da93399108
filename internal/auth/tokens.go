package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is what an issued token asserts.
type Identity struct {
	Subject string
	Email   string
	Role    string
}

// IssueToken signs an HS256 token that HMACVerifier accepts. It backs
// `sitectl token` for local development.
func IssueToken(secret string, id Identity, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("jwt secret is empty")
	}
	if id.Subject == "" {
		id.Subject = id.Email
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   id.Subject,
		"email": id.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	}
	if id.Role != "" {
		claims["role"] = id.Role
		claims["app_metadata"] = map[string]interface{}{"role": id.Role}
	}
	jt := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return jt.SignedString([]byte(secret))
}
