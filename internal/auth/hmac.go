package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/globalsolutions/website/backend/pkg/middleware"
	"github.com/golang-jwt/jwt/v5"
)

// HMACVerifier accepts HS256 tokens signed with a shared secret, the
// format Supabase issues to signed-in users.
type HMACVerifier struct {
	secret []byte
}

func NewHMACVerifier(secret string) (*HMACVerifier, error) {
	if len(secret) < 16 {
		return nil, errors.New("jwt secret must be at least 16 bytes")
	}
	return &HMACVerifier{secret: []byte(secret)}, nil
}

func (v *HMACVerifier) Verify(_ context.Context, raw string) (middleware.Token, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("verify token: %w", err)
	}
	return mapToken(claims), nil
}

// mapToken exposes verified claims through the middleware.Token interface.
type mapToken map[string]interface{}

func (m mapToken) Claims(v interface{}) error {
	b, err := json.Marshal(map[string]interface{}(m))
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}
