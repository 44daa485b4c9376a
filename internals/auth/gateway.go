// Package auth is the access gateway: it hashes credentials, issues bearer
// tokens and validates them against the token store.
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"librarium/apperr"
	"librarium/config"
)

type Gateway struct {
	secret []byte
	ttl    time.Duration
	store  TokenStore
}

func NewGateway(cfg *config.Config, store TokenStore) *Gateway {
	return &Gateway{
		secret: []byte(cfg.JWTSecret),
		ttl:    cfg.TokenTTL,
		store:  store,
	}
}

// Issue signs a bearer token for the user and records its id in the token
// store with the same TTL.
func (g *Gateway) Issue(ctx context.Context, login string, isAdmin bool) (string, error) {
	tokenID := uuid.New().String()
	claims := jwt.MapClaims{
		"sub":        login,
		"token_uuid": tokenID,
		"is_admin":   isAdmin,
		"exp":        time.Now().Add(g.ttl).Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	if err := g.store.Save(ctx, tokenID, login, g.ttl); err != nil {
		return "", fmt.Errorf("save token metadata: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a bearer token and returns the login it was
// issued for. Any defect (bad signature, expiry, unknown token id) comes
// back as an Unauthorized error.
func (g *Gateway) Verify(ctx context.Context, tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return g.secret, nil
	})
	if err != nil || !token.Valid {
		return "", apperr.Wrap(apperr.Unauthorized, "invalid token", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", apperr.New(apperr.Unauthorized, "invalid token")
	}
	tokenID, ok := claims["token_uuid"].(string)
	if !ok {
		return "", apperr.New(apperr.Unauthorized, "token_uuid not found in token")
	}
	login, ok := claims["sub"].(string)
	if !ok {
		return "", apperr.New(apperr.Unauthorized, "subject not found in token")
	}

	stored, err := g.store.Fetch(ctx, tokenID)
	if err != nil || stored != login {
		return "", apperr.Wrap(apperr.Unauthorized, "token expired or invalid", err)
	}
	return login, nil
}
