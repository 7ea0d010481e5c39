// Package auth verifies bearer tokens issued by the configured OIDC
// provider. Keys come from the provider's JWKS endpoint and are cached and
// refreshed in the background.
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Claims are the token claims the service cares about.
type Claims struct {
	Subject string
	Email   string
	Issuer  string
}

// Verifier validates JWTs against a JWKS key set.
type Verifier struct {
	issuer  string
	jwksURL string
	cache   *jwk.Cache
}

// NewVerifier registers the JWKS URL with a background-refreshing cache. The
// context bounds the lifetime of the refresh loop.
func NewVerifier(ctx context.Context, issuer, jwksURL string) (*Verifier, error) {
	cache := jwk.NewCache(ctx)
	if err := cache.Register(jwksURL, jwk.WithMinRefreshInterval(15*time.Minute)); err != nil {
		return nil, fmt.Errorf("failed to register JWKS URL: %w", err)
	}
	return &Verifier{issuer: issuer, jwksURL: jwksURL, cache: cache}, nil
}

// Verify parses and validates a raw token, returning its claims.
func (v *Verifier) Verify(ctx context.Context, raw string) (*Claims, error) {
	keys, err := v.cache.Get(ctx, v.jwksURL)
	if err != nil {
		return nil, fmt.Errorf("failed to get JWKS: %w", err)
	}

	token, err := jwt.Parse([]byte(raw),
		jwt.WithKeySet(keys),
		jwt.WithValidate(true),
		jwt.WithIssuer(v.issuer),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse/verify token: %w", err)
	}

	claims := &Claims{
		Subject: token.Subject(),
		Issuer:  token.Issuer(),
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("token missing subject claim")
	}
	if email, ok := token.Get("email"); ok {
		if s, ok := email.(string); ok {
			claims.Email = s
		}
	}
	return claims, nil
}
