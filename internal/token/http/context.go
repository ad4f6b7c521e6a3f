// Package http provides HTTP handlers and guard middleware for token operations.
package http

import (
	"context"

	tokenDomain "github.com/syter/media/internal/token/domain"
)

// Bearer is the resolved caller identity: the raw token string from the
// Authorization header together with its stored attributes.
type Bearer struct {
	Token string
	Info  *tokenDomain.TokenInfo
}

// bearerKey is a context key type for storing the resolved bearer.
type bearerKey struct{}

// WithBearer stores the resolved bearer in the context. Called by the guard
// middleware after a successful token lookup.
func WithBearer(ctx context.Context, bearer *Bearer) context.Context {
	return context.WithValue(ctx, bearerKey{}, bearer)
}

// GetBearer retrieves the resolved bearer from the context.
// Returns (nil, false) when no guard ran on the request.
func GetBearer(ctx context.Context) (*Bearer, bool) {
	bearer, ok := ctx.Value(bearerKey{}).(*Bearer)
	return bearer, ok
}
