package auth

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrInvalidToken    = errors.New("invalid token")
	ErrExpiredToken    = errors.New("token expired")
)

const bearerScheme = "Bearer"

// Identity is the caller principal carried by a verified token.
type Identity struct {
	UserID int64
	Email  string
}

func (i Identity) IsZero() bool {
	return i.UserID == 0
}

// Verifier checks a raw token and returns the identity it carries.
type Verifier interface {
	Verify(token string) (Identity, error)
}

// Resolver turns an Authorization header value into an Identity.
type Resolver struct {
	verifier Verifier
}

func NewResolver(verifier Verifier) *Resolver {
	return &Resolver{verifier: verifier}
}

// Resolve expects "Bearer <token>". An empty header yields ErrUnauthenticated,
// anything else that cannot be verified yields ErrInvalidToken or ErrExpiredToken.
func (r *Resolver) Resolve(header string) (Identity, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return Identity{}, ErrUnauthenticated
	}

	scheme, token, ok := strings.Cut(header, " ")
	token = strings.TrimSpace(token)
	if !ok || !strings.EqualFold(scheme, bearerScheme) || token == "" {
		return Identity{}, ErrInvalidToken
	}

	return r.verifier.Verify(token)
}

type identityKey struct{}

func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// IdentityFrom returns the identity stored by WithIdentity, if any.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(Identity)
	if !ok || identity.IsZero() {
		return Identity{}, false
	}
	return identity, true
}
