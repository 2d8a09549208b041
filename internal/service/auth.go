package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"basegraph.app/tenancy/common"
	"basegraph.app/tenancy/common/logger"
	"basegraph.app/tenancy/internal/auth"
	"basegraph.app/tenancy/internal/store"
)

// TokenIssuer signs identities into bearer tokens.
type TokenIssuer interface {
	Sign(identity auth.Identity) (auth.Token, error)
}

type LoginResult struct {
	UserID    int64
	Token     string
	ExpiresAt time.Time
}

// ExpiresIn is the token lifetime left at the given instant.
func (r *LoginResult) ExpiresIn(now time.Time) time.Duration {
	return max(r.ExpiresAt.Sub(now), 0)
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}

type authService struct {
	users   store.UserStore
	hasher  PasswordHasher
	tokens  TokenIssuer
	timeout time.Duration
}

func NewAuthService(users store.UserStore, hasher PasswordHasher, tokens TokenIssuer, opts Options) AuthService {
	return &authService{
		users:   users,
		hasher:  hasher,
		tokens:  tokens,
		timeout: opts.StoreTimeout,
	}
}

// Login returns ErrUserNotFound or ErrPasswordMismatch on bad credentials.
// Both match ErrInvalidCredentials.
func (s *authService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{Operation: logger.Ptr("authenticate")})

	lctx, cancel := bounded(ctx, s.timeout)
	user, err := s.users.GetByEmail(lctx, common.NormalizeEmail(email))
	cancel()
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			slog.InfoContext(ctx, "login rejected", "reason", "unknown_email")
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("loading user by email: %w", err)
	}

	ok, err := s.hasher.Compare(user.PasswordHash, password)
	if err != nil {
		return nil, err
	}
	if !ok {
		slog.InfoContext(ctx, "login rejected", "reason", "password_mismatch", "user_id", user.ID)
		return nil, ErrPasswordMismatch
	}

	token, err := s.tokens.Sign(auth.Identity{UserID: user.ID, Email: user.Email})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "user logged in", "user_id", user.ID)
	return &LoginResult{UserID: user.ID, Token: token.Value, ExpiresAt: token.ExpiresAt}, nil
}
