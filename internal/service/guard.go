package service

import (
	"context"
	"errors"
	"fmt"

	"basegraph.app/tenancy/internal/auth"
	"basegraph.app/tenancy/internal/model"
	"basegraph.app/tenancy/internal/store"
)

// AuthorizationGuard decides whether a caller may administer an organization.
// The organization must already be loaded; a missing one is the caller's NotFound.
type AuthorizationGuard interface {
	Authorize(ctx context.Context, identity auth.Identity, org *model.Organization) error
}

type authorizationGuard struct {
	memberships store.MembershipStore
}

func NewAuthorizationGuard(memberships store.MembershipStore) AuthorizationGuard {
	return &authorizationGuard{memberships: memberships}
}

// Authorize allows the creator and any admin member. Nothing is cached between calls.
func (g *authorizationGuard) Authorize(ctx context.Context, identity auth.Identity, org *model.Organization) error {
	if identity.IsZero() {
		return ErrUnauthenticated
	}
	if org.IsCreator(identity.UserID) {
		return nil
	}

	m, err := g.memberships.GetByOrgAndUser(ctx, org.ID, identity.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return denied(identity, org)
		}
		return fmt.Errorf("checking admin membership: %w", err)
	}
	if !m.IsAdmin {
		return denied(identity, org)
	}
	return nil
}

func denied(identity auth.Identity, org *model.Organization) error {
	return fmt.Errorf("user %d on organization %d: %w", identity.UserID, org.ID, ErrPermissionDenied)
}
