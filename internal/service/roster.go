package service

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"basegraph.app/tenancy/internal/model"
)

const defaultRosterConcurrency = 8

// AdminRoster lists the distinct admin users of an organization.
type AdminRoster interface {
	AdminsOf(ctx context.Context, orgID int64) ([]model.User, error)
}

type adminRoster struct {
	stores      StoreProvider
	concurrency int
	timeout     time.Duration
}

func NewAdminRoster(stores StoreProvider, concurrency int, timeout time.Duration) AdminRoster {
	if concurrency <= 0 {
		concurrency = defaultRosterConcurrency
	}
	return &adminRoster{stores: stores, concurrency: concurrency, timeout: timeout}
}

// AdminsOf resolves every admin user before returning. Users appear once, in
// the order their first admin membership was created. Any failed lookup fails
// the whole call.
func (r *adminRoster) AdminsOf(ctx context.Context, orgID int64) ([]model.User, error) {
	if err := r.organizationExists(ctx, orgID); err != nil {
		return nil, err
	}

	lctx, cancel := bounded(ctx, r.timeout)
	memberships, err := r.stores.Memberships().ListAdminsByOrganization(lctx, orgID)
	cancel()
	if err != nil {
		return nil, lookupErr(err, EntityOrganization, orgID)
	}

	userIDs := make([]int64, 0, len(memberships))
	seen := make(map[int64]struct{}, len(memberships))
	for _, m := range memberships {
		if _, dup := seen[m.UserID]; dup {
			continue
		}
		seen[m.UserID] = struct{}{}
		userIDs = append(userIDs, m.UserID)
	}

	admins := make([]model.User, len(userIDs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i, userID := range userIDs {
		g.Go(func() error {
			uctx, cancel := bounded(gctx, r.timeout)
			defer cancel()
			user, err := r.stores.Users().GetByID(uctx, userID)
			if err != nil {
				return lookupErr(err, EntityUser, userID)
			}
			admins[i] = *user
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return admins, nil
}

func (r *adminRoster) organizationExists(ctx context.Context, orgID int64) error {
	ctx, cancel := bounded(ctx, r.timeout)
	defer cancel()
	if _, err := r.stores.Organizations().GetByID(ctx, orgID); err != nil {
		return lookupErr(err, EntityOrganization, orgID)
	}
	return nil
}
