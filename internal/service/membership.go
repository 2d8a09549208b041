package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"basegraph.app/tenancy/common/id"
	"basegraph.app/tenancy/common/logger"
	"basegraph.app/tenancy/internal/auth"
	"basegraph.app/tenancy/internal/events"
	"basegraph.app/tenancy/internal/lock"
	"basegraph.app/tenancy/internal/model"
	"basegraph.app/tenancy/internal/store"
)

type MembershipService interface {
	Add(ctx context.Context, actor auth.Identity, orgID int64, input AddMembershipInput) (*model.Membership, error)
	Remove(ctx context.Context, actor auth.Identity, membershipID int64) (*model.Organization, error)
	List(ctx context.Context, orgID int64) ([]model.Membership, error)
}

// AddMembershipInput describes a new membership. A zero UserID means the caller.
type AddMembershipInput struct {
	UserID    int64
	TierIndex int
	IsAdmin   bool
}

type membershipService struct {
	mutator
	stores  StoreProvider
	timeout time.Duration
}

func NewMembershipService(stores StoreProvider, txRunner TxRunner, locker lock.Locker, publisher events.Publisher, opts Options) MembershipService {
	return &membershipService{
		mutator: mutator{txRunner: txRunner, locker: locker, publisher: publisher},
		stores:  stores,
		timeout: opts.StoreTimeout,
	}
}

// Add lets any signed-in user join an organization as a regular member.
// Adding someone else, or granting admin, takes the creator or an admin.
func (s *membershipService) Add(ctx context.Context, actor auth.Identity, orgID int64, input AddMembershipInput) (*model.Membership, error) {
	if actor.IsZero() {
		return nil, ErrUnauthenticated
	}
	memberID := input.UserID
	if memberID == 0 {
		memberID = actor.UserID
	}
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		ActorID:        logger.Ptr(actor.UserID),
		OrganizationID: logger.Ptr(orgID),
		UserID:         logger.Ptr(memberID),
		Operation:      logger.Ptr("add_membership"),
	})

	m := &model.Membership{
		ID:             id.New(),
		OrganizationID: orgID,
		UserID:         memberID,
		IsAdmin:        input.IsAdmin,
		TierIndex:      input.TierIndex,
	}

	keys := []string{lock.OrgKey(orgID), lock.UserKey(memberID)}
	err := s.inTx(ctx, keys, func(stores StoreProvider) error {
		cctx, cancel := bounded(ctx, s.timeout)
		defer cancel()

		org, err := stores.Organizations().GetByID(cctx, orgID)
		if err != nil {
			return lookupErr(err, EntityOrganization, orgID)
		}
		if _, err := stores.Users().GetByID(cctx, memberID); err != nil {
			return lookupErr(err, EntityUser, memberID)
		}

		selfJoin := memberID == actor.UserID && !input.IsAdmin
		if !selfJoin {
			if err := NewAuthorizationGuard(stores.Memberships()).Authorize(cctx, actor, org); err != nil {
				return err
			}
		}
		if err := validateTierIndex(org, input.TierIndex); err != nil {
			return err
		}

		if err := stores.Memberships().Create(cctx, m); err != nil {
			if errors.Is(err, store.ErrConflict) {
				return fmt.Errorf("user %d in organization %d: %w", memberID, orgID, ErrAlreadyExists)
			}
			return fmt.Errorf("creating membership: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "membership added", "membership_id", m.ID, "is_admin", m.IsAdmin)
	s.publish(ctx, events.Event{
		Type:           events.TypeMembershipAdded,
		OrganizationID: orgID,
		UserID:         memberID,
		MembershipID:   m.ID,
		ActorID:        actor.UserID,
	})
	return m, nil
}

// Remove deletes a membership and returns its organization. The member may
// always leave; anyone else needs creator or admin rights.
func (s *membershipService) Remove(ctx context.Context, actor auth.Identity, membershipID int64) (*model.Organization, error) {
	if actor.IsZero() {
		return nil, ErrUnauthenticated
	}
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		ActorID:      logger.Ptr(actor.UserID),
		MembershipID: logger.Ptr(membershipID),
		Operation:    logger.Ptr("remove_membership"),
	})

	// Memberships are never moved between organizations or users, so the keys are stable.
	lctx, cancel := bounded(ctx, s.timeout)
	current, err := s.stores.Memberships().GetByID(lctx, membershipID)
	cancel()
	if err != nil {
		return nil, lookupErr(err, EntityMembership, membershipID)
	}

	var org *model.Organization
	keys := []string{lock.OrgKey(current.OrganizationID), lock.UserKey(current.UserID)}
	err = s.inTx(ctx, keys, func(stores StoreProvider) error {
		cctx, cancel := bounded(ctx, s.timeout)
		defer cancel()

		m, err := stores.Memberships().GetByID(cctx, membershipID)
		if err != nil {
			return lookupErr(err, EntityMembership, membershipID)
		}
		org, err = stores.Organizations().GetByID(cctx, m.OrganizationID)
		if err != nil {
			return lookupErr(err, EntityOrganization, m.OrganizationID)
		}
		if m.UserID != actor.UserID {
			if err := NewAuthorizationGuard(stores.Memberships()).Authorize(cctx, actor, org); err != nil {
				return err
			}
		}
		if err := stores.Memberships().Delete(cctx, membershipID); err != nil {
			return lookupErr(err, EntityMembership, membershipID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "membership removed", "organization_id", current.OrganizationID, "user_id", current.UserID)
	s.publish(ctx, events.Event{
		Type:           events.TypeMembershipRemoved,
		OrganizationID: current.OrganizationID,
		UserID:         current.UserID,
		MembershipID:   membershipID,
		ActorID:        actor.UserID,
	})
	return org, nil
}

func (s *membershipService) List(ctx context.Context, orgID int64) ([]model.Membership, error) {
	ctx, cancel := bounded(ctx, s.timeout)
	defer cancel()

	if _, err := s.stores.Organizations().GetByID(ctx, orgID); err != nil {
		return nil, lookupErr(err, EntityOrganization, orgID)
	}
	memberships, err := s.stores.Memberships().ListByOrganization(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("listing memberships: %w", err)
	}
	return memberships, nil
}
