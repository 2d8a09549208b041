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
)

type OrganizationService interface {
	Create(ctx context.Context, actor auth.Identity, name string, tiers []string) (*model.Organization, error)
	Update(ctx context.Context, actor auth.Identity, orgID int64, input UpdateOrganizationInput) (*model.Organization, error)
	Delete(ctx context.Context, actor auth.Identity, orgID int64) (*model.Organization, error)
	Get(ctx context.Context, orgID int64) (*model.Organization, error)
	List(ctx context.Context) ([]model.Organization, error)
	Admins(ctx context.Context, orgID int64) ([]model.User, error)
}

// UpdateOrganizationInput carries the fields to change. Nil means unchanged.
type UpdateOrganizationInput struct {
	Name  *string
	Tiers []string
}

type organizationService struct {
	mutator
	stores  StoreProvider
	cascade *ConsistencyCoordinator
	roster  AdminRoster
	timeout time.Duration
}

func NewOrganizationService(stores StoreProvider, txRunner TxRunner, locker lock.Locker, publisher events.Publisher, opts Options) OrganizationService {
	return &organizationService{
		mutator: mutator{txRunner: txRunner, locker: locker, publisher: publisher},
		stores:  stores,
		cascade: NewConsistencyCoordinator(opts.StoreTimeout),
		roster:  NewAdminRoster(stores, opts.RosterConcurrency, opts.StoreTimeout),
		timeout: opts.StoreTimeout,
	}
}

func (s *organizationService) Create(ctx context.Context, actor auth.Identity, name string, tiers []string) (*model.Organization, error) {
	if actor.IsZero() {
		return nil, ErrUnauthenticated
	}
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		ActorID:   logger.Ptr(actor.UserID),
		Operation: logger.Ptr("create_organization"),
	})

	name, err := validateName("name", name)
	if err != nil {
		return nil, err
	}
	tiers, err = validateTiers(tiers)
	if err != nil {
		return nil, err
	}

	org := &model.Organization{
		ID:        id.New(),
		Name:      name,
		Tiers:     tiers,
		CreatorID: actor.UserID,
	}

	err = s.inTx(ctx, []string{lock.UserKey(actor.UserID)}, func(stores StoreProvider) error {
		cctx, cancel := bounded(ctx, s.timeout)
		defer cancel()

		if _, err := stores.Users().GetByID(cctx, actor.UserID); err != nil {
			return lookupErr(err, EntityUser, actor.UserID)
		}
		if err := stores.Organizations().Create(cctx, org); err != nil {
			return fmt.Errorf("creating organization: %w", err)
		}
		if err := stores.Users().AddCreatedOrganization(cctx, actor.UserID, org.ID); err != nil {
			return fmt.Errorf("recording created organization: %w", err)
		}
		return nil
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to create organization", "error", err)
		return nil, err
	}

	slog.InfoContext(ctx, "organization created", "organization_id", org.ID)
	s.publish(ctx, events.Event{Type: events.TypeOrganizationCreated, OrganizationID: org.ID, ActorID: actor.UserID})
	return org, nil
}

func (s *organizationService) Update(ctx context.Context, actor auth.Identity, orgID int64, input UpdateOrganizationInput) (*model.Organization, error) {
	if actor.IsZero() {
		return nil, ErrUnauthenticated
	}
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		ActorID:        logger.Ptr(actor.UserID),
		OrganizationID: logger.Ptr(orgID),
		Operation:      logger.Ptr("update_organization"),
	})

	if input.Name == nil && input.Tiers == nil {
		return nil, &ValidationError{Field: "body", Reason: "name or tiers is required"}
	}
	var (
		name  string
		tiers []string
		err   error
	)
	if input.Name != nil {
		if name, err = validateName("name", *input.Name); err != nil {
			return nil, err
		}
	}
	if input.Tiers != nil {
		if tiers, err = validateTiers(input.Tiers); err != nil {
			return nil, err
		}
	}

	var updated *model.Organization
	err = s.inTx(ctx, []string{lock.OrgKey(orgID)}, func(stores StoreProvider) error {
		cctx, cancel := bounded(ctx, s.timeout)
		defer cancel()

		org, err := stores.Organizations().GetByID(cctx, orgID)
		if err != nil {
			return lookupErr(err, EntityOrganization, orgID)
		}
		if err := NewAuthorizationGuard(stores.Memberships()).Authorize(cctx, actor, org); err != nil {
			return err
		}

		if input.Name != nil {
			org.Name = name
		}
		if input.Tiers != nil {
			if err := s.checkTierShrink(cctx, stores, orgID, len(tiers)); err != nil {
				return err
			}
			org.Tiers = tiers
		}

		if err := stores.Organizations().Update(cctx, org); err != nil {
			return fmt.Errorf("updating organization: %w", err)
		}
		updated = org
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrPermissionDenied) && !errors.Is(err, ErrNotFound) && !errors.Is(err, ErrValidation) {
			slog.ErrorContext(ctx, "failed to update organization", "error", err)
		}
		return nil, err
	}

	slog.InfoContext(ctx, "organization updated")
	s.publish(ctx, events.Event{Type: events.TypeOrganizationUpdated, OrganizationID: orgID, ActorID: actor.UserID})
	return updated, nil
}

// checkTierShrink refuses a tier list that would strand existing memberships.
func (s *organizationService) checkTierShrink(ctx context.Context, stores StoreProvider, orgID int64, tierCount int) error {
	memberships, err := stores.Memberships().ListByOrganization(ctx, orgID)
	if err != nil {
		return fmt.Errorf("listing memberships: %w", err)
	}
	for _, m := range memberships {
		if m.TierIndex >= tierCount {
			return &ValidationError{
				Field:  "tiers",
				Reason: fmt.Sprintf("membership %d uses tier index %d", m.ID, m.TierIndex),
			}
		}
	}
	return nil
}

func (s *organizationService) Delete(ctx context.Context, actor auth.Identity, orgID int64) (*model.Organization, error) {
	if actor.IsZero() {
		return nil, ErrUnauthenticated
	}
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		ActorID:        logger.Ptr(actor.UserID),
		OrganizationID: logger.Ptr(orgID),
		Operation:      logger.Ptr("delete_organization"),
	})

	// The creator never changes, so its lock key can be read before locking.
	current, err := s.Get(ctx, orgID)
	if err != nil {
		return nil, err
	}

	var snapshot *model.Organization
	keys := []string{lock.OrgKey(orgID), lock.UserKey(current.CreatorID)}
	err = s.inTx(ctx, keys, func(stores StoreProvider) error {
		cctx, cancel := bounded(ctx, s.timeout)
		org, err := stores.Organizations().GetByID(cctx, orgID)
		if err == nil {
			err = NewAuthorizationGuard(stores.Memberships()).Authorize(cctx, actor, org)
		} else {
			err = lookupErr(err, EntityOrganization, orgID)
		}
		cancel()
		if err != nil {
			return err
		}

		if err := s.cascade.DeleteOrganization(ctx, stores, org); err != nil {
			return err
		}
		snapshot = org
		return nil
	})
	if err != nil {
		var cascadeErr *CascadeError
		if errors.As(err, &cascadeErr) {
			slog.ErrorContext(ctx, "organization delete rolled back", "error", err, "step", cascadeErr.Step)
		}
		return nil, err
	}

	slog.InfoContext(ctx, "organization deleted", "creator_id", snapshot.CreatorID)
	s.publish(ctx, events.Event{Type: events.TypeOrganizationDeleted, OrganizationID: orgID, ActorID: actor.UserID})
	return snapshot, nil
}

func (s *organizationService) Get(ctx context.Context, orgID int64) (*model.Organization, error) {
	ctx, cancel := bounded(ctx, s.timeout)
	defer cancel()

	org, err := s.stores.Organizations().GetByID(ctx, orgID)
	if err != nil {
		return nil, lookupErr(err, EntityOrganization, orgID)
	}
	return org, nil
}

func (s *organizationService) List(ctx context.Context) ([]model.Organization, error) {
	ctx, cancel := bounded(ctx, s.timeout)
	defer cancel()

	orgs, err := s.stores.Organizations().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing organizations: %w", err)
	}
	return orgs, nil
}

func (s *organizationService) Admins(ctx context.Context, orgID int64) ([]model.User, error) {
	return s.roster.AdminsOf(ctx, orgID)
}
