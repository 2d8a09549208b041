package service

import (
	"context"
	"log/slog"
	"time"

	"basegraph.app/tenancy/common/logger"
	"basegraph.app/tenancy/internal/model"
)

// ConsistencyCoordinator performs the ordered deletions that keep users,
// organizations and memberships referentially consistent. Every method runs
// against the stores of a transaction owned by the caller, so a failing step
// rolls back the steps before it.
type ConsistencyCoordinator struct {
	timeout time.Duration
}

func NewConsistencyCoordinator(storeTimeout time.Duration) *ConsistencyCoordinator {
	return &ConsistencyCoordinator{timeout: storeTimeout}
}

// DeleteOrganization removes org from its creator's created set, then its
// memberships, then org itself.
func (c *ConsistencyCoordinator) DeleteOrganization(ctx context.Context, stores StoreProvider, org *model.Organization) (err error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		OrganizationID: logger.Ptr(org.ID),
		Component:      "tenancy.service.cascade",
	})
	sc := logger.StartSpan(ctx, "cascade.delete_organization")
	defer func() {
		sc.RecordError(err)
		sc.End()
	}()
	ctx = sc.Context()

	if err := c.step(ctx, StepRemoveFromCreator, EntityOrganization, org.ID, func(ctx context.Context) error {
		return stores.Users().RemoveCreatedOrganization(ctx, org.CreatorID, org.ID)
	}); err != nil {
		return err
	}

	var removed int64
	if err := c.step(ctx, StepDeleteOrgMemberships, EntityOrganization, org.ID, func(ctx context.Context) error {
		n, err := stores.Memberships().DeleteByOrganization(ctx, org.ID)
		removed = n
		return err
	}); err != nil {
		return err
	}

	if err := c.step(ctx, StepDeleteOrganization, EntityOrganization, org.ID, func(ctx context.Context) error {
		return stores.Organizations().Delete(ctx, org.ID)
	}); err != nil {
		return err
	}

	slog.DebugContext(ctx, "organization cascade done", "creator_id", org.CreatorID, "memberships_removed", removed)
	return nil
}

// DeleteUser runs the organization cascade for every organization the user
// created, then removes the user's remaining memberships and the user.
// It returns the organizations it deleted.
func (c *ConsistencyCoordinator) DeleteUser(ctx context.Context, stores StoreProvider, user *model.User) (deleted []model.Organization, err error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		UserID:    logger.Ptr(user.ID),
		Component: "tenancy.service.cascade",
	})
	sc := logger.StartSpan(ctx, "cascade.delete_user")
	defer func() {
		sc.RecordError(err)
		sc.End()
	}()
	ctx = sc.Context()

	var created []model.Organization
	if err := c.step(ctx, StepDeleteCreatedOrgs, EntityUser, user.ID, func(ctx context.Context) error {
		orgs, err := stores.Organizations().ListByCreator(ctx, user.ID)
		created = orgs
		return err
	}); err != nil {
		return nil, err
	}

	for i := range created {
		if err := c.DeleteOrganization(ctx, stores, &created[i]); err != nil {
			return nil, err
		}
	}

	if err := c.step(ctx, StepDeleteUserMemberships, EntityUser, user.ID, func(ctx context.Context) error {
		_, err := stores.Memberships().DeleteByUser(ctx, user.ID)
		return err
	}); err != nil {
		return nil, err
	}

	if err := c.step(ctx, StepDeleteUser, EntityUser, user.ID, func(ctx context.Context) error {
		return stores.Users().Delete(ctx, user.ID)
	}); err != nil {
		return nil, err
	}

	slog.DebugContext(ctx, "user cascade done", "organizations_removed", len(created))
	return created, nil
}

// step runs one bounded store call and tags a failure with the stage it happened in.
func (c *ConsistencyCoordinator) step(ctx context.Context, step Step, entity Entity, id int64, fn func(context.Context) error) error {
	sctx, cancel := bounded(ctx, c.timeout)
	defer cancel()

	if err := fn(sctx); err != nil {
		slog.ErrorContext(ctx, "cascade step failed",
			"step", step,
			"entity", entity,
			"entity_id", id,
			"error", err,
		)
		return &CascadeError{Step: step, Entity: entity, ID: id, Err: err}
	}
	return nil
}
