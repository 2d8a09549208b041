package memory

import (
	"context"
	"fmt"
	"slices"
	"time"

	"basegraph.app/tenancy/internal/model"
	"basegraph.app/tenancy/internal/store"
)

type organizationStore struct {
	a   access
	now func() time.Time
}

func (s *organizationStore) GetByID(ctx context.Context, id int64) (*model.Organization, error) {
	var out *model.Organization
	err := s.a.read(ctx, func(st *state) error {
		o, ok := st.orgs[id]
		if !ok {
			return store.ErrNotFound
		}
		out = o.Clone()
		return nil
	})
	return out, err
}

func (s *organizationStore) List(ctx context.Context) ([]model.Organization, error) {
	return s.list(ctx, func(*model.Organization) bool { return true })
}

func (s *organizationStore) ListByCreator(ctx context.Context, creatorID int64) ([]model.Organization, error) {
	return s.list(ctx, func(o *model.Organization) bool { return o.CreatorID == creatorID })
}

func (s *organizationStore) list(ctx context.Context, keep func(*model.Organization) bool) ([]model.Organization, error) {
	var out []model.Organization
	err := s.a.read(ctx, func(st *state) error {
		out = sortedByID(st.orgs, keep, func(o *model.Organization) model.Organization { return *o.Clone() })
		return nil
	})
	return out, err
}

func (s *organizationStore) Create(ctx context.Context, org *model.Organization) error {
	return s.a.write(ctx, func(st *state) error {
		if _, ok := st.orgs[org.ID]; ok {
			return fmt.Errorf("organizations_pkey: %w", store.ErrConflict)
		}
		if _, ok := st.users[org.CreatorID]; !ok {
			return fmt.Errorf("organizations_creator_id_fkey: %w", store.ErrReferenced)
		}
		now := s.now()
		created := org.Clone()
		created.CreatedAt = now
		created.UpdatedAt = now
		st.orgs[created.ID] = created
		*org = *created.Clone()
		return nil
	})
}

// Update replaces name and tiers. The creator is immutable and ignored.
func (s *organizationStore) Update(ctx context.Context, org *model.Organization) error {
	return s.a.write(ctx, func(st *state) error {
		existing, ok := st.orgs[org.ID]
		if !ok {
			return store.ErrNotFound
		}
		existing.Name = org.Name
		existing.Tiers = slices.Clone(org.Tiers)
		existing.UpdatedAt = s.now()
		*org = *existing.Clone()
		return nil
	})
}

func (s *organizationStore) Delete(ctx context.Context, id int64) error {
	return s.a.write(ctx, func(st *state) error {
		if _, ok := st.orgs[id]; !ok {
			return store.ErrNotFound
		}
		for _, m := range st.memberships {
			if m.OrganizationID == id {
				return fmt.Errorf("memberships_organization_id_fkey: %w", store.ErrReferenced)
			}
		}
		delete(st.orgs, id)
		return nil
	})
}
