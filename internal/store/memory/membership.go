package memory

import (
	"context"
	"fmt"
	"time"

	"basegraph.app/tenancy/internal/model"
	"basegraph.app/tenancy/internal/store"
)

type membershipStore struct {
	a   access
	now func() time.Time
}

func copyMembership(m *model.Membership) model.Membership { return *m }

func (s *membershipStore) GetByID(ctx context.Context, id int64) (*model.Membership, error) {
	var out *model.Membership
	err := s.a.read(ctx, func(st *state) error {
		m, ok := st.memberships[id]
		if !ok {
			return store.ErrNotFound
		}
		c := *m
		out = &c
		return nil
	})
	return out, err
}

func (s *membershipStore) GetByOrgAndUser(ctx context.Context, orgID, userID int64) (*model.Membership, error) {
	var out *model.Membership
	err := s.a.read(ctx, func(st *state) error {
		for _, m := range st.memberships {
			if m.OrganizationID == orgID && m.UserID == userID {
				c := *m
				out = &c
				return nil
			}
		}
		return store.ErrNotFound
	})
	return out, err
}

func (s *membershipStore) ListByOrganization(ctx context.Context, orgID int64) ([]model.Membership, error) {
	return s.list(ctx, func(m *model.Membership) bool { return m.OrganizationID == orgID })
}

func (s *membershipStore) ListAdminsByOrganization(ctx context.Context, orgID int64) ([]model.Membership, error) {
	return s.list(ctx, func(m *model.Membership) bool { return m.OrganizationID == orgID && m.IsAdmin })
}

func (s *membershipStore) list(ctx context.Context, keep func(*model.Membership) bool) ([]model.Membership, error) {
	var out []model.Membership
	err := s.a.read(ctx, func(st *state) error {
		out = sortedByID(st.memberships, keep, copyMembership)
		return nil
	})
	return out, err
}

func (s *membershipStore) Create(ctx context.Context, m *model.Membership) error {
	return s.a.write(ctx, func(st *state) error {
		if _, ok := st.memberships[m.ID]; ok {
			return fmt.Errorf("memberships_pkey: %w", store.ErrConflict)
		}
		if _, ok := st.orgs[m.OrganizationID]; !ok {
			return fmt.Errorf("memberships_organization_id_fkey: %w", store.ErrReferenced)
		}
		if _, ok := st.users[m.UserID]; !ok {
			return fmt.Errorf("memberships_user_id_fkey: %w", store.ErrReferenced)
		}
		if m.TierIndex < 0 {
			return fmt.Errorf("memberships_tier_index_check: tier index %d is negative", m.TierIndex)
		}
		for _, existing := range st.memberships {
			if existing.OrganizationID == m.OrganizationID && existing.UserID == m.UserID {
				return fmt.Errorf("memberships_org_user_key: %w", store.ErrConflict)
			}
		}
		now := s.now()
		created := *m
		created.CreatedAt = now
		created.UpdatedAt = now
		st.memberships[created.ID] = &created
		*m = created
		return nil
	})
}

func (s *membershipStore) Delete(ctx context.Context, id int64) error {
	return s.a.write(ctx, func(st *state) error {
		if _, ok := st.memberships[id]; !ok {
			return store.ErrNotFound
		}
		delete(st.memberships, id)
		return nil
	})
}

func (s *membershipStore) DeleteByOrganization(ctx context.Context, orgID int64) (int64, error) {
	return s.deleteWhere(ctx, func(m *model.Membership) bool { return m.OrganizationID == orgID })
}

func (s *membershipStore) DeleteByUser(ctx context.Context, userID int64) (int64, error) {
	return s.deleteWhere(ctx, func(m *model.Membership) bool { return m.UserID == userID })
}

func (s *membershipStore) deleteWhere(ctx context.Context, match func(*model.Membership) bool) (int64, error) {
	var n int64
	err := s.a.write(ctx, func(st *state) error {
		for id, m := range st.memberships {
			if match(m) {
				delete(st.memberships, id)
				n++
			}
		}
		return nil
	})
	return n, err
}
