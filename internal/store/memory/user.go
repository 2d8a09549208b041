package memory

import (
	"context"
	"fmt"
	"slices"
	"time"

	"basegraph.app/tenancy/internal/model"
	"basegraph.app/tenancy/internal/store"
)

type userStore struct {
	a   access
	now func() time.Time
}

func (s *userStore) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var out *model.User
	err := s.a.read(ctx, func(st *state) error {
		u, ok := st.users[id]
		if !ok {
			return store.ErrNotFound
		}
		out = u.Clone()
		return nil
	})
	return out, err
}

func (s *userStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var out *model.User
	err := s.a.read(ctx, func(st *state) error {
		for _, u := range st.users {
			if sameEmail(u.Email, email) {
				out = u.Clone()
				return nil
			}
		}
		return store.ErrNotFound
	})
	return out, err
}

func (s *userStore) Create(ctx context.Context, user *model.User) error {
	return s.a.write(ctx, func(st *state) error {
		if _, ok := st.users[user.ID]; ok {
			return fmt.Errorf("users_pkey: %w", store.ErrConflict)
		}
		for _, u := range st.users {
			if sameEmail(u.Email, user.Email) {
				return fmt.Errorf("users_email_key: %w", store.ErrConflict)
			}
		}
		now := s.now()
		created := user.Clone()
		created.CreatedOrgIDs = []int64{}
		created.CreatedAt = now
		created.UpdatedAt = now
		st.users[created.ID] = created
		*user = *created.Clone()
		return nil
	})
}

func (s *userStore) Delete(ctx context.Context, id int64) error {
	return s.a.write(ctx, func(st *state) error {
		if _, ok := st.users[id]; !ok {
			return store.ErrNotFound
		}
		for _, o := range st.orgs {
			if o.CreatorID == id {
				return fmt.Errorf("organizations_creator_id_fkey: %w", store.ErrReferenced)
			}
		}
		for _, m := range st.memberships {
			if m.UserID == id {
				return fmt.Errorf("memberships_user_id_fkey: %w", store.ErrReferenced)
			}
		}
		delete(st.users, id)
		return nil
	})
}

func (s *userStore) AddCreatedOrganization(ctx context.Context, userID, orgID int64) error {
	return s.a.write(ctx, func(st *state) error {
		u, ok := st.users[userID]
		if !ok {
			return store.ErrNotFound
		}
		u.CreatedOrgIDs = append(u.CreatedOrgIDs, orgID)
		u.UpdatedAt = s.now()
		return nil
	})
}

func (s *userStore) RemoveCreatedOrganization(ctx context.Context, userID, orgID int64) error {
	return s.a.write(ctx, func(st *state) error {
		u, ok := st.users[userID]
		if !ok {
			return store.ErrNotFound
		}
		u.CreatedOrgIDs = slices.DeleteFunc(u.CreatedOrgIDs, func(id int64) bool { return id == orgID })
		u.UpdatedAt = s.now()
		return nil
	})
}
