package store

import (
	"context"

	"basegraph.app/tenancy/core/db/sqlc"
	"basegraph.app/tenancy/internal/model"
)

type userStore struct {
	queries *sqlc.Queries
}

func newUserStore(queries *sqlc.Queries) UserStore {
	return &userStore{queries: queries}
}

func (s *userStore) GetByID(ctx context.Context, id int64) (*model.User, error) {
	row, err := s.queries.GetUser(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return toUserModel(row), nil
}

func (s *userStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	row, err := s.queries.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, mapError(err)
	}
	return toUserModel(row), nil
}

func (s *userStore) Create(ctx context.Context, user *model.User) error {
	row, err := s.queries.CreateUser(ctx, sqlc.CreateUserParams{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
	})
	if err != nil {
		return mapError(err)
	}
	*user = *toUserModel(row)
	return nil
}

func (s *userStore) Delete(ctx context.Context, id int64) error {
	return affected(s.queries.DeleteUser(ctx, id))
}

func (s *userStore) AddCreatedOrganization(ctx context.Context, userID, orgID int64) error {
	_, err := s.queries.AddUserCreatedOrg(ctx, sqlc.AddUserCreatedOrgParams{ID: userID, OrgID: orgID})
	return mapError(err)
}

func (s *userStore) RemoveCreatedOrganization(ctx context.Context, userID, orgID int64) error {
	_, err := s.queries.RemoveUserCreatedOrg(ctx, sqlc.RemoveUserCreatedOrgParams{ID: userID, OrgID: orgID})
	return mapError(err)
}

func toUserModel(row sqlc.User) *model.User {
	created := row.CreatedOrgIds
	if created == nil {
		created = []int64{}
	}
	return &model.User{
		ID:            row.ID,
		Name:          row.Name,
		Email:         row.Email,
		PasswordHash:  row.PasswordHash,
		CreatedOrgIDs: created,
		CreatedAt:     row.CreatedAt.Time,
		UpdatedAt:     row.UpdatedAt.Time,
	}
}
