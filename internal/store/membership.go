package store

import (
	"context"

	"basegraph.app/tenancy/core/db/sqlc"
	"basegraph.app/tenancy/internal/model"
)

type membershipStore struct {
	queries *sqlc.Queries
}

func newMembershipStore(queries *sqlc.Queries) MembershipStore {
	return &membershipStore{queries: queries}
}

func (s *membershipStore) GetByID(ctx context.Context, id int64) (*model.Membership, error) {
	row, err := s.queries.GetMembership(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return toMembershipModel(row), nil
}

func (s *membershipStore) GetByOrgAndUser(ctx context.Context, orgID, userID int64) (*model.Membership, error) {
	row, err := s.queries.GetMembershipByOrgAndUser(ctx, sqlc.GetMembershipByOrgAndUserParams{
		OrganizationID: orgID,
		UserID:         userID,
	})
	if err != nil {
		return nil, mapError(err)
	}
	return toMembershipModel(row), nil
}

func (s *membershipStore) ListByOrganization(ctx context.Context, orgID int64) ([]model.Membership, error) {
	rows, err := s.queries.ListMembershipsByOrganization(ctx, orgID)
	if err != nil {
		return nil, mapError(err)
	}
	return toMembershipModels(rows), nil
}

func (s *membershipStore) ListAdminsByOrganization(ctx context.Context, orgID int64) ([]model.Membership, error) {
	rows, err := s.queries.ListAdminMembershipsByOrganization(ctx, orgID)
	if err != nil {
		return nil, mapError(err)
	}
	return toMembershipModels(rows), nil
}

func (s *membershipStore) Create(ctx context.Context, m *model.Membership) error {
	row, err := s.queries.CreateMembership(ctx, sqlc.CreateMembershipParams{
		ID:             m.ID,
		OrganizationID: m.OrganizationID,
		UserID:         m.UserID,
		IsAdmin:        m.IsAdmin,
		TierIndex:      int32(m.TierIndex),
	})
	if err != nil {
		return mapError(err)
	}
	*m = *toMembershipModel(row)
	return nil
}

func (s *membershipStore) Delete(ctx context.Context, id int64) error {
	return affected(s.queries.DeleteMembership(ctx, id))
}

func (s *membershipStore) DeleteByOrganization(ctx context.Context, orgID int64) (int64, error) {
	n, err := s.queries.DeleteMembershipsByOrganization(ctx, orgID)
	return n, mapError(err)
}

func (s *membershipStore) DeleteByUser(ctx context.Context, userID int64) (int64, error) {
	n, err := s.queries.DeleteMembershipsByUser(ctx, userID)
	return n, mapError(err)
}

func toMembershipModel(row sqlc.Membership) *model.Membership {
	return &model.Membership{
		ID:             row.ID,
		OrganizationID: row.OrganizationID,
		UserID:         row.UserID,
		IsAdmin:        row.IsAdmin,
		TierIndex:      int(row.TierIndex),
		CreatedAt:      row.CreatedAt.Time,
		UpdatedAt:      row.UpdatedAt.Time,
	}
}

func toMembershipModels(rows []sqlc.Membership) []model.Membership {
	out := make([]model.Membership, len(rows))
	for i, row := range rows {
		out[i] = *toMembershipModel(row)
	}
	return out
}
