package store

import (
	"context"

	"basegraph.app/tenancy/core/db/sqlc"
	"basegraph.app/tenancy/internal/model"
)

type organizationStore struct {
	queries *sqlc.Queries
}

func newOrganizationStore(queries *sqlc.Queries) OrganizationStore {
	return &organizationStore{queries: queries}
}

func (s *organizationStore) GetByID(ctx context.Context, id int64) (*model.Organization, error) {
	row, err := s.queries.GetOrganization(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return toOrganizationModel(row), nil
}

func (s *organizationStore) List(ctx context.Context) ([]model.Organization, error) {
	rows, err := s.queries.ListOrganizations(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return toOrganizationModels(rows), nil
}

func (s *organizationStore) ListByCreator(ctx context.Context, creatorID int64) ([]model.Organization, error) {
	rows, err := s.queries.ListOrganizationsByCreator(ctx, creatorID)
	if err != nil {
		return nil, mapError(err)
	}
	return toOrganizationModels(rows), nil
}

func (s *organizationStore) Create(ctx context.Context, org *model.Organization) error {
	row, err := s.queries.CreateOrganization(ctx, sqlc.CreateOrganizationParams{
		ID:        org.ID,
		Name:      org.Name,
		Tiers:     org.Tiers,
		CreatorID: org.CreatorID,
	})
	if err != nil {
		return mapError(err)
	}
	*org = *toOrganizationModel(row)
	return nil
}

func (s *organizationStore) Update(ctx context.Context, org *model.Organization) error {
	row, err := s.queries.UpdateOrganization(ctx, sqlc.UpdateOrganizationParams{
		ID:    org.ID,
		Name:  org.Name,
		Tiers: org.Tiers,
	})
	if err != nil {
		return mapError(err)
	}
	*org = *toOrganizationModel(row)
	return nil
}

func (s *organizationStore) Delete(ctx context.Context, id int64) error {
	return affected(s.queries.DeleteOrganization(ctx, id))
}

func toOrganizationModel(row sqlc.Organization) *model.Organization {
	return &model.Organization{
		ID:        row.ID,
		Name:      row.Name,
		Tiers:     row.Tiers,
		CreatorID: row.CreatorID,
		CreatedAt: row.CreatedAt.Time,
		UpdatedAt: row.UpdatedAt.Time,
	}
}

func toOrganizationModels(rows []sqlc.Organization) []model.Organization {
	orgs := make([]model.Organization, len(rows))
	for i, row := range rows {
		orgs[i] = *toOrganizationModel(row)
	}
	return orgs
}
