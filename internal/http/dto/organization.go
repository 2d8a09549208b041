package dto

import (
	"time"

	"basegraph.app/tenancy/internal/model"
)

type CreateOrganizationRequest struct {
	Name  string   `json:"name" binding:"required,min=1,max=255" jsonschema:"minLength=1,maxLength=255"`
	Tiers []string `json:"tiers" binding:"required,min=1,dive,min=1,max=255" jsonschema:"minItems=1"`
}

// UpdateOrganizationRequest is a partial update; omitted fields stay as they are.
type UpdateOrganizationRequest struct {
	Name  *string  `json:"name,omitempty" binding:"omitempty,min=1,max=255" jsonschema:"minLength=1,maxLength=255"`
	Tiers []string `json:"tiers,omitempty" binding:"omitempty,min=1,dive,min=1,max=255" jsonschema:"minItems=1"`
}

type OrganizationResponse struct {
	ID        int64     `json:"id,string"`
	Name      string    `json:"name"`
	Tiers     []string  `json:"tiers"`
	CreatorID int64     `json:"creator_id,string"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToOrganizationResponse(org *model.Organization) *OrganizationResponse {
	return &OrganizationResponse{
		ID:        org.ID,
		Name:      org.Name,
		Tiers:     org.Tiers,
		CreatorID: org.CreatorID,
		CreatedAt: org.CreatedAt,
		UpdatedAt: org.UpdatedAt,
	}
}

func ToOrganizationResponses(orgs []model.Organization) []*OrganizationResponse {
	out := make([]*OrganizationResponse, len(orgs))
	for i := range orgs {
		out[i] = ToOrganizationResponse(&orgs[i])
	}
	return out
}
