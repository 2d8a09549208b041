package dto

import (
	"time"

	"basegraph.app/tenancy/internal/model"
)

// AddMembershipRequest adds UserID, or the caller when it is omitted.
type AddMembershipRequest struct {
	UserID    int64 `json:"user_id,string,omitempty"`
	TierIndex int   `json:"tier_index" binding:"min=0" jsonschema:"minimum=0"`
	IsAdmin   bool  `json:"is_admin,omitempty"`
}

type MembershipResponse struct {
	ID             int64     `json:"id,string"`
	OrganizationID int64     `json:"organization_id,string"`
	UserID         int64     `json:"user_id,string"`
	IsAdmin        bool      `json:"is_admin"`
	TierIndex      int       `json:"tier_index"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func ToMembershipResponse(m *model.Membership) *MembershipResponse {
	return &MembershipResponse{
		ID:             m.ID,
		OrganizationID: m.OrganizationID,
		UserID:         m.UserID,
		IsAdmin:        m.IsAdmin,
		TierIndex:      m.TierIndex,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func ToMembershipResponses(ms []model.Membership) []*MembershipResponse {
	out := make([]*MembershipResponse, len(ms))
	for i := range ms {
		out[i] = ToMembershipResponse(&ms[i])
	}
	return out
}
