package model

import "time"

// Membership is the standing of one user inside one organization.
// There is at most one per (OrganizationID, UserID) pair.
type Membership struct {
	ID             int64     `json:"id"`
	OrganizationID int64     `json:"organization_id"`
	UserID         int64     `json:"user_id"`
	IsAdmin        bool      `json:"is_admin"`
	TierIndex      int       `json:"tier_index"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
