package model

import (
	"slices"
	"time"
)

type Organization struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Tiers     []string  `json:"tiers"`
	CreatorID int64     `json:"creator_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (o *Organization) IsCreator(userID int64) bool {
	return o.CreatorID == userID
}

func (o *Organization) HasTier(index int) bool {
	return index >= 0 && index < len(o.Tiers)
}

func (o *Organization) Clone() *Organization {
	c := *o
	c.Tiers = slices.Clone(o.Tiers)
	return &c
}
