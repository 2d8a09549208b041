package model

import (
	"slices"
	"time"
)

// User is an account. CreatedOrgIDs holds the organizations this user
// created that still exist.
type User struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	CreatedOrgIDs []int64   `json:"created_org_ids"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Clone returns a deep copy so callers can hand out users without sharing the created set.
func (u *User) Clone() *User {
	c := *u
	c.CreatedOrgIDs = slices.Clone(u.CreatedOrgIDs)
	return &c
}
