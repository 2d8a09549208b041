package dto

import (
	"strconv"
	"time"

	"basegraph.app/tenancy/internal/model"
)

type CreateUserRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=255" jsonschema:"minLength=1,maxLength=255"`
	Email    string `json:"email" binding:"required,email,max=255" jsonschema:"format=email,maxLength=255"`
	Password string `json:"password" binding:"required,min=8,max=72" jsonschema:"minLength=8,maxLength=72"`
}

// UserResponse never carries the password hash.
type UserResponse struct {
	ID            int64     `json:"id,string"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	CreatedOrgIDs []string  `json:"created_org_ids"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func ToUserResponse(u *model.User) *UserResponse {
	return &UserResponse{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		CreatedOrgIDs: formatIDs(u.CreatedOrgIDs),
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

func ToUserResponses(users []model.User) []*UserResponse {
	out := make([]*UserResponse, len(users))
	for i := range users {
		out[i] = ToUserResponse(&users[i])
	}
	return out
}

func formatIDs(ids []int64) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = strconv.FormatInt(id, 10)
	}
	return out
}
