package dto

import (
	"time"

	"basegraph.app/tenancy/internal/service"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email,max=255" jsonschema:"format=email"`
	Password string `json:"password" binding:"required,max=72" jsonschema:"minLength=1,maxLength=72"`
}

type LoginResponse struct {
	UserID        int64  `json:"user_id,string"`
	Token         string `json:"token"`
	ExpirySeconds int64  `json:"expiry_seconds"`
}

func ToLoginResponse(r *service.LoginResult, now time.Time) *LoginResponse {
	return &LoginResponse{
		UserID:        r.UserID,
		Token:         r.Token,
		ExpirySeconds: int64(r.ExpiresIn(now) / time.Second),
	}
}
