package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"basegraph.app/tenancy/internal/http/dto"
	"basegraph.app/tenancy/internal/service"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService service.AuthService
	now         func() time.Time
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService, now: time.Now}
}

// Login answers every credential failure the same way so callers cannot
// tell which emails are registered.
func (h *AuthHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.authService.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			slog.InfoContext(ctx, "login rejected", "reason", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		respondError(c, err, "failed to log in")
		return
	}

	c.JSON(http.StatusOK, dto.ToLoginResponse(result, h.now()))
}
