package handler

import (
	"net/http"

	"basegraph.app/tenancy/internal/http/dto"
	"basegraph.app/tenancy/internal/http/middleware"
	"basegraph.app/tenancy/internal/service"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.Create(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		respondError(c, err, "failed to create user")
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

func (h *UserHandler) GetByID(c *gin.Context) {
	userID, ok := pathID(c)
	if !ok {
		return
	}

	user, err := h.userService.Get(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "failed to get user")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// Delete removes the caller's own account along with every organization it created.
func (h *UserHandler) Delete(c *gin.Context) {
	userID, ok := pathID(c)
	if !ok {
		return
	}

	user, err := h.userService.Delete(c.Request.Context(), middleware.GetIdentity(c), userID)
	if err != nil {
		respondError(c, err, "failed to delete user")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}
