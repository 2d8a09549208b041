package handler

import (
	"net/http"

	"basegraph.app/tenancy/internal/http/dto"
	"basegraph.app/tenancy/internal/http/middleware"
	"basegraph.app/tenancy/internal/service"
	"github.com/gin-gonic/gin"
)

type MembershipHandler struct {
	membershipService service.MembershipService
}

func NewMembershipHandler(membershipService service.MembershipService) *MembershipHandler {
	return &MembershipHandler{membershipService: membershipService}
}

// Add expects the organization id in the path.
func (h *MembershipHandler) Add(c *gin.Context) {
	orgID, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.AddMembershipRequest
	if !bindJSON(c, &req) {
		return
	}

	m, err := h.membershipService.Add(c.Request.Context(), middleware.GetIdentity(c), orgID, service.AddMembershipInput{
		UserID:    req.UserID,
		TierIndex: req.TierIndex,
		IsAdmin:   req.IsAdmin,
	})
	if err != nil {
		respondError(c, err, "failed to add membership")
		return
	}

	c.JSON(http.StatusCreated, dto.ToMembershipResponse(m))
}

func (h *MembershipHandler) ListByOrganization(c *gin.Context) {
	orgID, ok := pathID(c)
	if !ok {
		return
	}

	ms, err := h.membershipService.List(c.Request.Context(), orgID)
	if err != nil {
		respondError(c, err, "failed to list memberships")
		return
	}

	c.JSON(http.StatusOK, dto.ToMembershipResponses(ms))
}

// Remove answers with the organization the membership belonged to.
func (h *MembershipHandler) Remove(c *gin.Context) {
	membershipID, ok := pathID(c)
	if !ok {
		return
	}

	org, err := h.membershipService.Remove(c.Request.Context(), middleware.GetIdentity(c), membershipID)
	if err != nil {
		respondError(c, err, "failed to remove membership")
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationResponse(org))
}
