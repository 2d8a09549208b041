package handler

import (
	"net/http"

	"basegraph.app/tenancy/internal/http/dto"
	"basegraph.app/tenancy/internal/http/middleware"
	"basegraph.app/tenancy/internal/service"
	"github.com/gin-gonic/gin"
)

type OrganizationHandler struct {
	orgService service.OrganizationService
}

func NewOrganizationHandler(orgService service.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{orgService: orgService}
}

func (h *OrganizationHandler) Create(c *gin.Context) {
	var req dto.CreateOrganizationRequest
	if !bindJSON(c, &req) {
		return
	}

	org, err := h.orgService.Create(c.Request.Context(), middleware.GetIdentity(c), req.Name, req.Tiers)
	if err != nil {
		respondError(c, err, "failed to create organization")
		return
	}

	c.JSON(http.StatusCreated, dto.ToOrganizationResponse(org))
}

func (h *OrganizationHandler) List(c *gin.Context) {
	orgs, err := h.orgService.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to list organizations")
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationResponses(orgs))
}

func (h *OrganizationHandler) GetByID(c *gin.Context) {
	orgID, ok := pathID(c)
	if !ok {
		return
	}

	org, err := h.orgService.Get(c.Request.Context(), orgID)
	if err != nil {
		respondError(c, err, "failed to get organization")
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationResponse(org))
}

func (h *OrganizationHandler) Update(c *gin.Context) {
	orgID, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdateOrganizationRequest
	if !bindJSON(c, &req) {
		return
	}

	org, err := h.orgService.Update(c.Request.Context(), middleware.GetIdentity(c), orgID, service.UpdateOrganizationInput{
		Name:  req.Name,
		Tiers: req.Tiers,
	})
	if err != nil {
		respondError(c, err, "failed to update organization")
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationResponse(org))
}

// Delete returns the organization as it was right before the cascade.
func (h *OrganizationHandler) Delete(c *gin.Context) {
	orgID, ok := pathID(c)
	if !ok {
		return
	}

	org, err := h.orgService.Delete(c.Request.Context(), middleware.GetIdentity(c), orgID)
	if err != nil {
		respondError(c, err, "failed to delete organization")
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationResponse(org))
}

func (h *OrganizationHandler) Admins(c *gin.Context) {
	orgID, ok := pathID(c)
	if !ok {
		return
	}

	admins, err := h.orgService.Admins(c.Request.Context(), orgID)
	if err != nil {
		respondError(c, err, "failed to list organization admins")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponses(admins))
}
