package router

import (
	"basegraph.app/tenancy/internal/http/handler"
	"github.com/gin-gonic/gin"
)

func OrganizationRouter(rg *gin.RouterGroup, h *handler.OrganizationHandler, mh *handler.MembershipHandler, requireAuth gin.HandlerFunc) {
	rg.GET("", h.List)
	rg.POST("", requireAuth, h.Create)
	rg.GET("/:id", h.GetByID)
	rg.PATCH("/:id", requireAuth, h.Update)
	rg.DELETE("/:id", requireAuth, h.Delete)
	rg.GET("/:id/admins", h.Admins)
	rg.GET("/:id/memberships", mh.ListByOrganization)
	rg.POST("/:id/memberships", requireAuth, mh.Add)
}

func MembershipRouter(rg *gin.RouterGroup, h *handler.MembershipHandler, requireAuth gin.HandlerFunc) {
	rg.DELETE("/:id", requireAuth, h.Remove)
}
