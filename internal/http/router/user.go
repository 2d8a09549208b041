package router

import (
	"basegraph.app/tenancy/internal/http/handler"
	"github.com/gin-gonic/gin"
)

func UserRouter(rg *gin.RouterGroup, h *handler.UserHandler, requireAuth gin.HandlerFunc) {
	rg.POST("", h.Create)
	rg.GET("/:id", h.GetByID)
	rg.DELETE("/:id", requireAuth, h.Delete)
}
