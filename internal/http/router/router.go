package router

import (
	"basegraph.app/tenancy/internal/auth"
	"basegraph.app/tenancy/internal/http/handler"
	"basegraph.app/tenancy/internal/http/middleware"
	"basegraph.app/tenancy/internal/service"
	"github.com/gin-gonic/gin"
)

type RouterConfig struct {
	Resolver *auth.Resolver
}

func SetupRoutes(router *gin.Engine, services *service.Services, cfg RouterConfig) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	requireAuth := middleware.RequireAuth(cfg.Resolver)

	v1 := router.Group("/api/v1")
	{
		SchemaRouter(v1.Group("/schema"), handler.NewSchemaHandler())

		authHandler := handler.NewAuthHandler(services.Auth())
		AuthRouter(v1.Group("/auth"), authHandler)

		userHandler := handler.NewUserHandler(services.Users())
		UserRouter(v1.Group("/users"), userHandler, requireAuth)

		orgHandler := handler.NewOrganizationHandler(services.Organizations())
		membershipHandler := handler.NewMembershipHandler(services.Memberships())
		OrganizationRouter(v1.Group("/organizations"), orgHandler, membershipHandler, requireAuth)
		MembershipRouter(v1.Group("/memberships"), membershipHandler, requireAuth)
	}
}
