package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"basegraph.app/tenancy/common/logger"
	"basegraph.app/tenancy/internal/auth"
	"github.com/gin-gonic/gin"
)

const identityGinKey = "identity"

// RequireAuth rejects requests without a valid bearer token and stores the
// caller identity on both the gin and the request context.
func RequireAuth(resolver *auth.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		identity, err := resolver.Resolve(c.GetHeader("Authorization"))
		if err != nil {
			slog.DebugContext(ctx, "bearer rejected", "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": unauthorizedMessage(err)})
			return
		}

		ctx = auth.WithIdentity(ctx, identity)
		ctx = logger.WithLogFields(ctx, logger.LogFields{ActorID: logger.Ptr(identity.UserID)})
		c.Request = c.Request.WithContext(ctx)
		c.Set(identityGinKey, identity)

		c.Next()
	}
}

// GetIdentity returns the caller set by RequireAuth. The zero Identity means
// the route is unauthenticated.
func GetIdentity(c *gin.Context) auth.Identity {
	identity, _ := identityFromGin(c)
	return identity
}

func identityFromGin(c *gin.Context) (auth.Identity, bool) {
	v, ok := c.Get(identityGinKey)
	if !ok {
		return auth.IdentityFrom(c.Request.Context())
	}
	identity, ok := v.(auth.Identity)
	return identity, ok && !identity.IsZero()
}

func unauthorizedMessage(err error) string {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "token expired"
	case errors.Is(err, auth.ErrInvalidToken):
		return "invalid token"
	default:
		return "not authenticated"
	}
}
