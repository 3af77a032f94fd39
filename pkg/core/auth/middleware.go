package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"finboard/pkg/core/store"
)

// userKey is the gin context key the middleware stores the resolved user under.
const userKey = "auth.user"

// UserLoader resolves a username to a stored user. *store.UserRepo satisfies it.
type UserLoader interface {
	GetByUsername(ctx context.Context, username string) (*store.User, error)
}

// Middleware authenticates requests with a Bearer token. Requests without a
// valid token for an active user are rejected with 401 before the handler runs.
func Middleware(svc *Service, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		const prefix = "Bearer "
		if !strings.HasPrefix(header, prefix) {
			unauthorized(c, "missing bearer token")
			return
		}

		username, err := svc.ParseToken(strings.TrimPrefix(header, prefix))
		if err != nil {
			unauthorized(c, "invalid or expired token")
			return
		}

		user, err := users.GetByUsername(c.Request.Context(), username)
		if err != nil || !user.IsActive {
			unauthorized(c, "unknown or inactive user")
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

// CurrentUser returns the authenticated user set by Middleware.
func CurrentUser(c *gin.Context) *store.User {
	if v, ok := c.Get(userKey); ok {
		if u, ok := v.(*store.User); ok {
			return u
		}
	}
	return nil
}

func unauthorized(c *gin.Context, detail string) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": detail})
}
