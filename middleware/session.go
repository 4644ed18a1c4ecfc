package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"aura/client"
	"aura/session"
	"aura/utils"
)

const (
	ctxSessionKey = "aura.session"
	ctxAPIKey     = "aura.api"
)

// SessionResolver turns a session cookie value into a hydrated session
// manager plus an API client bound to that session's tokens. The handler
// bundle implements it.
type SessionResolver interface {
	Resolve(ctx context.Context, sessionID string) (*session.Manager, client.API, error)
}

// RequireAuth guards a route group: it loads the session named by the cookie
// and rejects anonymous or missing sessions with a 401.
func RequireAuth(resolver SessionResolver, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(cookieName)
		if err != nil || sid == "" {
			utils.JSONError(c, http.StatusUnauthorized, "Authentication required", "missing session cookie")
			c.Abort()
			return
		}

		mgr, api, err := resolver.Resolve(c.Request.Context(), sid)
		if err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "Session lookup failed", err.Error())
			c.Abort()
			return
		}
		if mgr.State() != session.StateAuthenticated {
			utils.JSONError(c, http.StatusUnauthorized, "Authentication required", "session expired or logged out")
			c.Abort()
			return
		}

		c.Set(ctxSessionKey, mgr)
		c.Set(ctxAPIKey, api)
		c.Next()
	}
}

// ManagerFrom returns the session manager stored by RequireAuth.
func ManagerFrom(c *gin.Context) *session.Manager {
	return c.MustGet(ctxSessionKey).(*session.Manager)
}

// APIFrom returns the session-bound API client stored by RequireAuth.
func APIFrom(c *gin.Context) client.API {
	return c.MustGet(ctxAPIKey).(client.API)
}
