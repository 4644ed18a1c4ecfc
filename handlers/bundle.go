// Package handlers serves the browser-facing API of the web frontend. Each
// handler proxies to the remote marketplace backend through the session-bound
// API client and returns view models with prices and allowed actions already
// resolved, so the browser never re-derives business rules.
package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"aura/client"
	"aura/lifecycle"
	"aura/session"
)

// Bundle carries the dependencies shared by every handler.
type Bundle struct {
	Log     *zap.Logger
	Machine *lifecycle.Machine

	// NewStore builds the persistence for one browser session.
	NewStore func(sessionID string) session.Store
	// NewAPI builds an API client reading tokens from the given source. A nil
	// source yields an unauthenticated client.
	NewAPI func(ts client.TokenSource) client.API

	CookieName   string
	CookieSecure bool
	SessionTTL   time.Duration
}

// Resolve implements middleware.SessionResolver: it hydrates the session
// stored under sessionID and binds an API client to it.
func (b *Bundle) Resolve(ctx context.Context, sessionID string) (*session.Manager, client.API, error) {
	mgr := session.NewManager(b.NewStore(sessionID), b.Log)
	if err := mgr.Load(ctx); err != nil {
		return nil, nil, err
	}
	return mgr, b.NewAPI(mgr), nil
}

func (b *Bundle) setSessionCookie(c *gin.Context, sessionID string) {
	c.SetCookie(b.CookieName, sessionID, int(b.SessionTTL.Seconds()), "/", "", b.CookieSecure, true)
}

func (b *Bundle) clearSessionCookie(c *gin.Context) {
	c.SetCookie(b.CookieName, "", -1, "/", "", b.CookieSecure, true)
}
