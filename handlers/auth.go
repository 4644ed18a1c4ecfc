package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"aura/client"
	"aura/middleware"
	"aura/models"
	"aura/session"
	"aura/utils"
)

// LoginHandler handles POST /api/auth/login. On success it creates a fresh
// server-side session and hands the browser its cookie.
func (b *Bundle) LoginHandler(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	b.establishSession(c, func(api client.API) (*models.LoginResponse, error) {
		return api.Login(c.Request.Context(), req)
	})
}

// RegisterHandler handles POST /api/auth/register and logs the new account in
// immediately, like login.
func (b *Bundle) RegisterHandler(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	b.establishSession(c, func(api client.API) (*models.LoginResponse, error) {
		return api.Register(c.Request.Context(), req)
	})
}

func (b *Bundle) establishSession(c *gin.Context, authenticate func(client.API) (*models.LoginResponse, error)) {
	sessionID := uuid.New().String()
	mgr := session.NewManager(b.NewStore(sessionID), b.Log)
	api := b.NewAPI(mgr)

	res, err := authenticate(api)
	if err != nil {
		writeAPIError(c, b.Log, err)
		return
	}
	if err := mgr.Establish(c.Request.Context(), res); err != nil {
		b.Log.Error("failed to establish session", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to establish session", err.Error())
		return
	}

	account, _ := mgr.Current()
	b.setSessionCookie(c, sessionID)
	c.JSON(http.StatusOK, gin.H{"account": account})
}

// LogoutHandler handles POST /api/auth/logout. The backend logout is best
// effort; the local session is cleared regardless.
func (b *Bundle) LogoutHandler(c *gin.Context) {
	api := middleware.APIFrom(c)
	mgr := middleware.ManagerFrom(c)

	if err := api.Logout(c.Request.Context()); err != nil {
		b.Log.Debug("backend logout failed", zap.Error(err))
	}
	mgr.Clear()
	b.clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// MeHandler handles GET /api/auth/me.
func (b *Bundle) MeHandler(c *gin.Context) {
	account, ok := middleware.ManagerFrom(c).Current()
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Authentication required", "no account in session")
		return
	}
	c.JSON(http.StatusOK, gin.H{"account": account})
}
