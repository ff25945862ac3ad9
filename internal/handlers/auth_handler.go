package handlers

import (
	"net/http"

	"github.com/andray-nkhatel/meeting-room-frontend/config"
	"github.com/andray-nkhatel/meeting-room-frontend/internal/middleware"
	"github.com/andray-nkhatel/meeting-room-frontend/internal/models"
	"github.com/andray-nkhatel/meeting-room-frontend/pkg/apperrors"
	"github.com/andray-nkhatel/meeting-room-frontend/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler serves login, registration, logout and the session probe.
type AuthHandler struct {
	sessionCfg config.SessionConfig
}

func NewAuthHandler(sessionCfg config.SessionConfig) *AuthHandler {
	return &AuthHandler{sessionCfg: sessionCfg}
}

// Login authenticates against the upstream API and persists the bearer token
// and profile into the browser's session store.
func (h *AuthHandler) Login(c *gin.Context) {
	manager, err := middleware.GetSessionManager(c)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	var creds models.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Invalid request", ParseValidationErrors(err), err)
		return
	}

	resp, err := manager.Login(c.Request.Context(), creds)
	if err != nil {
		// A 401 from the login endpoint means bad credentials, not an
		// expired session, so it must not trigger the redirect path.
		if apperrors.Is(err, apperrors.ErrSessionExpired) {
			respondError(c, http.StatusUnauthorized, "Invalid username or password", err)
			return
		}
		respondUpstreamError(c, err, h.sessionCfg)
		return
	}

	logger.Info("User logged in",
		zap.String("username", resp.User.Username),
		zap.Bool("is_admin", resp.User.IsAdmin))

	c.JSON(http.StatusOK, gin.H{"user": resp.User})
}

// Register creates an account upstream. When the upstream response carries a
// token the new user is logged in immediately.
func (h *AuthHandler) Register(c *gin.Context) {
	manager, err := middleware.GetSessionManager(c)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Invalid request", ParseValidationErrors(err), err)
		return
	}

	resp, err := manager.Register(c.Request.Context(), req)
	if err != nil {
		respondUpstreamError(c, err, h.sessionCfg)
		return
	}

	logger.Info("User registered", zap.String("username", req.Username))

	c.JSON(http.StatusCreated, gin.H{"user": resp.User})
}

// Logout erases the stored session and clears the session cookie. It makes
// no upstream call and succeeds whether or not anyone was logged in.
func (h *AuthHandler) Logout(c *gin.Context) {
	manager, err := middleware.GetSessionManager(c)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	manager.Logout()
	middleware.ClearSessionCookie(c, h.sessionCfg.CookieDomain, h.sessionCfg.CookieSecure)

	c.Redirect(http.StatusSeeOther, h.sessionCfg.LoginPath)
}

// Me reports the current session state so pages can render the right chrome.
func (h *AuthHandler) Me(c *gin.Context) {
	manager, err := middleware.GetSessionManager(c)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	if manager.Loading() {
		c.JSON(http.StatusOK, gin.H{"status": "pending"})
		return
	}

	user := manager.CurrentUser()
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not logged in"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
