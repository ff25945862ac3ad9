package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/andray-nkhatel/meeting-room-frontend/config"
	"github.com/andray-nkhatel/meeting-room-frontend/internal/session"
	"github.com/andray-nkhatel/meeting-room-frontend/internal/storage"
	"github.com/andray-nkhatel/meeting-room-frontend/pkg/jwt"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// SessionCookieName is the cookie holding the gateway's own session token.
	// It carries an opaque session ID only, never the upstream bearer token.
	SessionCookieName = "mr_session"

	// SessionManagerContextKey stores the per-request session manager.
	SessionManagerContextKey = "session_manager"

	// SessionIDContextKey stores the resolved browser session ID.
	SessionIDContextKey = "session_id"
)

var (
	ErrSessionManagerNotFound = errors.New("session manager not found in context")
	ErrInvalidSessionManager  = errors.New("invalid session manager type")
)

// BrowserSessionMiddleware resolves the browser session cookie to a durable
// per-session store and hangs a hydrated session manager on the request.
// A missing or invalid cookie gets a fresh anonymous session. The per-session
// store is also attached to the outgoing request context so the upstream
// transport can read the bearer token from it.
func BrowserSessionMiddleware(tokenManager *jwt.TokenManager, store *storage.FileStore, api session.AuthAPI, cfg config.SessionConfig) gin.HandlerFunc {
	// Cookie lifetime tracks the token lifetime so the browser drops the
	// cookie when the token inside it would no longer validate.
	ttlSeconds := int(tokenManager.GetExpirationTime().Seconds())

	return func(c *gin.Context) {
		var sessionID string

		if cookie, err := c.Cookie(SessionCookieName); err == nil {
			sessionID, err = tokenManager.ValidateToken(cookie)
			if err != nil {
				_ = c.Error(fmt.Errorf("invalid session cookie: %w", err)) //nolint:errcheck
				sessionID = ""
			}
		}

		if sessionID == "" {
			sessionID = uuid.NewString()
			token, err := tokenManager.GenerateToken(sessionID)
			if err != nil {
				_ = c.Error(fmt.Errorf("failed to mint session token: %w", err)) //nolint:errcheck
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
				c.Abort()
				return
			}
			SetSessionCookie(c, token, ttlSeconds, cfg.CookieDomain, cfg.CookieSecure)
		}

		kv, err := store.Namespace(sessionID)
		if err != nil {
			_ = c.Error(fmt.Errorf("failed to open session store: %w", err)) //nolint:errcheck
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			c.Abort()
			return
		}

		sessStore := session.NewStore(kv)
		manager := session.NewManager(sessStore, api)

		c.Set(SessionManagerContextKey, manager)
		c.Set(SessionIDContextKey, sessionID)
		c.Request = c.Request.WithContext(session.NewContext(c.Request.Context(), sessStore))

		c.Next()
	}
}

// GetSessionManager retrieves the session manager placed by
// BrowserSessionMiddleware.
func GetSessionManager(c *gin.Context) (*session.Manager, error) {
	val, exists := c.Get(SessionManagerContextKey)
	if !exists {
		return nil, ErrSessionManagerNotFound
	}

	manager, ok := val.(*session.Manager)
	if !ok {
		return nil, ErrInvalidSessionManager
	}

	return manager, nil
}

func SetSessionCookie(c *gin.Context, token string, ttlSeconds int, domain string, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		SessionCookieName,
		token,
		ttlSeconds,
		"/",
		domain,
		secure,
		true,
	)
}

func ClearSessionCookie(c *gin.Context, domain string, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		SessionCookieName,
		"",
		-1,
		"/",
		domain,
		secure,
		true,
	)
}
