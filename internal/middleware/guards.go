package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SessionState is the slice of the session manager the guards need.
type SessionState interface {
	Loading() bool
	IsLoggedIn() bool
	IsAdmin() bool
}

// getSessionState allows guard tests to stub the manager.
func getSessionState(c *gin.Context) (SessionState, error) {
	val, exists := c.Get(SessionManagerContextKey)
	if !exists {
		return nil, ErrSessionManagerNotFound
	}

	state, ok := val.(SessionState)
	if !ok {
		return nil, ErrInvalidSessionManager
	}

	return state, nil
}

// RequireAuthenticated redirects anonymous visitors to the login page.
// While the session is still hydrating it renders a pending response and
// never redirects, so a slow restore cannot bounce a valid session to login.
func RequireAuthenticated(loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		state, err := getSessionState(c)
		if err != nil {
			_ = c.Error(err) //nolint:errcheck
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			c.Abort()
			return
		}

		if state.Loading() {
			c.Header("Retry-After", "1")
			c.JSON(http.StatusOK, gin.H{"status": "pending"})
			c.Abort()
			return
		}

		if !state.IsLoggedIn() {
			c.Redirect(http.StatusSeeOther, loginPath)
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireAdmin sends authenticated non-admins back to the home page.
// Runs after RequireAuthenticated in the chain.
func RequireAdmin(homePath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		state, err := getSessionState(c)
		if err != nil {
			_ = c.Error(err) //nolint:errcheck
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			c.Abort()
			return
		}

		if state.Loading() {
			c.Header("Retry-After", "1")
			c.JSON(http.StatusOK, gin.H{"status": "pending"})
			c.Abort()
			return
		}

		if !state.IsAdmin() {
			c.Redirect(http.StatusSeeOther, homePath)
			c.Abort()
			return
		}

		c.Next()
	}
}
