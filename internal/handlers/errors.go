package handlers

import (
	"net/http"

	"github.com/andray-nkhatel/meeting-room-frontend/config"
	"github.com/andray-nkhatel/meeting-room-frontend/internal/middleware"
	"github.com/andray-nkhatel/meeting-room-frontend/pkg/apperrors"
	"github.com/gin-gonic/gin"
)

// attachError attaches err to the gin context so the observability middleware
// can include the reason in the request log. c.Error() returns *gin.Error (not
// the error interface), so we suppress errcheck here intentionally.
func attachError(c *gin.Context, err error) {
	if err != nil {
		_ = c.Error(err) //nolint:errcheck
	}
}

// respondError sends an error JSON response and attaches the error to the gin context
// so the observability middleware can include the reason in the request log.
func respondError(c *gin.Context, status int, message string, err error) {
	attachError(c, err)
	c.JSON(status, gin.H{"error": message})
}

// respondErrorWithDetails sends an error response with an additional details field.
func respondErrorWithDetails(c *gin.Context, status int, message string, details any, err error) { //nolint:unparam
	attachError(c, err)
	c.JSON(status, gin.H{"error": message, "details": details})
}

// respondUpstreamError translates upstream API failures into gateway
// responses. All handlers funnel upstream errors through here so the
// expired-session path behaves identically everywhere: clear the session
// cookie and bounce the browser to the login page. The transport has
// already erased the stored token by the time this runs.
func respondUpstreamError(c *gin.Context, err error, sessionCfg config.SessionConfig) {
	attachError(c, err)

	switch {
	case apperrors.Is(err, apperrors.ErrSessionExpired):
		middleware.ClearSessionCookie(c, sessionCfg.CookieDomain, sessionCfg.CookieSecure)
		c.Redirect(http.StatusSeeOther, sessionCfg.LoginPath)
		c.Abort()
	case apperrors.Is(err, apperrors.ErrRoomUnavailable):
		c.JSON(http.StatusConflict, gin.H{"error": apperrors.RoomUnavailableMessage})
	case apperrors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case apperrors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	case apperrors.Is(err, apperrors.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": "Upstream service error"})
	}
}
