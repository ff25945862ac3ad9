package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/andray-nkhatel/meeting-room-frontend/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)

	_ = logger.Initialize(logger.Config{
		Level:       "error",
		Environment: "test",
		ServiceName: "meeting-room-frontend-test",
	})
}

// stubSessionState fakes the session manager for guard tests.
type stubSessionState struct {
	loading  bool
	loggedIn bool
	admin    bool
}

func (s stubSessionState) Loading() bool    { return s.loading }
func (s stubSessionState) IsLoggedIn() bool { return s.loggedIn }
func (s stubSessionState) IsAdmin() bool    { return s.admin }

func guardedRouter(state *stubSessionState, guard gin.HandlerFunc, handlerCalled *bool) *gin.Engine {
	router := gin.New()
	if state != nil {
		router.Use(func(c *gin.Context) {
			c.Set(SessionManagerContextKey, *state)
			c.Next()
		})
	}
	router.Use(guard)
	router.GET("/test", func(c *gin.Context) {
		*handlerCalled = true
		c.Status(http.StatusOK)
	})
	return router
}

func TestRequireAuthenticated_AllowsLoggedInUser(t *testing.T) {
	handlerCalled := false
	router := guardedRouter(&stubSessionState{loggedIn: true}, RequireAuthenticated("/login"), &handlerCalled)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/test", nil))

	assert.True(t, handlerCalled)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAuthenticated_RedirectsAnonymous(t *testing.T) {
	handlerCalled := false
	router := guardedRouter(&stubSessionState{}, RequireAuthenticated("/login"), &handlerCalled)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/test", nil))

	assert.False(t, handlerCalled)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestRequireAuthenticated_NeverRedirectsWhileHydrating(t *testing.T) {
	handlerCalled := false
	router := guardedRouter(&stubSessionState{loading: true}, RequireAuthenticated("/login"), &handlerCalled)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/test", nil))

	assert.False(t, handlerCalled)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Location"))
	assert.Contains(t, w.Body.String(), "pending")
}

func TestRequireAuthenticated_MissingManagerIs500(t *testing.T) {
	handlerCalled := false
	router := guardedRouter(nil, RequireAuthenticated("/login"), &handlerCalled)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/test", nil))

	assert.False(t, handlerCalled)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRequireAdmin_AllowsAdmin(t *testing.T) {
	handlerCalled := false
	router := guardedRouter(&stubSessionState{loggedIn: true, admin: true}, RequireAdmin("/"), &handlerCalled)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/test", nil))

	assert.True(t, handlerCalled)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAdmin_RedirectsNonAdminHome(t *testing.T) {
	handlerCalled := false
	router := guardedRouter(&stubSessionState{loggedIn: true}, RequireAdmin("/"), &handlerCalled)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/test", nil))

	assert.False(t, handlerCalled)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestRequireAdmin_PendingWhileHydrating(t *testing.T) {
	handlerCalled := false
	router := guardedRouter(&stubSessionState{loading: true}, RequireAdmin("/"), &handlerCalled)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/test", nil))

	assert.False(t, handlerCalled)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Location"))
}
