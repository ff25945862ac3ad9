package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/andray-nkhatel/meeting-room-frontend/internal/middleware"
	"github.com/andray-nkhatel/meeting-room-frontend/internal/models"
	"github.com/andray-nkhatel/meeting-room-frontend/pkg/apperrors"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func authRouter(api *MockAuthAPI) *gin.Engine {
	handler := NewAuthHandler(testSessionConfig())
	sessionMiddleware, _ := withSessionManager(api)

	router := gin.New()
	router.Use(sessionMiddleware)
	router.POST("/auth/login", handler.Login)
	router.POST("/auth/register", handler.Register)
	router.POST("/auth/logout", handler.Logout)
	router.GET("/auth/me", handler.Me)
	return router
}

func TestLogin_Success(t *testing.T) {
	api := new(MockAuthAPI)
	api.On("Login", mock.Anything, models.Credentials{Username: "bob", Password: "pw"}).
		Return(&models.LoginResponse{Token: "t1", UserID: 5, Username: "bob", FullName: "Bob B", IsAdmin: false}, nil)

	router := authRouter(api)
	w := postJSON(router, "/auth/login", gin.H{"username": "bob", "password": "pw"})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		User models.UserProfile `json:"user"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "bob", resp.User.Username)
	assert.Equal(t, 5, resp.User.UserID)
	api.AssertExpectations(t)
}

func TestLogin_BadCredentialsIs401NotRedirect(t *testing.T) {
	api := new(MockAuthAPI)
	api.On("Login", mock.Anything, mock.Anything).
		Return(nil, apperrors.NewUpstreamError(401, ""))

	router := authRouter(api)
	w := postJSON(router, "/auth/login", gin.H{"username": "bob", "password": "wrong"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, w.Header().Get("Location"))
	assert.Contains(t, w.Body.String(), "Invalid username or password")
}

func TestLogin_MissingFieldsIs400(t *testing.T) {
	api := new(MockAuthAPI)
	router := authRouter(api)

	w := postJSON(router, "/auth/login", gin.H{"username": "bob"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	api.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
}

func TestRegister_Success(t *testing.T) {
	api := new(MockAuthAPI)
	api.On("Register", mock.Anything, mock.Anything).
		Return(&models.RegisterResponse{
			Token: "t2",
			User:  &models.UserProfile{UserID: 9, Username: "carol", FullName: "Carol C"},
		}, nil)

	router := authRouter(api)
	w := postJSON(router, "/auth/register", gin.H{
		"username": "carol",
		"email":    "carol@example.com",
		"password": "longenough",
		"fullName": "Carol C",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "carol")
}

func TestLogout_ClearsCookieAndRedirects(t *testing.T) {
	api := new(MockAuthAPI)
	handler := NewAuthHandler(testSessionConfig())
	sessionMiddleware, store := withSessionManager(api)

	router := gin.New()
	router.Use(sessionMiddleware)
	router.POST("/auth/logout", handler.Logout)

	// Logout works without a prior login and leaves the store empty.
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("POST", "/auth/logout", nil))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.False(t, store.HasToken())

	cookies := w.Result().Cookies()
	if assert.Len(t, cookies, 1) {
		assert.Equal(t, middleware.SessionCookieName, cookies[0].Name)
		assert.Empty(t, cookies[0].Value)
		assert.Negative(t, cookies[0].MaxAge)
	}
}

func TestMe_AnonymousIs401(t *testing.T) {
	router := authRouter(new(MockAuthAPI))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/auth/me", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMe_LoggedInReturnsProfile(t *testing.T) {
	api := new(MockAuthAPI)
	api.On("Login", mock.Anything, mock.Anything).
		Return(&models.LoginResponse{Token: "t1", UserID: 5, Username: "bob", FullName: "Bob B", IsAdmin: true}, nil)

	router := authRouter(api)
	postJSON(router, "/auth/login", gin.H{"username": "bob", "password": "pw"})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/auth/me", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"isAdmin":true`)
}
