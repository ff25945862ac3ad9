package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"

	"github.com/andray-nkhatel/meeting-room-frontend/config"
	"github.com/andray-nkhatel/meeting-room-frontend/internal/middleware"
	"github.com/andray-nkhatel/meeting-room-frontend/internal/models"
	"github.com/andray-nkhatel/meeting-room-frontend/internal/session"
	"github.com/andray-nkhatel/meeting-room-frontend/internal/storage"
	"github.com/andray-nkhatel/meeting-room-frontend/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

func init() {
	gin.SetMode(gin.TestMode)

	// Initialize logger for tests
	if err := logger.Initialize(logger.Config{
		Level:       "error",
		Environment: "test",
	}); err != nil {
		panic(err)
	}
}

func testSessionConfig() config.SessionConfig {
	return config.SessionConfig{
		LoginPath: "/login",
		HomePath:  "/",
	}
}

type MockAuthAPI struct {
	mock.Mock
}

func (m *MockAuthAPI) Login(ctx context.Context, creds models.Credentials) (*models.LoginResponse, error) {
	args := m.Called(ctx, creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LoginResponse), args.Error(1)
}

func (m *MockAuthAPI) Register(ctx context.Context, req models.RegisterRequest) (*models.RegisterResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RegisterResponse), args.Error(1)
}

func postJSON(router *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	return sendJSON(router, "POST", path, payload)
}

func putJSON(router *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	return sendJSON(router, "PUT", path, payload)
}

func sendJSON(router *gin.Engine, method, path string, payload any) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

// withSessionManager installs a real session manager over an in-memory store
// so handlers see the same type the middleware provides.
func withSessionManager(api session.AuthAPI) (gin.HandlerFunc, *session.Store) {
	store := session.NewStore(storage.NewMemoryStore())
	manager := session.NewManager(store, api)
	return func(c *gin.Context) {
		c.Set(middleware.SessionManagerContextKey, manager)
		c.Next()
	}, store
}
