package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/andray-nkhatel/meeting-room-frontend/config"
	"github.com/andray-nkhatel/meeting-room-frontend/internal/models"
	"github.com/gin-gonic/gin"
)

// UserService is the slice of the upstream client behind the admin
// user-management screen.
type UserService interface {
	GetAllUsers(ctx context.Context) ([]models.ManagedUser, error)
	GetUserByID(ctx context.Context, userID int) (*models.ManagedUser, error)
	UpdateUser(ctx context.Context, userID int, req models.UpdateUserRequest) (*models.ManagedUser, error)
	PromoteUser(ctx context.Context, userID int) error
	DemoteUser(ctx context.Context, userID int) error
	DeleteUser(ctx context.Context, userID int) error
}

type UserHandler struct {
	users      UserService
	sessionCfg config.SessionConfig
}

func NewUserHandler(users UserService, sessionCfg config.SessionConfig) *UserHandler {
	return &UserHandler{users: users, sessionCfg: sessionCfg}
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.users.GetAllUsers(c.Request.Context())
	if err != nil {
		respondUpstreamError(c, err, h.sessionCfg)
		return
	}

	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid user ID", err)
		return
	}

	user, err := h.users.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondUpstreamError(c, err, h.sessionCfg)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid user ID", err)
		return
	}

	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Invalid request", ParseValidationErrors(err), err)
		return
	}

	user, err := h.users.UpdateUser(c.Request.Context(), userID, req)
	if err != nil {
		respondUpstreamError(c, err, h.sessionCfg)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) PromoteUser(c *gin.Context) {
	h.roleChange(c, h.users.PromoteUser)
}

func (h *UserHandler) DemoteUser(c *gin.Context) {
	h.roleChange(c, h.users.DemoteUser)
}

func (h *UserHandler) roleChange(c *gin.Context, change func(context.Context, int) error) {
	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid user ID", err)
		return
	}

	if err := change(c.Request.Context(), userID); err != nil {
		respondUpstreamError(c, err, h.sessionCfg)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid user ID", err)
		return
	}

	if err := h.users.DeleteUser(c.Request.Context(), userID); err != nil {
		respondUpstreamError(c, err, h.sessionCfg)
		return
	}

	c.Status(http.StatusNoContent)
}
