package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	roomCacheStats func() string
}

func NewHealthHandler(roomCacheStats func() string) *HealthHandler {
	return &HealthHandler{
		roomCacheStats: roomCacheStats,
	}
}

func (h *HealthHandler) Healthcheck(c *gin.Context) {
	c.Header("Cache-Control", "no-cache, no-store, max-age=0, must-revalidate")

	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"room_cache": h.roomCacheStats(),
	})
}
