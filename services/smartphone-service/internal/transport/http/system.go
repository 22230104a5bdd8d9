package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const APIVersion = "1.0.0"

type SystemHandler struct {
	env  string
	port string
	now  func() time.Time
}

func NewSystemHandler(env, port string) *SystemHandler {
	return &SystemHandler{env: env, port: port, now: time.Now}
}

// GET /health
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"message":   "Backend is running",
		"timestamp": h.now().UTC().Format(time.RFC3339Nano),
		"port":      h.port,
	})
}

// GET /
func (h *SystemHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Smartphone Management API",
		"version": APIVersion,
		"endpoints": gin.H{
			"health":      "/health",
			"smartphones": "/api/smartphones",
		},
		"environment": h.env,
	})
}

func (h *SystemHandler) NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"error": "Route not found",
		"path":  c.Request.URL.RequestURI(),
	})
}
