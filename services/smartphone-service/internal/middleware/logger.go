package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestLogger writes method and path before the request is dispatched.
func RequestLogger(logger *log.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = log.Default()
	}
	return func(c *gin.Context) {
		logger.Printf("[%s] %s %s", time.Now().UTC().Format(time.RFC3339Nano), c.Request.Method, c.Request.URL.RequestURI())
		c.Next()
	}
}
