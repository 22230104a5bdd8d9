package handlers

import (
	"fmt"
	"log"
	"time"

	"smartphones/services/smartphone-service/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Front-end origins allowed when none are configured.
var DefaultAllowedOrigins = []string{
	"http://localhost:5173",
	"http://localhost:3000",
	"http://localhost:30002",
	"http://127.0.0.1:30002",
	"http://172.17.0.2:30002",
}

type RouterConfig struct {
	Environment     string
	AllowedOrigins  []string
	DeleteRateLimit int
	DeleteWindow    time.Duration
	MaxBodyBytes    int64
}

func NewRouter(phoneHandler *SmartphoneHandler, systemHandler *SystemHandler, limiter *middleware.RateLimiter, cfg RouterConfig) *gin.Engine {
	r := gin.New()

	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Error: panic on %s %s: %v", c.Request.Method, c.Request.URL.Path, recovered)
		internalError(c, cfg.Environment, fmt.Errorf("%v", recovered))
	}))
	r.Use(middleware.RequestLogger(nil))
	r.Use(middleware.BodyLimit(cfg.MaxBodyBytes))

	config := cors.DefaultConfig()
	config.AllowOrigins = cfg.AllowedOrigins
	if len(config.AllowOrigins) == 0 {
		config.AllowOrigins = DefaultAllowedOrigins
	}
	config.AllowCredentials = true
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", DeleteCodeHeader}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	r.Use(cors.New(config))

	r.GET("/health", systemHandler.Health)
	r.GET("/", systemHandler.Root)

	api := r.Group("/api")
	{
		phones := api.Group("/smartphones")
		{
			phones.GET("", phoneHandler.List)
			phones.GET("/:id", phoneHandler.GetOne)
			phones.POST("", phoneHandler.Create)
			phones.PUT("/:id", phoneHandler.Update)
			phones.DELETE("/:id", limiter.Limit("delete", cfg.DeleteRateLimit, cfg.DeleteWindow), phoneHandler.Delete)
		}
	}

	r.NoRoute(systemHandler.NotFound)

	return r
}
