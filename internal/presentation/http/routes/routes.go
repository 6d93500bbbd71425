package routes

import (
	"time"

	"github.com/chekhub/chek-api/internal/config"
	"github.com/chekhub/chek-api/internal/presentation/http/handler"
	"github.com/chekhub/chek-api/internal/presentation/http/middleware"
	"github.com/chekhub/chek-api/pkg/utils"
	"github.com/gin-gonic/gin"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth    *handler.AuthHandler
	Receipt *handler.ReceiptHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager *utils.JWTManager
	Cfg        *config.Config
}

// Setup creates the Gin router and registers all routes. Paths mirror the
// public API contract: /register, /token, /user/... and /public/... .
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// Public routes (no authentication required)
	router.POST("/register", h.Auth.Register)
	router.POST("/token", h.Auth.Login)
	router.GET("/public/receipts/:id", h.Receipt.PublicText)

	// Protected routes (authentication required)
	user := router.Group("/user")
	user.Use(middleware.AuthMiddleware(deps.JWTManager))

	rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
		BurstSize:         deps.Cfg.RateLimit.Requests,
		CleanupInterval:   5 * time.Minute,
		EntryTTL:          10 * time.Minute,
	})
	user.Use(rateLimiter.Middleware())

	user.POST("/receipt", h.Receipt.Create)
	user.GET("/receipts", h.Receipt.List)
	user.GET("/receipts/:id", h.Receipt.Get)
	user.POST("/receipts/:id/print", h.Receipt.Print)

	return router
}
