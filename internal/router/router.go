package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pageza/glycemic-assist/backend/internal/api"
	"github.com/pageza/glycemic-assist/backend/internal/middleware"
)

// Options holds the collaborators of the HTTP API. Limiter and Tokens are optional.
type Options struct {
	MealHandler    *api.MealHandler
	HealthHandler  *api.HealthHandler
	Limiter        *middleware.RateLimiter
	Tokens         middleware.TokenValidator
	AllowedOrigins []string
}

// SetupRouter configures the application routes
func SetupRouter(opts Options) *gin.Engine {
	if opts.HealthHandler == nil {
		opts.HealthHandler = api.NewHealthHandler(nil)
	}

	router := gin.New()

	router.Use(middleware.RequestLogger())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS(opts.AllowedOrigins))

	router.GET("/", api.Index)
	router.GET("/health", opts.HealthHandler.HealthCheck)
	router.GET("/api/health", opts.HealthHandler.HealthCheck)

	var guards []gin.HandlerFunc
	if opts.Tokens != nil {
		guards = append(guards, middleware.AuthMiddleware(opts.Tokens))
	}
	if opts.Limiter != nil {
		guards = append(guards, opts.Limiter.RateLimitMiddleware())
	}

	// Original endpoint used by existing clients
	legacy := router.Group("")
	legacy.Use(guards...)
	{
		legacy.POST("/process-meal", opts.MealHandler.ProcessMeal)
	}

	v1 := router.Group("/api/v1")
	opts.MealHandler.RegisterRoutes(v1, guards...)

	if opts.Limiter != nil {
		RegisterRateLimitRoutes(v1, opts.Limiter)
	}

	return router
}

// RegisterRateLimitRoutes registers an endpoint for checking the caller's rate limit status
func RegisterRateLimitRoutes(router *gin.RouterGroup, limiter *middleware.RateLimiter) {
	router.GET("/rate-limit", func(c *gin.Context) {
		remaining, resetTime, err := limiter.GetRemainingRequests(c.Request.Context(), c.ClientIP())
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "failed to check rate limit"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"limit":      limiter.Limit(),
			"remaining":  remaining,
			"reset_time": resetTime.Unix(),
			"window":     limiter.Window().Round(time.Second).String(),
		})
	})
}
