package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/mealbook/backend/internal/middleware"
	"github.com/pageza/mealbook/backend/internal/model"
	"github.com/pageza/mealbook/backend/internal/service"
)

// Pinger reports whether the backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// Dependencies are the collaborators the HTTP API is built from.
// UploadLimiter may be nil, which disables upload rate limiting.
type Dependencies struct {
	Recipes       service.IRecipeService
	MealLogs      service.IMealLogService
	Stats         service.IStatsService
	Images        service.IImageService
	Store         Pinger
	UploadLimiter *middleware.RateLimiter
	Preferences   Preferences
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, deps Dependencies) {
	health := NewHealthHandler(deps.Store)
	router.GET("/health", health.Check)

	v1 := router.Group("/api/v1")
	v1.GET("/health", health.Check)

	NewRecipeHandler(deps.Recipes, deps.MealLogs).RegisterRoutes(v1)
	NewMealLogHandler(deps.MealLogs).RegisterRoutes(v1)
	NewDashboardHandler(deps.Stats).RegisterRoutes(v1)
	NewImageHandler(deps.Images, deps.UploadLimiter).RegisterRoutes(v1)
	NewPreferencesHandler(deps.Preferences).RegisterRoutes(v1)

	if deps.UploadLimiter != nil {
		RegisterRateLimitRoutes(v1, deps.UploadLimiter)
	}
}

// RegisterRateLimitRoutes registers an endpoint for checking the caller's
// remaining uploads
func RegisterRateLimitRoutes(router *gin.RouterGroup, uploadLimiter *middleware.RateLimiter) {
	router.GET("/rate-limits/image-upload", func(c *gin.Context) {
		remaining, resetTime, err := uploadLimiter.GetRemainingRequests(c.Request.Context(), c.ClientIP())
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "failed to check rate limit"})
			return
		}

		cfg := uploadLimiter.Config()
		c.JSON(http.StatusOK, gin.H{
			"limit":      cfg.Limit,
			"remaining":  remaining,
			"reset_time": resetTime.Unix(),
			"window":     cfg.Window.String(),
		})
	})
}

// HealthHandler reports service and database health
type HealthHandler struct {
	store Pinger
}

func NewHealthHandler(store Pinger) *HealthHandler {
	return &HealthHandler{store: store}
}

// Check returns 200 when the database answers and 503 otherwise
func (h *HealthHandler) Check(c *gin.Context) {
	if err := h.store.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unavailable",
			"database": "unreachable",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"database": "ok",
	})
}

// bindJSON decodes the request body and records a validation error on failure
func bindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		_ = c.Error(model.NewValidationError("body", err.Error()))
		return false
	}
	return true
}
