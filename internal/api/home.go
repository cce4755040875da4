package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pageza/allerfree/backend/internal/database"
	"github.com/pageza/allerfree/backend/internal/middleware"
	"github.com/pageza/allerfree/backend/internal/service"
)

const healthTimeout = 2 * time.Second

// SiteHandler serves the landing page feed and the small static pages
type SiteHandler struct {
	home   service.IHomeService
	health func(ctx context.Context) error
}

func NewSiteHandler(home service.IHomeService, db *gorm.DB) *SiteHandler {
	return &SiteHandler{
		home: home,
		health: func(ctx context.Context) error {
			return database.HealthCheck(ctx, db)
		},
	}
}

func (h *SiteHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/home", h.Home)
	router.GET("/articles", h.Articles)
}

func (h *SiteHandler) Home(c *gin.Context) {
	feed, err := h.home.Feed(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, feed)
}

// Articles is a placeholder until articles exist
func (h *SiteHandler) Articles(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"articles": []struct{}{}, "message": "Coming soon"})
}

func (h *SiteHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	if err := h.health(ctx); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "database": "unreachable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// RateLimitHandler reports the caller's remaining write quota
type RateLimitHandler struct {
	limits RateLimits
	auth   middleware.TokenValidator
}

func NewRateLimitHandler(limits RateLimits, auth middleware.TokenValidator) *RateLimitHandler {
	return &RateLimitHandler{limits: limits, auth: auth}
}

func (h *RateLimitHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/rate-limits", middleware.AuthMiddleware(h.auth), h.Status)
}

func (h *RateLimitHandler) Status(c *gin.Context) {
	userID := middleware.UserID(c)
	out := gin.H{}
	for name, rl := range map[string]*middleware.RateLimiter{
		"recipe_creation":  h.limits.Creation,
		"draft_submission": h.limits.Submission,
	} {
		if rl == nil {
			continue
		}
		status, err := rl.Remaining(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		out[name] = status
	}
	c.JSON(http.StatusOK, gin.H{"rate_limits": out})
}
