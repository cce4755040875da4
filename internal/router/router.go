package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/allerfree/backend/internal/api"
	"github.com/pageza/allerfree/backend/internal/middleware"
	"github.com/pageza/allerfree/backend/internal/service"
)

// Deps is everything the routes are built from
type Deps struct {
	DB       *gorm.DB
	Logger   *zap.Logger
	Recipes  service.IRecipeService
	Profiles service.IProfileService
	Auth     service.IAuthService
	Storage  service.IStorageService
	Drafts   service.IDraftService
	Home     service.IHomeService
	Limits   api.RateLimits

	CORSOrigins  []string
	SecureCookie bool
}

// SetupRouter configures the application routes
func SetupRouter(d Deps) *gin.Engine {
	router := gin.New()

	router.Use(middleware.ErrorHandler(d.Logger))
	router.Use(middleware.RequestLogger(d.Logger))
	router.Use(middleware.CORS(d.CORSOrigins))

	// Authenticated routes see the caller's profile id, not just the token subject
	auth := service.NewCallerResolver(d.Auth, d.Profiles, d.Logger)

	site := api.NewSiteHandler(d.Home, d.DB)
	router.GET("/health", site.Health)

	// API v1 routes
	v1 := router.Group("/api/v1")

	site.RegisterRoutes(v1)
	api.NewRecipeHandler(d.Recipes, auth, d.Limits).RegisterRoutes(v1)
	api.NewDraftHandler(d.Drafts, auth, d.Limits.Submission).RegisterRoutes(v1)
	api.NewAuthHandler(auth, d.Profiles, d.SecureCookie).RegisterRoutes(v1)
	api.NewProfileHandler(d.Profiles, d.Storage, auth).RegisterRoutes(v1)
	api.NewUploadHandler(d.Storage, auth).RegisterRoutes(v1)
	api.NewRateLimitHandler(d.Limits, auth).RegisterRoutes(v1)

	return router
}
