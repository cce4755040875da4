package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pageza/allerfree/backend/internal/middleware"
	"github.com/pageza/allerfree/backend/internal/service"
	"github.com/pageza/allerfree/backend/internal/types"
)

const (
	// listing page size for ?cuisine=popular
	popularListingSize = 20
	maxListLimit       = 50
)

// RateLimits groups the limiters guarding write routes. A nil limiter lets
// every request through.
type RateLimits struct {
	Creation     *middleware.RateLimiter
	Modification *middleware.RateLimiter
	Submission   *middleware.RateLimiter
}

func perUser(rl *middleware.RateLimiter) gin.HandlerFunc {
	if rl == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return rl.RateLimitMiddleware()
}

func perRecipe(rl *middleware.RateLimiter) gin.HandlerFunc {
	if rl == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return rl.PerRecipeRateLimitMiddleware()
}

type RecipeHandler struct {
	recipes service.IRecipeService
	auth    middleware.TokenValidator
	limits  RateLimits
}

func NewRecipeHandler(recipes service.IRecipeService, auth middleware.TokenValidator, limits RateLimits) *RecipeHandler {
	return &RecipeHandler{
		recipes: recipes,
		auth:    auth,
		limits:  limits,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/popular", h.PopularRecipes)
		recipes.GET("/recent", h.RecentRecipes)
		recipes.GET("/:id", h.GetRecipe)
		recipes.POST("", middleware.AuthMiddleware(h.auth), perUser(h.limits.Creation), h.CreateRecipe)
		recipes.PUT("/:id", middleware.AuthMiddleware(h.auth), perRecipe(h.limits.Modification), h.UpdateRecipe)
		recipes.DELETE("/:id", middleware.AuthMiddleware(h.auth), perRecipe(h.limits.Modification), h.DeleteRecipe)
	}

	cuisines := router.Group("/cuisines")
	{
		cuisines.GET("", h.ListCuisines)
		cuisines.GET("/:cuisine/recipes", h.CuisineRecipes)
	}

	router.GET("/tags", h.ListTags)
}

// ListRecipes backs the recipe listing page. A search query wins over the
// cuisine filter; cuisine "popular" lists the best rated recipes.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		recipes []*types.Recipe
		err     error
	)
	query := strings.TrimSpace(c.Query("q"))
	cuisine := c.Query("cuisine")

	switch {
	case query != "":
		recipes, err = h.recipes.SearchRecipes(ctx, query)
	case cuisine == "" || strings.EqualFold(cuisine, "all"):
		recipes, err = h.recipes.ListRecipes(ctx)
	case strings.EqualFold(cuisine, "popular"):
		recipes, err = h.recipes.PopularRecipes(ctx, popularListingSize)
	default:
		cu := types.Cuisine(cuisine)
		if !cu.Valid() {
			badRequest(c, "unknown cuisine")
			return
		}
		recipes, err = h.recipes.ListByCuisine(ctx, cu)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	recipe, err := h.recipes.GetRecipe(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if recipe == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}

func (h *RecipeHandler) PopularRecipes(c *gin.Context) {
	limit, ok := listLimit(c)
	if !ok {
		return
	}
	recipes, err := h.recipes.PopularRecipes(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (h *RecipeHandler) RecentRecipes(c *gin.Context) {
	limit, ok := listLimit(c)
	if !ok {
		return
	}
	recipes, err := h.recipes.RecentRecipes(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

// listLimit reads ?limit=, defaulting to DefaultListLimit and capped at maxListLimit
func listLimit(c *gin.Context) (int, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return service.DefaultListLimit, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		badRequest(c, "limit must be a positive integer")
		return 0, false
	}
	if n > maxListLimit {
		n = maxListLimit
	}
	return n, true
}

func (h *RecipeHandler) ListCuisines(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"cuisines": types.Cuisines()})
}

func (h *RecipeHandler) CuisineRecipes(c *gin.Context) {
	cuisine := types.Cuisine(c.Param("cuisine"))
	if !cuisine.Valid() {
		badRequest(c, "unknown cuisine")
		return
	}

	recipes, err := h.recipes.ListByCuisine(c.Request.Context(), cuisine)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cuisine": cuisine, "recipes": recipes})
}

func (h *RecipeHandler) ListTags(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tags": types.CommonTags})
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var form types.RecipeFormData
	if err := c.ShouldBindJSON(&form); err != nil {
		badRequest(c, err.Error())
		return
	}

	// the author is always the caller
	recipe, err := h.recipes.CreateRecipe(c.Request.Context(), &form, middleware.UserID(c), "")
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"recipe": recipe})
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	var update types.RecipeUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		badRequest(c, err.Error())
		return
	}

	recipe, err := h.recipes.UpdateRecipe(c.Request.Context(), middleware.UserID(c), c.Param("id"), &update)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	if err := h.recipes.DeleteRecipe(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
