package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/allerfree/backend/internal/middleware"
	"github.com/pageza/allerfree/backend/internal/service"
	"github.com/pageza/allerfree/backend/internal/types"
)

// DraftHandler exposes the recipe submission wizard
type DraftHandler struct {
	drafts service.IDraftService
	auth   middleware.TokenValidator
	limit  *middleware.RateLimiter
}

func NewDraftHandler(drafts service.IDraftService, auth middleware.TokenValidator, submission *middleware.RateLimiter) *DraftHandler {
	return &DraftHandler{
		drafts: drafts,
		auth:   auth,
		limit:  submission,
	}
}

func (h *DraftHandler) RegisterRoutes(router *gin.RouterGroup) {
	drafts := router.Group("/drafts", middleware.AuthMiddleware(h.auth))
	{
		drafts.POST("", h.CreateDraft)
		drafts.GET("/:id", h.GetDraft)
		drafts.PATCH("/:id", h.UpdateDraft)
		drafts.DELETE("/:id", h.DeleteDraft)
		drafts.POST("/:id/next", h.NextStep)
		drafts.POST("/:id/prev", h.PrevStep)
		drafts.POST("/:id/tags/:tag", h.ToggleTag)
		drafts.POST("/:id/submit", perUser(h.limit), h.SubmitDraft)
	}
}

func respondDraft(c *gin.Context, status int, draft *types.RecipeDraft, err error) {
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(status, gin.H{"draft": draft})
}

func (h *DraftHandler) CreateDraft(c *gin.Context) {
	draft, err := h.drafts.CreateDraft(c.Request.Context(), middleware.UserID(c))
	respondDraft(c, http.StatusCreated, draft, err)
}

func (h *DraftHandler) GetDraft(c *gin.Context) {
	draft, err := h.drafts.GetDraft(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	respondDraft(c, http.StatusOK, draft, err)
}

func (h *DraftHandler) UpdateDraft(c *gin.Context) {
	var patch types.DraftPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err.Error())
		return
	}
	draft, err := h.drafts.UpdateDraft(c.Request.Context(), middleware.UserID(c), c.Param("id"), &patch)
	respondDraft(c, http.StatusOK, draft, err)
}

func (h *DraftHandler) NextStep(c *gin.Context) {
	draft, err := h.drafts.NextStep(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	respondDraft(c, http.StatusOK, draft, err)
}

func (h *DraftHandler) PrevStep(c *gin.Context) {
	draft, err := h.drafts.PrevStep(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	respondDraft(c, http.StatusOK, draft, err)
}

func (h *DraftHandler) ToggleTag(c *gin.Context) {
	draft, err := h.drafts.ToggleTag(c.Request.Context(), middleware.UserID(c), c.Param("id"), c.Param("tag"))
	respondDraft(c, http.StatusOK, draft, err)
}

func (h *DraftHandler) DeleteDraft(c *gin.Context) {
	if err := h.drafts.DeleteDraft(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SubmitDraft publishes the draft, taking an optional multipart "image" file
func (h *DraftHandler) SubmitDraft(c *gin.Context) {
	image, err := readUpload(c, "image", service.MaxRecipeImageSize)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	recipe, err := h.drafts.SubmitDraft(c.Request.Context(), middleware.UserID(c), c.Param("id"), image)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"recipe": recipe})
}
