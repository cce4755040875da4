package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/allerfree/backend/internal/middleware"
	"github.com/pageza/allerfree/backend/internal/service"
)

type UploadHandler struct {
	storage service.IStorageService
	auth    middleware.TokenValidator
}

func NewUploadHandler(storage service.IStorageService, auth middleware.TokenValidator) *UploadHandler {
	return &UploadHandler{storage: storage, auth: auth}
}

func (h *UploadHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/uploads/recipe-images", middleware.AuthMiddleware(h.auth), h.UploadRecipeImage)
}

// UploadRecipeImage stores an image ahead of recipe creation and returns its URL
func (h *UploadHandler) UploadRecipeImage(c *gin.Context) {
	upload, err := readUpload(c, "image", service.MaxRecipeImageSize)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	if upload == nil {
		badRequest(c, "image file is required")
		return
	}

	url, err := h.storage.UploadRecipeImage(c.Request.Context(), uuid.NewString(), upload)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"url": url})
}
