package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/allerfree/backend/internal/middleware"
	"github.com/pageza/allerfree/backend/internal/service"
	"github.com/pageza/allerfree/backend/internal/types"
)

type ProfileHandler struct {
	profiles service.IProfileService
	storage  service.IStorageService
	auth     middleware.TokenValidator
}

func NewProfileHandler(profiles service.IProfileService, storage service.IStorageService, auth middleware.TokenValidator) *ProfileHandler {
	return &ProfileHandler{
		profiles: profiles,
		storage:  storage,
		auth:     auth,
	}
}

func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	profile := router.Group("/profile", middleware.AuthMiddleware(h.auth))
	{
		profile.GET("", h.GetProfile)
		profile.PUT("", h.UpdateProfile)
		profile.POST("/avatar", h.UploadAvatar)
	}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, err := h.profiles.GetProfile(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if profile == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req types.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if req.Empty() {
		badRequest(c, "nothing to update")
		return
	}

	profile, err := h.profiles.UpdateProfile(c.Request.Context(), middleware.UserID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// UploadAvatar stores the multipart "avatar" file, points the profile at it
// and removes the avatar it replaces
func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	upload, err := readUpload(c, "avatar", service.MaxAvatarSize)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	if upload == nil {
		badRequest(c, "avatar file is required")
		return
	}

	userID := middleware.UserID(c)
	url, err := h.storage.UploadUserAvatar(c.Request.Context(), userID, upload)
	if err != nil {
		respondError(c, err)
		return
	}

	previous := ""
	if current, err := h.profiles.GetProfile(c.Request.Context(), userID); err != nil {
		_ = c.Error(err)
	} else if current != nil {
		previous = current.Avatar
	}

	profile, err := h.profiles.UpdateProfile(c.Request.Context(), userID, &types.UpdateProfileRequest{Avatar: &url})
	if err != nil {
		respondError(c, err)
		return
	}

	if previous != "" && previous != url {
		if err := h.storage.DeleteUserAvatar(c.Request.Context(), previous); err != nil {
			_ = c.Error(err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}
