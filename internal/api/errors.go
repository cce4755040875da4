package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/allerfree/backend/internal/service"
	"github.com/pageza/allerfree/backend/internal/types"
)

var errorStatuses = []struct {
	err    error
	status int
}{
	{service.ErrUnauthenticated, http.StatusUnauthorized},
	{service.ErrInvalidToken, http.StatusUnauthorized},
	{service.ErrNotOwner, http.StatusForbidden},
	{service.ErrDraftForbidden, http.StatusForbidden},
	{service.ErrRecipeNotFound, http.StatusNotFound},
	{service.ErrDraftNotFound, http.StatusNotFound},
	{service.ErrUserNotFound, http.StatusNotFound},
	{service.ErrInvalidRecipe, http.StatusBadRequest},
	{service.ErrIncompleteDraft, http.StatusBadRequest},
	{service.ErrInvalidUpload, http.StatusBadRequest},
	{service.ErrUnknownConnection, http.StatusBadRequest},
	{service.ErrMissingEmail, http.StatusBadRequest},
	{service.ErrDraftSubmitting, http.StatusConflict},
	{service.ErrDraftConflict, http.StatusConflict},
	{service.ErrExchangeDisabled, http.StatusNotImplemented},
}

// respondError maps service errors onto status codes. Anything unrecognised
// is a 500 whose detail stays in the request log.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)

	var verr *service.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Kind.Error(), "issues": verr.Issues})
		return
	}

	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			c.JSON(e.status, gin.H{"error": e.err.Error()})
			return
		}
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

// readUpload returns the multipart file in field, or nil when none was sent.
// At most limit+1 bytes are read so the storage service can reject the rest.
func readUpload(c *gin.Context, field string, limit int64) (*types.Upload, error) {
	header, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, err
	}
	return &types.Upload{Filename: header.Filename, Size: header.Size, Data: data}, nil
}
