package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/allerfree/backend/internal/mocks"
	"github.com/pageza/allerfree/backend/internal/service"
	"github.com/pageza/allerfree/backend/internal/types"
)

func setupDraftHandler(t *testing.T) (*mocks.MockDraftService, http.Handler) {
	t.Helper()
	drafts := &mocks.MockDraftService{}
	t.Cleanup(func() { drafts.AssertExpectations(t) })
	return drafts, newTestRouter(NewDraftHandler(drafts, newTestAuth(), nil))
}

func TestDraftLifecycleRoutes(t *testing.T) {
	drafts, r := setupDraftHandler(t)
	draft := &types.RecipeDraft{ID: "d1", UserID: testUserID, Step: types.StepBasicInfo, StepName: "Basic Info"}
	title := "Shakshuka"

	drafts.On("CreateDraft", mock.Anything, testUserID).Return(draft, nil)
	drafts.On("GetDraft", mock.Anything, testUserID, "d1").Return(draft, nil)
	drafts.On("UpdateDraft", mock.Anything, testUserID, "d1", &types.DraftPatch{Title: &title}).Return(draft, nil)
	drafts.On("NextStep", mock.Anything, testUserID, "d1").Return(draft, nil)
	drafts.On("PrevStep", mock.Anything, testUserID, "d1").Return(draft, nil)
	drafts.On("ToggleTag", mock.Anything, testUserID, "d1", "Vegan").Return(draft, nil)
	drafts.On("DeleteDraft", mock.Anything, testUserID, "d1").Return(nil)

	w := doRequest(r, http.MethodPost, "/api/v1/drafts", nil, true)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"stepName":"Basic Info"`)

	for _, tc := range []struct {
		method, path string
		body         interface{}
		status       int
	}{
		{http.MethodGet, "/api/v1/drafts/d1", nil, http.StatusOK},
		{http.MethodPatch, "/api/v1/drafts/d1", map[string]string{"title": title}, http.StatusOK},
		{http.MethodPost, "/api/v1/drafts/d1/next", nil, http.StatusOK},
		{http.MethodPost, "/api/v1/drafts/d1/prev", nil, http.StatusOK},
		{http.MethodPost, "/api/v1/drafts/d1/tags/Vegan", nil, http.StatusOK},
		{http.MethodDelete, "/api/v1/drafts/d1", nil, http.StatusNoContent},
	} {
		w := doRequest(r, tc.method, tc.path, tc.body, true)
		assert.Equal(t, tc.status, w.Code, "%s %s", tc.method, tc.path)
	}
}

func TestDraftRoutesRequireAuth(t *testing.T) {
	_, r := setupDraftHandler(t)
	w := doRequest(r, http.MethodPost, "/api/v1/drafts", nil, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDraftErrors(t *testing.T) {
	drafts, r := setupDraftHandler(t)
	drafts.On("GetDraft", mock.Anything, testUserID, "theirs").
		Return(nil, fmt.Errorf("failed to get draft: %w", service.ErrDraftForbidden))
	drafts.On("GetDraft", mock.Anything, testUserID, "expired").
		Return(nil, fmt.Errorf("failed to get draft: %w", service.ErrDraftNotFound))

	drafts.On("SubmitDraft", mock.Anything, testUserID, "busy", (*types.Upload)(nil)).
		Return(nil, fmt.Errorf("failed to submit draft: %w", service.ErrDraftSubmitting))

	assert.Equal(t, http.StatusForbidden, doRequest(r, http.MethodGet, "/api/v1/drafts/theirs", nil, true).Code)
	assert.Equal(t, http.StatusNotFound, doRequest(r, http.MethodGet, "/api/v1/drafts/expired", nil, true).Code)

	w := doRequest(r, http.MethodPost, "/api/v1/drafts/busy/submit", nil, true)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"error":"draft is already being submitted"}`, w.Body.String())
}

func TestSubmitDraft(t *testing.T) {
	drafts, r := setupDraftHandler(t)
	drafts.On("SubmitDraft", mock.Anything, testUserID, "d1", mock.MatchedBy(func(u *types.Upload) bool {
		return u != nil && u.Filename == "dish.jpg"
	})).Return(&types.Recipe{ID: "r1", Title: "Shakshuka"}, nil)
	drafts.On("SubmitDraft", mock.Anything, testUserID, "d2", (*types.Upload)(nil)).
		Return(nil, fmt.Errorf("failed to submit draft: %w", &service.ValidationError{
			Kind:   service.ErrIncompleteDraft,
			Issues: []string{"title is required"},
		}))

	w := doMultipart(r, "/api/v1/drafts/d1/submit", "image", "dish.jpg", []byte("jpeg"))
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"r1"`)

	w = doRequest(r, http.MethodPost, "/api/v1/drafts/d2/submit", nil, true)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"draft is incomplete","issues":["title is required"]}`, w.Body.String())
}
