package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/allerfree/backend/internal/mocks"
	"github.com/pageza/allerfree/backend/internal/testhelpers"
	"github.com/pageza/allerfree/backend/internal/types"
)

func TestHome(t *testing.T) {
	home := &mocks.MockHomeService{}
	home.On("Feed", mock.Anything).Return(&types.HomeFeed{
		Popular: []*types.Recipe{{ID: "p"}},
		Recent:  []*types.Recipe{{ID: "r"}},
	}, nil).Once()
	home.On("Feed", mock.Anything).Return(nil, errors.New("db down")).Once()

	r := newTestRouter(&SiteHandler{home: home})

	w := doRequest(r, http.MethodGet, "/api/v1/home", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	var feed types.HomeFeed
	require.NoError(t, jsonUnmarshal(w, &feed))
	assert.Equal(t, "p", feed.Popular[0].ID)
	assert.Equal(t, "r", feed.Recent[0].ID)

	w = doRequest(r, http.MethodGet, "/api/v1/home", nil, false)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestArticlesPlaceholder(t *testing.T) {
	r := newTestRouter(&SiteHandler{})
	w := doRequest(r, http.MethodGet, "/api/v1/articles", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"articles":[],"message":"Coming soon"}`, w.Body.String())
}

func TestHealth(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	h := NewSiteHandler(&mocks.MockHomeService{}, db)

	r := gin.New()
	r.GET("/health", h.Health)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	h.health = func(context.Context) error { return errors.New("no route to host") }
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
