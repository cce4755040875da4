package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pageza/allerfree/backend/internal/mocks"
	"github.com/pageza/allerfree/backend/internal/router"
	"github.com/pageza/allerfree/backend/internal/testhelpers"
	"github.com/pageza/allerfree/backend/internal/types"
)

func TestSetupRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	recipes := &mocks.MockRecipeService{}
	recipes.On("ListRecipes", mock.Anything).Return([]*types.Recipe{}, nil)

	r := router.SetupRouter(router.Deps{
		DB:          testhelpers.SetupSQLite(t),
		Logger:      zap.NewNop(),
		Recipes:     recipes,
		Profiles:    &mocks.MockProfileService{},
		Auth:        &mocks.MockAuthService{},
		Storage:     &mocks.MockStorageService{},
		Drafts:      &mocks.MockDraftService{},
		Home:        &mocks.MockHomeService{},
		CORSOrigins: []string{"http://localhost:5173"},
	})

	routes := map[string]bool{}
	for _, ri := range r.Routes() {
		routes[ri.Method+" "+ri.Path] = true
	}
	for _, want := range []string{
		"GET /health",
		"GET /api/v1/home",
		"GET /api/v1/articles",
		"GET /api/v1/recipes",
		"GET /api/v1/recipes/:id",
		"GET /api/v1/recipes/popular",
		"POST /api/v1/recipes",
		"PUT /api/v1/recipes/:id",
		"DELETE /api/v1/recipes/:id",
		"GET /api/v1/cuisines/:cuisine/recipes",
		"GET /api/v1/tags",
		"POST /api/v1/drafts/:id/submit",
		"GET /api/v1/auth/login",
		"POST /api/v1/auth/session",
		"POST /api/v1/profile/avatar",
		"POST /api/v1/uploads/recipe-images",
		"GET /api/v1/rate-limits",
	} {
		assert.True(t, routes[want], "missing route %s", want)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/recipes", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"recipes":[]}`, w.Body.String())
}
