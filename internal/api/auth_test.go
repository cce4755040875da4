package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/allerfree/backend/internal/mocks"
	"github.com/pageza/allerfree/backend/internal/service"
	"github.com/pageza/allerfree/backend/internal/types"
)

func setupAuthHandler(t *testing.T) (*mocks.MockAuthService, *mocks.MockProfileService, http.Handler) {
	t.Helper()
	auth := newTestAuth()
	profiles := &mocks.MockProfileService{}
	return auth, profiles, newTestRouter(NewAuthHandler(auth, profiles, false))
}

func TestLoginRedirect(t *testing.T) {
	auth, _, r := setupAuthHandler(t)
	auth.On("LoginURL", "facebook", mock.AnythingOfType("string")).
		Return("https://tenant.example.com/authorize?connection=facebook", nil)
	auth.On("LoginURL", "github", mock.Anything).Return("", service.ErrUnknownConnection)

	w := doRequest(r, http.MethodGet, "/api/v1/auth/login?connection=facebook", nil, false)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://tenant.example.com/authorize?connection=facebook", w.Header().Get("Location"))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, stateCookie, cookies[0].Name)
	assert.NotEmpty(t, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)

	w = doRequest(r, http.MethodGet, "/api/v1/auth/login?connection=github", nil, false)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func callbackRequest(path, state string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if state != "" {
		req.AddCookie(&http.Cookie{Name: stateCookie, Value: state})
	}
	return req
}

func TestCallback(t *testing.T) {
	auth, profiles, r := setupAuthHandler(t)
	identity := &types.Identity{Subject: "google-oauth2|7", Email: "g@example.com", Name: "Gil"}
	auth.On("Exchange", mock.Anything, "the-code").Return(identity, nil)
	profiles.On("SyncIdentity", mock.Anything, identity).
		Return(&types.AuthUser{ID: "google-oauth2|7", Email: "g@example.com", Name: "Gil"}, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, callbackRequest("/api/v1/auth/callback?code=the-code&state=s1", "s1"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"email":"g@example.com"`)

	// state mismatch never reaches the provider
	w = httptest.NewRecorder()
	r.ServeHTTP(w, callbackRequest("/api/v1/auth/callback?code=the-code&state=s2", "s1"))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, callbackRequest("/api/v1/auth/callback?code=the-code&state=s1", ""))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, callbackRequest("/api/v1/auth/callback?error=access_denied&error_description=User+cancelled", "s1"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "User cancelled")

	auth.AssertNumberOfCalls(t, "Exchange", 1)
}

func TestCallbackWithoutClientSecret(t *testing.T) {
	auth, _, r := setupAuthHandler(t)
	auth.On("Exchange", mock.Anything, "c").Return(nil, service.ErrExchangeDisabled)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, callbackRequest("/api/v1/auth/callback?code=c&state=s", "s"))
	assert.Equal(t, http.StatusNotImplemented, w.Code)
}

func TestLogoutRedirect(t *testing.T) {
	auth, _, r := setupAuthHandler(t)
	auth.On("LogoutURL").Return("https://tenant.example.com/v2/logout?client_id=abc")

	w := doRequest(r, http.MethodGet, "/api/v1/auth/logout", nil, false)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://tenant.example.com/v2/logout?client_id=abc", w.Header().Get("Location"))
}

func TestSession(t *testing.T) {
	_, profiles, r := setupAuthHandler(t)
	profiles.On("SyncIdentity", mock.Anything, mock.MatchedBy(func(id *types.Identity) bool {
		return id.Subject == testUserID && id.Email == "pat@example.com"
	})).Return(&types.AuthUser{ID: testUserID, Name: "Pat"}, nil)

	w := doRequest(r, http.MethodPost, "/api/v1/auth/session", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Pat"`)

	w = doRequest(r, http.MethodPost, "/api/v1/auth/session", nil, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	profiles.AssertExpectations(t)
}
