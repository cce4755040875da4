package api

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/allerfree/backend/internal/mocks"
	"github.com/pageza/allerfree/backend/internal/types"
)

const (
	testToken  = "test-token"
	testUserID = "google-oauth2|1001"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestAuth accepts testToken as testUserID and rejects everything else
func newTestAuth() *mocks.MockAuthService {
	auth := &mocks.MockAuthService{}
	auth.On("ValidateToken", mock.Anything, testToken).Return(&types.Identity{
		Subject:       testUserID,
		Email:         "pat@example.com",
		Name:          "Pat",
		EmailVerified: true,
	}, nil).Maybe()
	return auth
}

type registrar interface {
	RegisterRoutes(router *gin.RouterGroup)
}

func newTestRouter(handlers ...registrar) *gin.Engine {
	r := gin.New()
	v1 := r.Group("/api/v1")
	for _, h := range handlers {
		h.RegisterRoutes(v1)
	}
	return r
}

func doRequest(r http.Handler, method, path string, body interface{}, authed bool) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+testToken)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doMultipart(r http.Handler, path, field, filename string, data []byte) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if field != "" {
		fw, _ := mw.CreateFormFile(field, filename)
		_, _ = fw.Write(data)
	}
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+testToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]json.RawMessage {
	t.Helper()
	var out map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func jsonUnmarshal(w *httptest.ResponseRecorder, v interface{}) error {
	return json.Unmarshal(w.Body.Bytes(), v)
}
