package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/pageza/allerfree/backend/internal/middleware"
	"github.com/pageza/allerfree/backend/internal/service"
)

const (
	stateCookie    = "auth_state"
	stateCookieTTL = 10 * time.Minute
)

// AuthHandler serves the sign-in redirects and keeps the local profile in
// sync with the identity provider
type AuthHandler struct {
	auth         service.IAuthService
	profiles     service.IProfileService
	secureCookie bool
}

func NewAuthHandler(auth service.IAuthService, profiles service.IProfileService, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		auth:         auth,
		profiles:     profiles,
		secureCookie: secureCookie,
	}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.GET("/login", h.Login)
		auth.GET("/callback", h.Callback)
		auth.GET("/logout", h.Logout)
		auth.POST("/session", middleware.AuthMiddleware(h.auth), h.Session)
	}
}

// Login redirects to the provider for ?connection=google-oauth2|facebook
func (h *AuthHandler) Login(c *gin.Context) {
	connection := c.DefaultQuery("connection", service.ConnectionGoogle)

	state, err := gonanoid.New()
	if err != nil {
		respondError(c, err)
		return
	}

	target, err := h.auth.LoginURL(connection, state)
	if err != nil {
		respondError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(stateCookie, state, int(stateCookieTTL.Seconds()), "/", "", h.secureCookie, true)
	c.Redirect(http.StatusFound, target)
}

// Callback completes the code flow and syncs the signed-in user's profile
func (h *AuthHandler) Callback(c *gin.Context) {
	if msg := c.Query("error"); msg != "" {
		badRequest(c, c.DefaultQuery("error_description", msg))
		return
	}

	state, err := c.Cookie(stateCookie)
	if err != nil || state == "" || state != c.Query("state") {
		badRequest(c, "invalid state")
		return
	}
	c.SetCookie(stateCookie, "", -1, "/", "", h.secureCookie, true)

	code := c.Query("code")
	if code == "" {
		badRequest(c, "missing authorization code")
		return
	}

	identity, err := h.auth.Exchange(c.Request.Context(), code)
	if err != nil {
		respondError(c, err)
		return
	}

	user, err := h.profiles.SyncIdentity(c.Request.Context(), identity)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Logout sends the browser to the provider's logout endpoint
func (h *AuthHandler) Logout(c *gin.Context) {
	c.Redirect(http.StatusFound, h.auth.LogoutURL())
}

// Session syncs the caller's profile from their token and returns it. The
// front end calls it after every sign-in.
func (h *AuthHandler) Session(c *gin.Context) {
	identity, ok := middleware.Identity(c)
	if !ok {
		respondError(c, service.ErrUnauthenticated)
		return
	}

	user, err := h.profiles.SyncIdentity(c.Request.Context(), identity)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
