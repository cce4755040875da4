package service

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/auth0/go-jwt-middleware/v2/jwks"
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/pageza/allerfree/backend/config"
	"github.com/pageza/allerfree/backend/internal/types"
)

// Connections the login redirect accepts
const (
	ConnectionGoogle   = "google-oauth2"
	ConnectionFacebook = "facebook"
)

const jwksCacheTTL = 5 * time.Minute

// AuthService validates identity provider tokens and builds the redirect
// based sign-in and sign-out URLs
type AuthService struct {
	cfg       config.AuthConfig
	validator *validator.Validator
	oauth     *oauth2.Config
	logger    *zap.Logger
}

// Ensure AuthService implements IAuthService
var _ IAuthService = (*AuthService)(nil)

// AuthOption configures an AuthService
type AuthOption func(*AuthService)

// WithTokenURL points the code exchange at a different token endpoint
func WithTokenURL(tokenURL string) AuthOption {
	return func(s *AuthService) { s.oauth.Endpoint.TokenURL = tokenURL }
}

// NewAuthService creates an AuthService. With a signing secret configured
// tokens are HS256, otherwise RS256 keys come from the tenant's JWKS.
func NewAuthService(cfg config.AuthConfig, logger *zap.Logger, opts ...AuthOption) (*AuthService, error) {
	issuer, err := url.Parse(cfg.IssuerURL())
	if err != nil {
		return nil, fmt.Errorf("failed to parse issuer URL: %w", err)
	}

	keyFunc := jwks.NewCachingProvider(issuer, jwksCacheTTL).KeyFunc
	alg := validator.RS256
	if cfg.SigningSecret != "" {
		secret := []byte(cfg.SigningSecret)
		keyFunc = func(context.Context) (interface{}, error) { return secret, nil }
		alg = validator.HS256
	}

	// ID tokens carry the client id as audience, access tokens the API audience
	audience := []string{cfg.Audience}
	if cfg.ClientID != "" && cfg.ClientID != cfg.Audience {
		audience = append(audience, cfg.ClientID)
	}

	v, err := validator.New(
		keyFunc,
		alg,
		issuer.String(),
		audience,
		validator.WithCustomClaims(func() validator.CustomClaims {
			return &types.IdentityClaims{}
		}),
		validator.WithAllowedClockSkew(time.Minute),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to set up token validator: %w", err)
	}

	s := &AuthService{
		cfg:       cfg,
		validator: v,
		logger:    logger,
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.CallbackURL,
			Scopes:       []string{"openid", "profile", "email"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  issuer.JoinPath("authorize").String(),
				TokenURL: issuer.JoinPath("oauth", "token").String(),
			},
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// ValidateToken checks a bearer token and returns the identity it carries
func (s *AuthService) ValidateToken(ctx context.Context, token string) (*types.Identity, error) {
	raw, err := s.validator.ValidateToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := raw.(*validator.ValidatedClaims)
	if !ok || claims.RegisteredClaims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	identity := &types.Identity{Subject: claims.RegisteredClaims.Subject}
	if custom, ok := claims.CustomClaims.(*types.IdentityClaims); ok && custom != nil {
		identity.Email = custom.Email
		identity.Name = custom.Name
		if identity.Name == "" {
			identity.Name = custom.Nickname
		}
		identity.Picture = custom.Picture
		identity.EmailVerified = custom.EmailVerified
	}
	return identity, nil
}

// LoginURL builds the provider redirect for the chosen social connection
func (s *AuthService) LoginURL(connection, state string) (string, error) {
	switch connection {
	case ConnectionGoogle, ConnectionFacebook:
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownConnection, connection)
	}

	opts := []oauth2.AuthCodeOption{oauth2.SetAuthURLParam("connection", connection)}
	if s.cfg.Audience != "" {
		opts = append(opts, oauth2.SetAuthURLParam("audience", s.cfg.Audience))
	}
	return s.oauth.AuthCodeURL(state, opts...), nil
}

// LogoutURL ends the provider session and returns the browser to the app
func (s *AuthService) LogoutURL() string {
	u, _ := url.Parse(s.cfg.IssuerURL())
	u = u.JoinPath("v2", "logout")
	q := url.Values{}
	q.Set("client_id", s.cfg.ClientID)
	q.Set("returnTo", s.cfg.LogoutReturnURL)
	u.RawQuery = q.Encode()
	return u.String()
}

// Exchange trades an authorization code for tokens and validates the ID token
func (s *AuthService) Exchange(ctx context.Context, code string) (*types.Identity, error) {
	if s.cfg.ClientSecret == "" {
		return nil, ErrExchangeDisabled
	}

	tok, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		s.logger.Warn("authorization code exchange failed", zap.Error(err))
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	idToken, ok := tok.Extra("id_token").(string)
	if !ok || idToken == "" {
		return nil, fmt.Errorf("failed to exchange authorization code: %w: no id_token in response", ErrInvalidToken)
	}

	return s.ValidateToken(ctx, idToken)
}
