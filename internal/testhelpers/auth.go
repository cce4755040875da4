package testhelpers

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pageza/allerfree/backend/config"
)

const (
	TestDomain        = "allerfree-test.eu.auth0.com"
	TestAudience      = "https://api.allerfree.test"
	TestClientID      = "test-client-id"
	TestSigningSecret = "test-signing-secret-with-enough-bytes"
)

// AuthConfig returns an identity provider configuration that validates
// tokens minted by SignToken
func AuthConfig() config.AuthConfig {
	return config.AuthConfig{
		Domain:          TestDomain,
		Audience:        TestAudience,
		ClientID:        TestClientID,
		ClientSecret:    "test-client-secret",
		CallbackURL:     "http://localhost:8080/api/v1/auth/callback",
		LogoutReturnURL: "http://localhost:5173",
		SigningSecret:   TestSigningSecret,
	}
}

// TokenClaims are the claims SignToken writes
type TokenClaims struct {
	jwt.RegisteredClaims
	Email         string `json:"email,omitempty"`
	Name          string `json:"name,omitempty"`
	Picture       string `json:"picture,omitempty"`
	EmailVerified bool   `json:"email_verified"`
}

// SignToken mints an HS256 access token for subject
func SignToken(t *testing.T, subject, email, name string) string {
	t.Helper()
	return SignClaims(t, TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    "https://" + TestDomain + "/",
			Audience:  jwt.ClaimStrings{TestAudience},
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Email:         email,
		Name:          name,
		EmailVerified: true,
	})
}

// SignClaims signs arbitrary claims with the test secret
func SignClaims(t *testing.T, claims TokenClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(TestSigningSecret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}
