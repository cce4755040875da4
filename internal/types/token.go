package types

import (
	"context"
)

// IdentityClaims are the profile claims the identity provider adds to its tokens
type IdentityClaims struct {
	Email         string `json:"email"`
	Name          string `json:"name"`
	Nickname      string `json:"nickname"`
	Picture       string `json:"picture"`
	EmailVerified bool   `json:"email_verified"`
}

// Validate satisfies validator.CustomClaims. Access tokens may omit every
// profile claim, so there is nothing to reject here.
func (c *IdentityClaims) Validate(ctx context.Context) error {
	return nil
}

// Identity is a validated identity provider session
type Identity struct {
	Subject       string `json:"sub"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
	EmailVerified bool   `json:"email_verified"`

	// UserID is the local profile id, which differs from Subject when the
	// profile was first created through another connection
	UserID string `json:"user_id,omitempty"`
}

// CallerID is the id rows are owned by
func (i *Identity) CallerID() string {
	if i.UserID != "" {
		return i.UserID
	}
	return i.Subject
}

// DisplayName falls back to the email when the provider sent no name
func (i *Identity) DisplayName() string {
	if i.Name != "" {
		return i.Name
	}
	return i.Email
}
