package service

import (
	"errors"
)

var (
	ErrUnauthenticated   = errors.New("user must be authenticated")
	ErrNotOwner          = errors.New("you can only modify your own recipes")
	ErrRecipeNotFound    = errors.New("recipe not found")
	ErrInvalidRecipe     = errors.New("invalid recipe")
	ErrUserNotFound      = errors.New("user not found")
	ErrMissingEmail      = errors.New("identity has no email")
	ErrInvalidToken      = errors.New("invalid token")
	ErrUnknownConnection = errors.New("unknown identity connection")
	ErrExchangeDisabled  = errors.New("authorization code exchange is not configured")
	ErrInvalidUpload     = errors.New("invalid upload")
	ErrDraftNotFound     = errors.New("draft not found")
	ErrDraftForbidden    = errors.New("draft belongs to another user")
	ErrIncompleteDraft   = errors.New("draft is incomplete")
	ErrDraftSubmitting   = errors.New("draft is already being submitted")
	ErrDraftConflict     = errors.New("draft was changed concurrently, try again")
	ErrProfileLookup     = errors.New("failed to look up caller profile")
)

// ValidationError carries the individual problems behind ErrInvalidRecipe,
// ErrInvalidUpload or ErrIncompleteDraft
type ValidationError struct {
	Kind   error
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return e.Kind.Error()
	}
	msg := e.Kind.Error() + ": " + e.Issues[0]
	for _, issue := range e.Issues[1:] {
		msg += "; " + issue
	}
	return msg
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}

func invalid(kind error, issues ...string) error {
	return &ValidationError{Kind: kind, Issues: issues}
}
