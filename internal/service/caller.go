package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/pageza/allerfree/backend/internal/types"
)

// CallerResolver validates tokens and attaches the caller's local profile id.
// Someone who signs in through a second connection with the same email keeps
// the profile created by the first, so the token subject alone does not
// identify the rows they own.
type CallerResolver struct {
	IAuthService
	profiles IProfileService
	logger   *zap.Logger
}

// Ensure CallerResolver implements IAuthService
var _ IAuthService = (*CallerResolver)(nil)

// NewCallerResolver wraps auth so validated identities carry a profile id
func NewCallerResolver(auth IAuthService, profiles IProfileService, logger *zap.Logger) *CallerResolver {
	return &CallerResolver{
		IAuthService: auth,
		profiles:     profiles,
		logger:       logger,
	}
}

// ValidateToken validates token and resolves the profile it belongs to
func (r *CallerResolver) ValidateToken(ctx context.Context, token string) (*types.Identity, error) {
	identity, err := r.IAuthService.ValidateToken(ctx, token)
	if err != nil {
		return nil, err
	}

	userID, err := r.profiles.ResolveUserID(ctx, identity)
	if err != nil {
		r.logger.Error("caller profile lookup failed", zap.String("subject", identity.Subject), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrProfileLookup, err)
	}
	if userID != identity.Subject {
		r.logger.Debug("caller mapped to existing profile",
			zap.String("subject", identity.Subject),
			zap.String("user_id", userID))
	}

	identity.UserID = userID
	return identity, nil
}
