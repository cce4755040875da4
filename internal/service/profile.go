package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/allerfree/backend/internal/database"
	"github.com/pageza/allerfree/backend/internal/models"
	"github.com/pageza/allerfree/backend/internal/types"
)

// ProfileService keeps local user rows in step with the identity provider
type ProfileService struct {
	db     *gorm.DB
	logger *zap.Logger
}

// Ensure ProfileService implements IProfileService
var _ IProfileService = (*ProfileService)(nil)

// NewProfileService creates a new ProfileService instance
func NewProfileService(db *gorm.DB, logger *zap.Logger) *ProfileService {
	return &ProfileService{
		db:     db,
		logger: logger,
	}
}

// SyncIdentity runs on every sign-in. An existing profile (matched by email)
// gets its name and avatar refreshed, otherwise a profile keyed by the
// provider subject is created. Two concurrent first sign-ins can race on the
// insert; the loser gets a wrapped unique violation.
func (s *ProfileService) SyncIdentity(ctx context.Context, identity *types.Identity) (*types.AuthUser, error) {
	if identity == nil || identity.Subject == "" {
		return nil, fmt.Errorf("failed to sync user profile: %w", ErrUnauthenticated)
	}
	if identity.Email == "" {
		return nil, fmt.Errorf("failed to sync user profile: %w", ErrMissingEmail)
	}

	db := s.db.WithContext(ctx)

	var user models.User
	err := db.Where("email = ?", identity.Email).Take(&user).Error
	switch {
	case err == nil:
		updates := map[string]interface{}{
			"name":       identity.DisplayName(),
			"avatar_url": nullable(identity.Picture),
			"updated_at": time.Now(),
		}
		if err := db.Model(&user).Updates(updates).Error; err != nil {
			return nil, s.fail("update user profile", err)
		}
		if err := db.Where("id = ?", user.ID).Take(&user).Error; err != nil {
			return nil, s.fail("update user profile", err)
		}
		s.logger.Debug("user profile refreshed", zap.String("user_id", user.ID))

	case errors.Is(err, gorm.ErrRecordNotFound):
		verified := identity.EmailVerified
		user = models.User{
			ID:        identity.Subject,
			Email:     identity.Email,
			Name:      identity.DisplayName(),
			AvatarURL: nullable(identity.Picture),
			Verified:  &verified,
		}
		if err := db.Create(&user).Error; err != nil {
			if database.IsUniqueViolation(err) {
				s.logger.Warn("concurrent profile creation", zap.String("user_id", identity.Subject))
			}
			return nil, s.fail("create user profile", err)
		}
		s.logger.Info("user profile created", zap.String("user_id", user.ID))

	default:
		return nil, s.fail("fetch user profile", err)
	}

	return toAuthUser(&user), nil
}

// ResolveUserID maps an identity onto the id of the profile it signs in as.
// Before the first sync there is no profile and the subject is used.
func (s *ProfileService) ResolveUserID(ctx context.Context, identity *types.Identity) (string, error) {
	if identity == nil || identity.Subject == "" {
		return "", fmt.Errorf("failed to resolve user: %w", ErrUnauthenticated)
	}
	if identity.Email == "" {
		return identity.Subject, nil
	}

	var user models.User
	err := s.db.WithContext(ctx).Select("id").Where("email = ?", identity.Email).Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return identity.Subject, nil
	}
	if err != nil {
		return "", s.fail("resolve user", err)
	}
	return user.ID, nil
}

// GetProfile returns the profile for userID, or nil when none exists
func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*types.AuthUser, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("id = ?", userID).Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, s.fail("fetch user profile", err)
	}
	return toAuthUser(&user), nil
}

// UpdateProfile changes the editable profile fields present in req
func (s *ProfileService) UpdateProfile(ctx context.Context, userID string, req *types.UpdateProfileRequest) (*types.AuthUser, error) {
	if userID == "" {
		return nil, fmt.Errorf("failed to update profile: %w", ErrUnauthenticated)
	}

	updates := map[string]interface{}{"updated_at": time.Now()}
	if req != nil {
		if req.Name != nil {
			updates["name"] = *req.Name
		}
		if req.Avatar != nil {
			updates["avatar_url"] = nullable(*req.Avatar)
		}
		if req.Bio != nil {
			updates["bio"] = nullable(*req.Bio)
		}
		if req.Location != nil {
			updates["location"] = nullable(*req.Location)
		}
		if req.Website != nil {
			updates["website"] = nullable(*req.Website)
		}
	}

	res := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Updates(updates)
	if res.Error != nil {
		return nil, s.fail("update profile", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("failed to update profile: %w", ErrUserNotFound)
	}

	return s.GetProfile(ctx, userID)
}

func (s *ProfileService) fail(op string, err error) error {
	s.logger.Error("profile operation failed", zap.String("op", op), zap.Error(err))
	return fmt.Errorf("failed to %s: %w", op, err)
}

// nullable stores empty strings as NULL
func nullable(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
