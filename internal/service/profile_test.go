package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/allerfree/backend/internal/models"
	"github.com/pageza/allerfree/backend/internal/service"
	"github.com/pageza/allerfree/backend/internal/testhelpers"
	"github.com/pageza/allerfree/backend/internal/types"
)

func setupProfileService(t *testing.T) (*service.ProfileService, *gorm.DB) {
	t.Helper()
	db := testhelpers.SetupSQLite(t)
	return service.NewProfileService(db, zap.NewNop()), db
}

func TestSyncIdentityCreatesProfile(t *testing.T) {
	svc, db := setupProfileService(t)

	user, err := svc.SyncIdentity(context.Background(), &types.Identity{
		Subject:       "google-oauth2|123",
		Email:         "casey@example.com",
		Name:          "Casey Cook",
		Picture:       "https://lh3.example.com/casey.png",
		EmailVerified: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "google-oauth2|123", user.ID)
	assert.Equal(t, "Casey Cook", user.Name)
	assert.Equal(t, "https://lh3.example.com/casey.png", user.Avatar)
	assert.True(t, user.Verified)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSyncIdentityUpdatesExistingByEmail(t *testing.T) {
	svc, db := setupProfileService(t)
	testhelpers.CreateUser(t, db, "facebook|9", "casey@example.com", "Old Name")

	user, err := svc.SyncIdentity(context.Background(), &types.Identity{
		Subject: "google-oauth2|123",
		Email:   "casey@example.com",
		Picture: "https://lh3.example.com/new.png",
	})
	require.NoError(t, err)

	// matched by email, so the original id is kept
	assert.Equal(t, "facebook|9", user.ID)
	// no name from the provider falls back to the email
	assert.Equal(t, "casey@example.com", user.Name)
	assert.Equal(t, "https://lh3.example.com/new.png", user.Avatar)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSyncIdentityRequiresEmail(t *testing.T) {
	svc, _ := setupProfileService(t)

	_, err := svc.SyncIdentity(context.Background(), &types.Identity{Subject: "auth0|x"})
	assert.ErrorIs(t, err, service.ErrMissingEmail)

	_, err = svc.SyncIdentity(context.Background(), nil)
	assert.ErrorIs(t, err, service.ErrUnauthenticated)
}

func TestSyncIdentityDuplicateSubject(t *testing.T) {
	svc, db := setupProfileService(t)
	testhelpers.CreateUser(t, db, "auth0|same", "first@example.com", "First")

	_, err := svc.SyncIdentity(context.Background(), &types.Identity{Subject: "auth0|same", Email: "second@example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create user profile")
}

func TestGetProfile(t *testing.T) {
	svc, db := setupProfileService(t)
	testhelpers.CreateUser(t, db, "auth0|1", "one@example.com", "One")

	user, err := svc.GetProfile(context.Background(), "auth0|1")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "one@example.com", user.Email)

	missing, err := svc.GetProfile(context.Background(), "auth0|nobody")
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUpdateProfile(t *testing.T) {
	svc, db := setupProfileService(t)
	testhelpers.CreateUser(t, db, "auth0|1", "one@example.com", "One")

	bio := "Gluten-free baker"
	site := "https://one.example.com"
	user, err := svc.UpdateProfile(context.Background(), "auth0|1", &types.UpdateProfileRequest{Bio: &bio, Website: &site})
	require.NoError(t, err)
	assert.Equal(t, "One", user.Name)
	assert.Equal(t, bio, user.Bio)
	assert.Equal(t, site, user.Website)

	empty := ""
	user, err = svc.UpdateProfile(context.Background(), "auth0|1", &types.UpdateProfileRequest{Bio: &empty})
	require.NoError(t, err)
	assert.Equal(t, "", user.Bio)

	_, err = svc.UpdateProfile(context.Background(), "auth0|nobody", &types.UpdateProfileRequest{Bio: &bio})
	assert.ErrorIs(t, err, service.ErrUserNotFound)
}
