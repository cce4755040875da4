package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/allerfree/backend/internal/types"
)

// MockStorageService is a mock implementation of the StorageService interface
type MockStorageService struct {
	mock.Mock
}

func (m *MockStorageService) UploadRecipeImage(ctx context.Context, ownerID string, upload *types.Upload) (string, error) {
	args := m.Called(ctx, ownerID, upload)
	return args.String(0), args.Error(1)
}

func (m *MockStorageService) UploadUserAvatar(ctx context.Context, userID string, upload *types.Upload) (string, error) {
	args := m.Called(ctx, userID, upload)
	return args.String(0), args.Error(1)
}

func (m *MockStorageService) DeleteUserAvatar(ctx context.Context, avatarURL string) error {
	args := m.Called(ctx, avatarURL)
	return args.Error(0)
}

func (m *MockStorageService) PublicURL(bucket, key string) string {
	args := m.Called(bucket, key)
	return args.String(0)
}
