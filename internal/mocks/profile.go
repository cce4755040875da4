package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/allerfree/backend/internal/types"
)

// MockProfileService is a mock implementation of the ProfileService interface
type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) SyncIdentity(ctx context.Context, identity *types.Identity) (*types.AuthUser, error) {
	args := m.Called(ctx, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.AuthUser), args.Error(1)
}

func (m *MockProfileService) ResolveUserID(ctx context.Context, identity *types.Identity) (string, error) {
	args := m.Called(ctx, identity)
	return args.String(0), args.Error(1)
}

func (m *MockProfileService) GetProfile(ctx context.Context, userID string) (*types.AuthUser, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.AuthUser), args.Error(1)
}

func (m *MockProfileService) UpdateProfile(ctx context.Context, userID string, req *types.UpdateProfileRequest) (*types.AuthUser, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.AuthUser), args.Error(1)
}
