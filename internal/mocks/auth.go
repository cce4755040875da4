package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/allerfree/backend/internal/types"
)

// MockAuthService is a mock implementation of the AuthService interface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) ValidateToken(ctx context.Context, token string) (*types.Identity, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Identity), args.Error(1)
}

func (m *MockAuthService) LoginURL(connection, state string) (string, error) {
	args := m.Called(connection, state)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) LogoutURL() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockAuthService) Exchange(ctx context.Context, code string) (*types.Identity, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Identity), args.Error(1)
}
