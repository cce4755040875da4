package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/allerfree/backend/internal/types"
)

// MockDraftService is a mock implementation of the DraftService interface
type MockDraftService struct {
	mock.Mock
}

func draft(args mock.Arguments) (*types.RecipeDraft, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.RecipeDraft), args.Error(1)
}

func (m *MockDraftService) CreateDraft(ctx context.Context, userID string) (*types.RecipeDraft, error) {
	return draft(m.Called(ctx, userID))
}

func (m *MockDraftService) GetDraft(ctx context.Context, userID, id string) (*types.RecipeDraft, error) {
	return draft(m.Called(ctx, userID, id))
}

func (m *MockDraftService) UpdateDraft(ctx context.Context, userID, id string, patch *types.DraftPatch) (*types.RecipeDraft, error) {
	return draft(m.Called(ctx, userID, id, patch))
}

func (m *MockDraftService) NextStep(ctx context.Context, userID, id string) (*types.RecipeDraft, error) {
	return draft(m.Called(ctx, userID, id))
}

func (m *MockDraftService) PrevStep(ctx context.Context, userID, id string) (*types.RecipeDraft, error) {
	return draft(m.Called(ctx, userID, id))
}

func (m *MockDraftService) ToggleTag(ctx context.Context, userID, id, tag string) (*types.RecipeDraft, error) {
	return draft(m.Called(ctx, userID, id, tag))
}

func (m *MockDraftService) DeleteDraft(ctx context.Context, userID, id string) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockDraftService) SubmitDraft(ctx context.Context, userID, id string, image *types.Upload) (*types.Recipe, error) {
	return recipe(m.Called(ctx, userID, id, image))
}

// MockHomeService is a mock implementation of the HomeService interface
type MockHomeService struct {
	mock.Mock
}

func (m *MockHomeService) Feed(ctx context.Context) (*types.HomeFeed, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.HomeFeed), args.Error(1)
}
