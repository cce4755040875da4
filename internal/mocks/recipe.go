package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/allerfree/backend/internal/types"
)

// MockRecipeService is a mock implementation of the RecipeService interface
type MockRecipeService struct {
	mock.Mock
}

func recipes(args mock.Arguments) ([]*types.Recipe, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*types.Recipe), args.Error(1)
}

func recipe(args mock.Arguments) (*types.Recipe, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Recipe), args.Error(1)
}

func (m *MockRecipeService) ListRecipes(ctx context.Context) ([]*types.Recipe, error) {
	return recipes(m.Called(ctx))
}

func (m *MockRecipeService) GetRecipe(ctx context.Context, id string) (*types.Recipe, error) {
	return recipe(m.Called(ctx, id))
}

func (m *MockRecipeService) SearchRecipes(ctx context.Context, query string) ([]*types.Recipe, error) {
	return recipes(m.Called(ctx, query))
}

func (m *MockRecipeService) ListByCuisine(ctx context.Context, cuisine types.Cuisine) ([]*types.Recipe, error) {
	return recipes(m.Called(ctx, cuisine))
}

func (m *MockRecipeService) PopularRecipes(ctx context.Context, limit int) ([]*types.Recipe, error) {
	return recipes(m.Called(ctx, limit))
}

func (m *MockRecipeService) RecentRecipes(ctx context.Context, limit int) ([]*types.Recipe, error) {
	return recipes(m.Called(ctx, limit))
}

func (m *MockRecipeService) CreateRecipe(ctx context.Context, form *types.RecipeFormData, authorID, imageURL string) (*types.Recipe, error) {
	return recipe(m.Called(ctx, form, authorID, imageURL))
}

func (m *MockRecipeService) UpdateRecipe(ctx context.Context, callerID, id string, update *types.RecipeUpdate) (*types.Recipe, error) {
	return recipe(m.Called(ctx, callerID, id, update))
}

func (m *MockRecipeService) DeleteRecipe(ctx context.Context, callerID, id string) error {
	args := m.Called(ctx, callerID, id)
	return args.Error(0)
}
