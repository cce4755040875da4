package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pageza/allerfree/backend/internal/mocks"
	"github.com/pageza/allerfree/backend/internal/service"
	"github.com/pageza/allerfree/backend/internal/testhelpers"
	"github.com/pageza/allerfree/backend/internal/types"
)

func TestHomeFeed(t *testing.T) {
	recipes := &mocks.MockRecipeService{}
	popular := []*types.Recipe{{ID: "p1"}, {ID: "p2"}}
	recent := []*types.Recipe{{ID: "r1"}}
	recipes.On("PopularRecipes", mock.Anything, service.HomeFeedSize).Return(popular, nil)
	recipes.On("RecentRecipes", mock.Anything, service.HomeFeedSize).Return(recent, nil)

	feed, err := service.NewHomeService(recipes, zap.NewNop()).Feed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, popular, feed.Popular)
	assert.Equal(t, recent, feed.Recent)
	recipes.AssertExpectations(t)
}

func TestHomeFeedFailsWhenEitherRowFails(t *testing.T) {
	recipes := &mocks.MockRecipeService{}
	recipes.On("PopularRecipes", mock.Anything, service.HomeFeedSize).Return([]*types.Recipe{}, nil)
	recipes.On("RecentRecipes", mock.Anything, service.HomeFeedSize).Return(nil, errors.New("timeout"))

	feed, err := service.NewHomeService(recipes, zap.NewNop()).Feed(context.Background())
	assert.Nil(t, feed)
	assert.ErrorContains(t, err, "timeout")
}

func TestHomeFeedAgainstDatabase(t *testing.T) {
	svc, db := setupRecipeService(t)
	for _, title := range []string{"A", "B", "C", "D"} {
		testhelpers.CreateRecipe(t, db, ownerID, title)
	}

	feed, err := service.NewHomeService(svc, zap.NewNop()).Feed(context.Background())
	require.NoError(t, err)
	assert.Len(t, feed.Popular, service.HomeFeedSize)
	assert.Len(t, feed.Recent, service.HomeFeedSize)
}
