package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pageza/allerfree/backend/internal/types"
)

// HomeFeedSize is how many recipes each landing page row shows
const HomeFeedSize = 3

// HomeService assembles the landing page
type HomeService struct {
	recipes IRecipeService
	logger  *zap.Logger
}

// Ensure HomeService implements IHomeService
var _ IHomeService = (*HomeService)(nil)

// NewHomeService creates a new HomeService instance
func NewHomeService(recipes IRecipeService, logger *zap.Logger) *HomeService {
	return &HomeService{recipes: recipes, logger: logger}
}

// Feed loads the popular and recent rows concurrently. Either failing fails
// the whole feed.
func (s *HomeService) Feed(ctx context.Context) (*types.HomeFeed, error) {
	feed := &types.HomeFeed{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		popular, err := s.recipes.PopularRecipes(gctx, HomeFeedSize)
		if err != nil {
			return err
		}
		feed.Popular = popular
		return nil
	})
	g.Go(func() error {
		recent, err := s.recipes.RecentRecipes(gctx, HomeFeedSize)
		if err != nil {
			return err
		}
		feed.Recent = recent
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.Error("failed to load home feed", zap.Error(err))
		return nil, fmt.Errorf("failed to load home feed: %w", err)
	}
	return feed, nil
}
