package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/allerfree/backend/internal/models"
	"github.com/pageza/allerfree/backend/internal/types"
)

// DefaultListLimit applies to popular and recent listings when no limit is given
const DefaultListLimit = 10

// RecipeService handles recipe operations
type RecipeService struct {
	db     *gorm.DB
	logger *zap.Logger
	now    func() time.Time
}

// Ensure RecipeService implements IRecipeService
var _ IRecipeService = (*RecipeService)(nil)

// RecipeOption configures a RecipeService
type RecipeOption func(*RecipeService)

// WithClock replaces the clock used to stamp updates
func WithClock(now func() time.Time) RecipeOption {
	return func(s *RecipeService) { s.now = now }
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB, logger *zap.Logger, opts ...RecipeOption) *RecipeService {
	s := &RecipeService{
		db:     db,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// published is the base query for every public read
func (s *RecipeService) published(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Model(&models.Recipe{}).
		Preload("Author").
		Where("is_published = ?", true)
}

func (s *RecipeService) find(op string, q *gorm.DB) ([]*types.Recipe, error) {
	var rows []models.Recipe
	if err := q.Find(&rows).Error; err != nil {
		return nil, s.fail(op, err)
	}
	return toRecipes(rows), nil
}

// fail logs a backend failure once and wraps it with the operation name
func (s *RecipeService) fail(op string, err error) error {
	s.logger.Error("recipe operation failed", zap.String("op", op), zap.Error(err))
	return fmt.Errorf("failed to %s: %w", op, err)
}

// ListRecipes returns every published recipe, newest first
func (s *RecipeService) ListRecipes(ctx context.Context) ([]*types.Recipe, error) {
	return s.find("fetch recipes", s.published(ctx).Order("created_at DESC"))
}

// GetRecipe returns a published recipe, or nil when there is no such recipe
func (s *RecipeService) GetRecipe(ctx context.Context, id string) (*types.Recipe, error) {
	rid, err := uuid.Parse(id)
	if err != nil {
		return nil, nil
	}

	var row models.Recipe
	err = s.published(ctx).Where("id = ?", rid).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, s.fail("fetch recipe", err)
	}
	return toRecipe(&row), nil
}

// SearchRecipes matches the query against title and description, case-insensitively
func (s *RecipeService) SearchRecipes(ctx context.Context, query string) ([]*types.Recipe, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.ListRecipes(ctx)
	}

	like := "%" + strings.ToLower(query) + "%"
	q := s.published(ctx).
		Where("LOWER(title) LIKE ? OR LOWER(COALESCE(description, '')) LIKE ?", like, like).
		Order("created_at DESC")
	return s.find("search recipes", q)
}

// ListByCuisine returns the published recipes of one cuisine, newest first
func (s *RecipeService) ListByCuisine(ctx context.Context, cuisine types.Cuisine) ([]*types.Recipe, error) {
	q := s.published(ctx).Where("cuisine = ?", string(cuisine)).Order("created_at DESC")
	return s.find("fetch recipes by cuisine", q)
}

// PopularRecipes orders by rating, then review count. Missing aggregates count as zero.
func (s *RecipeService) PopularRecipes(ctx context.Context, limit int) ([]*types.Recipe, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	q := s.published(ctx).
		Order("COALESCE(rating, 0) DESC").
		Order("COALESCE(review_count, 0) DESC").
		Order("created_at DESC").
		Limit(limit)
	return s.find("fetch popular recipes", q)
}

// RecentRecipes returns the newest published recipes
func (s *RecipeService) RecentRecipes(ctx context.Context, limit int) ([]*types.Recipe, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	return s.find("fetch recent recipes", s.published(ctx).Order("created_at DESC").Limit(limit))
}

// CreateRecipe publishes a new recipe owned by authorID. imageURL, when set,
// takes precedence over the form's own image field.
func (s *RecipeService) CreateRecipe(ctx context.Context, form *types.RecipeFormData, authorID, imageURL string) (*types.Recipe, error) {
	if authorID == "" {
		return nil, fmt.Errorf("failed to create recipe: %w", ErrUnauthenticated)
	}
	if form == nil {
		return nil, fmt.Errorf("failed to create recipe: %w", invalid(ErrInvalidRecipe, "form is required"))
	}

	normalized := *form
	if normalized.Cuisine == "" {
		normalized.Cuisine = types.CuisineOther
	}
	if normalized.Difficulty == "" {
		normalized.Difficulty = types.DifficultyEasy
	}
	if issues := validateForm(&normalized); len(issues) > 0 {
		return nil, fmt.Errorf("failed to create recipe: %w", invalid(ErrInvalidRecipe, issues...))
	}

	image := imageURL
	if image == "" {
		image = normalized.Image
	}

	row := fromForm(&normalized, authorID, image)
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, s.fail("create recipe", err)
	}

	created, err := s.load(ctx, row.ID)
	if err != nil {
		return nil, s.fail("create recipe", err)
	}

	s.logger.Info("recipe created", zap.String("recipe_id", created.ID), zap.String("author_id", authorID))
	return created, nil
}

// UpdateRecipe applies the fields present in update after confirming the caller
// owns the recipe. The ownership read and the write are separate statements.
func (s *RecipeService) UpdateRecipe(ctx context.Context, callerID, id string, update *types.RecipeUpdate) (*types.Recipe, error) {
	rid, err := s.authorize(ctx, "update", callerID, id)
	if err != nil {
		return nil, err
	}

	changes, issues := updateColumns(update)
	if len(issues) > 0 {
		return nil, fmt.Errorf("failed to update recipe: %w", invalid(ErrInvalidRecipe, issues...))
	}
	changes["updated_at"] = s.now()

	if err := s.db.WithContext(ctx).Model(&models.Recipe{}).Where("id = ?", rid).Updates(changes).Error; err != nil {
		return nil, s.fail("update recipe", err)
	}

	updated, err := s.load(ctx, rid)
	if err != nil {
		return nil, s.fail("update recipe", err)
	}
	return updated, nil
}

// DeleteRecipe removes a recipe owned by the caller
func (s *RecipeService) DeleteRecipe(ctx context.Context, callerID, id string) error {
	rid, err := s.authorize(ctx, "delete", callerID, id)
	if err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Delete(&models.Recipe{}, "id = ?", rid).Error; err != nil {
		return s.fail("delete recipe", err)
	}

	s.logger.Info("recipe deleted", zap.String("recipe_id", rid.String()), zap.String("author_id", callerID))
	return nil
}

// authorize re-reads the recipe's author and compares it with the caller
func (s *RecipeService) authorize(ctx context.Context, verb, callerID, id string) (uuid.UUID, error) {
	if callerID == "" {
		return uuid.Nil, fmt.Errorf("failed to %s recipe: %w", verb, ErrUnauthenticated)
	}

	rid, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to %s recipe: %w", verb, ErrRecipeNotFound)
	}

	var owner struct{ AuthorID string }
	err = s.db.WithContext(ctx).Model(&models.Recipe{}).Select("author_id").Where("id = ?", rid).Take(&owner).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return uuid.Nil, fmt.Errorf("failed to %s recipe: %w", verb, ErrRecipeNotFound)
	}
	if err != nil {
		return uuid.Nil, s.fail(verb+" recipe", err)
	}

	if owner.AuthorID != callerID {
		s.logger.Warn("recipe ownership check failed",
			zap.String("op", verb),
			zap.String("recipe_id", rid.String()),
			zap.String("caller_id", callerID))
		return uuid.Nil, fmt.Errorf("failed to %s recipe: %w", verb, ErrNotOwner)
	}
	return rid, nil
}

// load reads a recipe regardless of its published flag
func (s *RecipeService) load(ctx context.Context, id uuid.UUID) (*types.Recipe, error) {
	var row models.Recipe
	if err := s.db.WithContext(ctx).Preload("Author").Where("id = ?", id).Take(&row).Error; err != nil {
		return nil, err
	}
	return toRecipe(&row), nil
}

func validateForm(form *types.RecipeFormData) []string {
	var issues []string
	if strings.TrimSpace(form.Title) == "" {
		issues = append(issues, "title is required")
	}
	if !form.Cuisine.Valid() {
		issues = append(issues, fmt.Sprintf("unknown cuisine %q", form.Cuisine))
	}
	if !form.Difficulty.Valid() {
		issues = append(issues, fmt.Sprintf("unknown difficulty %q", form.Difficulty))
	}
	if form.Servings < 0 {
		issues = append(issues, "servings cannot be negative")
	}
	return issues
}

// updateColumns converts the present fields of update into a column map
func updateColumns(update *types.RecipeUpdate) (map[string]interface{}, []string) {
	changes := map[string]interface{}{}
	if update == nil {
		return changes, nil
	}

	var issues []string
	if update.Title != nil {
		if strings.TrimSpace(*update.Title) == "" {
			issues = append(issues, "title cannot be empty")
		}
		changes["title"] = *update.Title
	}
	if update.Description != nil {
		changes["description"] = *update.Description
	}
	if update.Image != nil {
		changes["image"] = *update.Image
	}
	if update.CookTime != nil {
		changes["cook_time"] = *update.CookTime
	}
	if update.PrepTime != nil {
		changes["prep_time"] = *update.PrepTime
	}
	if update.Servings != nil {
		if *update.Servings < 0 {
			issues = append(issues, "servings cannot be negative")
		}
		changes["servings"] = *update.Servings
	}
	if update.Difficulty != nil {
		if !update.Difficulty.Valid() {
			issues = append(issues, fmt.Sprintf("unknown difficulty %q", *update.Difficulty))
		}
		changes["difficulty"] = string(*update.Difficulty)
	}
	if update.Cuisine != nil {
		if !update.Cuisine.Valid() {
			issues = append(issues, fmt.Sprintf("unknown cuisine %q", *update.Cuisine))
		}
		changes["cuisine"] = string(*update.Cuisine)
	}
	if update.Calories != nil {
		changes["calories"] = *update.Calories
	} else if update.NutritionFacts != nil && update.NutritionFacts.Calories != 0 {
		changes["calories"] = update.NutritionFacts.Calories
	}
	if update.Tags != nil {
		changes["tags"] = models.StringList(update.Tags)
	}
	if update.Ingredients != nil {
		changes["ingredients"] = models.IngredientList(update.Ingredients)
	}
	if update.Instructions != nil {
		changes["instructions"] = models.StringList(update.Instructions)
	}
	if update.NutritionFacts != nil {
		changes["nutrition_facts"] = models.NullNutrition{NutritionFacts: *update.NutritionFacts, Valid: true}
	}
	if update.AllergenInfo != nil {
		changes["allergen_info"] = models.NullAllergens{AllergenInfo: *update.AllergenInfo, Valid: true}
	}
	if update.IsPublished != nil {
		changes["is_published"] = *update.IsPublished
	}
	return changes, issues
}
