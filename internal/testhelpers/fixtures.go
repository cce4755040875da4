package testhelpers

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/allerfree/backend/internal/models"
	"github.com/pageza/allerfree/backend/internal/types"
)

// CreateUser inserts a profile row
func CreateUser(t *testing.T, db *gorm.DB, id, email, name string) *models.User {
	t.Helper()
	verified := true
	user := &models.User{ID: id, Email: email, Name: name, Verified: &verified}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

// RecipeOption adjusts a fixture recipe before it is inserted
type RecipeOption func(*models.Recipe)

// WithCuisine sets the fixture's cuisine
func WithCuisine(c types.Cuisine) RecipeOption {
	return func(r *models.Recipe) { r.Cuisine = string(c) }
}

// WithRating sets the aggregated rating and review count
func WithRating(rating float64, reviews int) RecipeOption {
	return func(r *models.Recipe) {
		r.Rating = &rating
		r.ReviewCount = &reviews
	}
}

// WithCreatedAt backdates the fixture
func WithCreatedAt(at time.Time) RecipeOption {
	return func(r *models.Recipe) {
		r.CreatedAt = at
		r.UpdatedAt = at
	}
}

// Unpublished hides the fixture from public listings
func Unpublished() RecipeOption {
	return func(r *models.Recipe) {
		published := false
		r.IsPublished = &published
	}
}

// WithDescription sets the description column
func WithDescription(d string) RecipeOption {
	return func(r *models.Recipe) { r.Description = &d }
}

// CreateRecipe inserts a published recipe owned by authorID
func CreateRecipe(t *testing.T, db *gorm.DB, authorID, title string, opts ...RecipeOption) *models.Recipe {
	t.Helper()
	published := true
	recipe := &models.Recipe{
		ID:           uuid.New(),
		Title:        title,
		Servings:     2,
		Difficulty:   string(types.DifficultyEasy),
		Cuisine:      string(types.CuisineOther),
		Ingredients:  models.IngredientList{{Item: "Water", Amount: "1 cup"}},
		Instructions: models.StringList{"Boil it."},
		Tags:         models.StringList{},
		AuthorID:     authorID,
		IsPublished:  &published,
	}
	for _, opt := range opts {
		opt(recipe)
	}
	if err := db.Create(recipe).Error; err != nil {
		t.Fatalf("failed to create recipe: %v", err)
	}
	return recipe
}
