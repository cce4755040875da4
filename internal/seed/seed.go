// Package seed loads demo users and recipes from a YAML fixture.
package seed

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/pageza/allerfree/backend/internal/models"
	"github.com/pageza/allerfree/backend/internal/service"
	"github.com/pageza/allerfree/backend/internal/types"
)

// User is a profile row to create
type User struct {
	ID       string `yaml:"id"`
	Email    string `yaml:"email"`
	Name     string `yaml:"name"`
	Avatar   string `yaml:"avatar"`
	Verified bool   `yaml:"verified"`
}

// Recipe is a recipe to create for Author
type Recipe struct {
	Author               string `yaml:"author"`
	types.RecipeFormData `yaml:",inline"`
}

// Fixture is the layout of a seed file
type Fixture struct {
	Users   []User   `yaml:"users"`
	Recipes []Recipe `yaml:"recipes"`
}

// Result counts what Apply inserted
type Result struct {
	Users   int
	Recipes int
	Skipped int
}

// Load reads a fixture from path
func Load(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	return &f, nil
}

// Apply inserts the fixture's users and recipes. It can be re-run: existing
// users are left alone and a recipe whose author already has one with the
// same title is skipped.
func Apply(ctx context.Context, db *gorm.DB, recipes service.IRecipeService, f *Fixture, log *zap.Logger) (Result, error) {
	var res Result
	db = db.WithContext(ctx)

	for _, u := range f.Users {
		if u.ID == "" || u.Email == "" {
			return res, fmt.Errorf("seed user needs an id and email: %+v", u)
		}
		verified := u.Verified
		row := models.User{ID: u.ID, Email: u.Email, Name: u.Name, Verified: &verified}
		if u.Avatar != "" {
			row.AvatarURL = &u.Avatar
		}

		var count int64
		if err := db.Model(&models.User{}).Where("id = ?", u.ID).Count(&count).Error; err != nil {
			return res, fmt.Errorf("failed to check user %s: %w", u.ID, err)
		}
		if count > 0 {
			continue
		}
		if err := db.Create(&row).Error; err != nil {
			return res, fmt.Errorf("failed to seed user %s: %w", u.ID, err)
		}
		res.Users++
	}

	for i := range f.Recipes {
		r := &f.Recipes[i]

		var existing models.Recipe
		err := db.Where("author_id = ? AND title = ?", r.Author, r.Title).Take(&existing).Error
		if err == nil {
			res.Skipped++
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return res, fmt.Errorf("failed to check recipe %q: %w", r.Title, err)
		}

		if _, err := recipes.CreateRecipe(ctx, &r.RecipeFormData, r.Author, r.Image); err != nil {
			return res, fmt.Errorf("failed to seed recipe %q: %w", r.Title, err)
		}
		res.Recipes++
		log.Debug("seeded recipe", zap.String("title", r.Title))
	}

	return res, nil
}
