package service

import (
	"github.com/pageza/allerfree/backend/internal/models"
	"github.com/pageza/allerfree/backend/internal/types"
)

const unknownAuthor = "Unknown"

// toRecipe is the only place a stored row becomes a client-facing recipe.
// Every optional column is defaulted here so nothing downstream sees a nil.
func toRecipe(row *models.Recipe) *types.Recipe {
	r := &types.Recipe{
		ID:           row.ID.String(),
		Title:        row.Title,
		Description:  deref(row.Description),
		Image:        deref(row.Image),
		CookTime:     row.CookTime,
		PrepTime:     row.PrepTime,
		Servings:     row.Servings,
		Difficulty:   types.Difficulty(row.Difficulty),
		Cuisine:      types.Cuisine(row.Cuisine),
		Calories:     row.Calories,
		Tags:         []string(row.Tags),
		Ingredients:  []types.Ingredient(row.Ingredients),
		Instructions: []string(row.Instructions),
		DateCreated:  row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}

	if row.Rating != nil {
		r.Rating = *row.Rating
	}
	if row.ReviewCount != nil {
		r.Reviews = *row.ReviewCount
	}
	if row.IsPublished != nil {
		r.IsPublished = *row.IsPublished
	}

	if r.Tags == nil {
		r.Tags = []string{}
	}
	if r.Ingredients == nil {
		r.Ingredients = []types.Ingredient{}
	}
	if r.Instructions == nil {
		r.Instructions = []string{}
	}

	if row.NutritionFacts.Valid {
		r.NutritionFacts = row.NutritionFacts.NutritionFacts
	} else {
		r.NutritionFacts = types.DefaultNutrition(row.Calories)
	}
	if row.AllergenInfo.Valid {
		r.AllergenInfo = row.AllergenInfo.AllergenInfo
	}

	r.Author = types.Author{ID: row.AuthorID, Name: unknownAuthor}
	if row.Author != nil {
		r.Author.Name = row.Author.Name
		r.Author.Avatar = deref(row.Author.AvatarURL)
		if row.Author.Verified != nil {
			r.Author.Verified = *row.Author.Verified
		}
	}

	return r
}

func toRecipes(rows []models.Recipe) []*types.Recipe {
	out := make([]*types.Recipe, len(rows))
	for i := range rows {
		out[i] = toRecipe(&rows[i])
	}
	return out
}

func toAuthUser(u *models.User) *types.AuthUser {
	au := &types.AuthUser{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Avatar:    deref(u.AvatarURL),
		Bio:       deref(u.Bio),
		Location:  deref(u.Location),
		Website:   deref(u.Website),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	if u.Verified != nil {
		au.Verified = *u.Verified
	}
	return au
}

// fromForm maps the camelCase form onto table columns
func fromForm(form *types.RecipeFormData, authorID, image string) *models.Recipe {
	published := true
	row := &models.Recipe{
		Title:        form.Title,
		CookTime:     form.CookTime,
		PrepTime:     form.PrepTime,
		Servings:     form.Servings,
		Difficulty:   string(form.Difficulty),
		Cuisine:      string(form.Cuisine),
		Calories:     form.Calories,
		Tags:         models.StringList(form.Tags),
		Ingredients:  models.IngredientList(form.Ingredients),
		Instructions: models.StringList(form.Instructions),
		AllergenInfo: models.NullAllergens{AllergenInfo: form.AllergenInfo, Valid: true},
		AuthorID:     authorID,
		IsPublished:  &published,
	}
	if form.Description != "" {
		row.Description = ptr(form.Description)
	}
	if image != "" {
		row.Image = ptr(image)
	}
	if form.NutritionFacts != nil {
		row.NutritionFacts = models.NullNutrition{NutritionFacts: *form.NutritionFacts, Valid: true}
		if row.Calories == 0 {
			row.Calories = form.NutritionFacts.Calories
		}
	}
	return row
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func ptr[T any](v T) *T {
	return &v
}
