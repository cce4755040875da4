package types

import (
	"time"
)

// Cuisine is one of the fixed cuisine labels a recipe can carry
type Cuisine string

const (
	CuisineItalian       Cuisine = "Italian"
	CuisineAsian         Cuisine = "Asian"
	CuisineMediterranean Cuisine = "Mediterranean"
	CuisineMexican       Cuisine = "Mexican"
	CuisineIndian        Cuisine = "Indian"
	CuisineAmerican      Cuisine = "American"
	CuisineFrench        Cuisine = "French"
	CuisineMiddleEastern Cuisine = "Middle Eastern"
	CuisineThai          Cuisine = "Thai"
	CuisineJapanese      Cuisine = "Japanese"
	CuisineChinese       Cuisine = "Chinese"
	CuisineGreek         Cuisine = "Greek"
	CuisineSpanish       Cuisine = "Spanish"
	CuisineKorean        Cuisine = "Korean"
	CuisineVietnamese    Cuisine = "Vietnamese"
	CuisineOther         Cuisine = "Other"
)

var cuisines = []Cuisine{
	CuisineItalian,
	CuisineAsian,
	CuisineMediterranean,
	CuisineMexican,
	CuisineIndian,
	CuisineAmerican,
	CuisineFrench,
	CuisineMiddleEastern,
	CuisineThai,
	CuisineJapanese,
	CuisineChinese,
	CuisineGreek,
	CuisineSpanish,
	CuisineKorean,
	CuisineVietnamese,
	CuisineOther,
}

// Cuisines returns every known cuisine in display order
func Cuisines() []Cuisine {
	out := make([]Cuisine, len(cuisines))
	copy(out, cuisines)
	return out
}

// Valid reports whether c is one of the known cuisines
func (c Cuisine) Valid() bool {
	for _, known := range cuisines {
		if c == known {
			return true
		}
	}
	return false
}

// Difficulty is the effort level of a recipe
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Valid reports whether d is Easy, Medium or Hard
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// CommonTags is the tag vocabulary offered by the submission form
var CommonTags = []string{
	"Gluten-Free",
	"Vegan",
	"Vegetarian",
	"Dairy-Free",
	"Nut-Free",
	"Soy-Free",
	"Egg-Free",
	"Low-Carb",
	"High-Protein",
	"Quick",
	"Make-Ahead",
	"One-Pot",
	"No-Cook",
	"Keto",
	"Paleo",
}

// Ingredient is one line of a recipe's ingredient list
type Ingredient struct {
	Item   string `json:"item" yaml:"item"`
	Amount string `json:"amount" yaml:"amount"`
}

// NutritionFacts holds display strings for each macro, calories excepted
type NutritionFacts struct {
	Calories int    `json:"calories" yaml:"calories"`
	Protein  string `json:"protein" yaml:"protein"`
	Carbs    string `json:"carbs" yaml:"carbs"`
	Fat      string `json:"fat" yaml:"fat"`
	Fiber    string `json:"fiber" yaml:"fiber"`
	Sugar    string `json:"sugar" yaml:"sugar"`
}

// DefaultNutrition is what a recipe without stored nutrition facts reports
func DefaultNutrition(calories int) NutritionFacts {
	return NutritionFacts{
		Calories: calories,
		Protein:  "0g",
		Carbs:    "0g",
		Fat:      "0g",
		Fiber:    "0g",
		Sugar:    "0g",
	}
}

// AllergenInfo is the set of dietary suitability flags on a recipe
type AllergenInfo struct {
	GlutenFree    bool  `json:"glutenFree" yaml:"glutenFree"`
	DairyFree     bool  `json:"dairyFree" yaml:"dairyFree"`
	NutFree       bool  `json:"nutFree" yaml:"nutFree"`
	SoyFree       bool  `json:"soyFree" yaml:"soyFree"`
	Vegan         bool  `json:"vegan" yaml:"vegan"`
	Vegetarian    *bool `json:"vegetarian,omitempty" yaml:"vegetarian,omitempty"`
	EggFree       *bool `json:"eggFree,omitempty" yaml:"eggFree,omitempty"`
	FishFree      *bool `json:"fishFree,omitempty" yaml:"fishFree,omitempty"`
	ShellFishFree *bool `json:"shellFishFree,omitempty" yaml:"shellFishFree,omitempty"`
}

// Author is the public view of a recipe's owner
type Author struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Avatar   string `json:"avatar,omitempty"`
	Verified bool   `json:"verified"`
}

// Recipe is the application-facing recipe shape served to clients
type Recipe struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	Image          string         `json:"image"`
	CookTime       string         `json:"cookTime"`
	PrepTime       string         `json:"prepTime"`
	Servings       int            `json:"servings"`
	Difficulty     Difficulty     `json:"difficulty"`
	Cuisine        Cuisine        `json:"cuisine"`
	Rating         float64        `json:"rating"`
	Reviews        int            `json:"reviews"`
	Calories       int            `json:"calories"`
	Tags           []string       `json:"tags"`
	Author         Author         `json:"author"`
	Ingredients    []Ingredient   `json:"ingredients"`
	Instructions   []string       `json:"instructions"`
	NutritionFacts NutritionFacts `json:"nutritionFacts"`
	AllergenInfo   AllergenInfo   `json:"allergenInfo"`
	DateCreated    time.Time      `json:"dateCreated"`
	UpdatedAt      time.Time      `json:"updatedAt"`
	IsPublished    bool           `json:"isPublished"`
}

// RecipeFormData is the input for creating a recipe
type RecipeFormData struct {
	Title          string          `json:"title" yaml:"title"`
	Description    string          `json:"description" yaml:"description"`
	Image          string          `json:"image" yaml:"image"`
	CookTime       string          `json:"cookTime" yaml:"cookTime"`
	PrepTime       string          `json:"prepTime" yaml:"prepTime"`
	Servings       int             `json:"servings" yaml:"servings"`
	Difficulty     Difficulty      `json:"difficulty" yaml:"difficulty"`
	Cuisine        Cuisine         `json:"cuisine" yaml:"cuisine"`
	Calories       int             `json:"calories" yaml:"calories"`
	Tags           []string        `json:"tags" yaml:"tags"`
	Ingredients    []Ingredient    `json:"ingredients" yaml:"ingredients"`
	Instructions   []string        `json:"instructions" yaml:"instructions"`
	NutritionFacts *NutritionFacts `json:"nutritionFacts,omitempty" yaml:"nutritionFacts,omitempty"`
	AllergenInfo   AllergenInfo    `json:"allergenInfo" yaml:"allergenInfo"`
}

// RecipeUpdate is a partial update. Nil fields are left untouched.
type RecipeUpdate struct {
	Title          *string         `json:"title,omitempty"`
	Description    *string         `json:"description,omitempty"`
	Image          *string         `json:"image,omitempty"`
	CookTime       *string         `json:"cookTime,omitempty"`
	PrepTime       *string         `json:"prepTime,omitempty"`
	Servings       *int            `json:"servings,omitempty"`
	Difficulty     *Difficulty     `json:"difficulty,omitempty"`
	Cuisine        *Cuisine        `json:"cuisine,omitempty"`
	Calories       *int            `json:"calories,omitempty"`
	Tags           []string        `json:"tags,omitempty"`
	Ingredients    []Ingredient    `json:"ingredients,omitempty"`
	Instructions   []string        `json:"instructions,omitempty"`
	NutritionFacts *NutritionFacts `json:"nutritionFacts,omitempty"`
	AllergenInfo   *AllergenInfo   `json:"allergenInfo,omitempty"`
	IsPublished    *bool           `json:"isPublished,omitempty"`
}

// HomeFeed is the pair of listings shown on the landing page
type HomeFeed struct {
	Popular []*Recipe `json:"popular"`
	Recent  []*Recipe `json:"recent"`
}
