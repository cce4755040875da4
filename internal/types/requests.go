package types

import (
	"time"
)

// Upload is an image file received from a client
type Upload struct {
	Filename string
	Size     int64
	Data     []byte
}

// WizardStep is a page of the recipe submission wizard
type WizardStep int

const (
	StepBasicInfo WizardStep = iota + 1
	StepIngredients
	StepInstructions
	StepNutritionTags
)

// FirstStep and LastStep bound wizard navigation
const (
	FirstStep = StepBasicInfo
	LastStep  = StepNutritionTags
)

func (s WizardStep) String() string {
	switch s {
	case StepBasicInfo:
		return "Basic Info"
	case StepIngredients:
		return "Ingredients"
	case StepInstructions:
		return "Instructions"
	case StepNutritionTags:
		return "Nutrition & Tags"
	}
	return "Unknown"
}

// Clamp keeps s within the wizard's steps
func (s WizardStep) Clamp() WizardStep {
	if s < FirstStep {
		return FirstStep
	}
	if s > LastStep {
		return LastStep
	}
	return s
}

// RecipeDraft is an in-progress submission held between wizard requests
type RecipeDraft struct {
	ID        string         `json:"id"`
	UserID    string         `json:"userId"`
	Step      WizardStep     `json:"step"`
	StepName  string         `json:"stepName"`
	Form      RecipeFormData `json:"form"`
	Issues    []string       `json:"issues"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// DraftPatch is a partial edit of a draft's form. Nil fields are left untouched.
type DraftPatch struct {
	Title          *string         `json:"title,omitempty"`
	Description    *string         `json:"description,omitempty"`
	Image          *string         `json:"image,omitempty"`
	CookTime       *string         `json:"cookTime,omitempty"`
	PrepTime       *string         `json:"prepTime,omitempty"`
	Servings       *int            `json:"servings,omitempty"`
	Difficulty     *Difficulty     `json:"difficulty,omitempty"`
	Cuisine        *Cuisine        `json:"cuisine,omitempty"`
	Calories       *int            `json:"calories,omitempty"`
	Ingredients    []Ingredient    `json:"ingredients,omitempty"`
	Instructions   []string        `json:"instructions,omitempty"`
	NutritionFacts *NutritionFacts `json:"nutritionFacts,omitempty"`
	AllergenInfo   *AllergenInfo   `json:"allergenInfo,omitempty"`
}
