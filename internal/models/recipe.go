package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Recipe is a row of the recipes table. Nullable columns are pointers so the
// read path can tell "absent" from a zero value.
type Recipe struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Title          string         `gorm:"size:255;not null" json:"title"`
	Description    *string        `gorm:"type:text" json:"description"`
	Image          *string        `gorm:"type:text" json:"image"`
	CookTime       string         `gorm:"size:64" json:"cook_time"`
	PrepTime       string         `gorm:"size:64" json:"prep_time"`
	Servings       int            `gorm:"not null;default:1" json:"servings"`
	Difficulty     string         `gorm:"size:16;not null;default:'Easy'" json:"difficulty"`
	Cuisine        string         `gorm:"size:32;not null;default:'Other';index" json:"cuisine"`
	Calories       int            `gorm:"not null;default:0" json:"calories"`
	Tags           StringList     `gorm:"type:jsonb" json:"tags"`
	Ingredients    IngredientList `gorm:"type:jsonb" json:"ingredients"`
	Instructions   StringList     `gorm:"type:jsonb" json:"instructions"`
	NutritionFacts NullNutrition  `gorm:"type:jsonb" json:"nutrition_facts"`
	AllergenInfo   NullAllergens  `gorm:"type:jsonb" json:"allergen_info"`
	Rating         *float64       `json:"rating"`
	ReviewCount    *int           `json:"review_count"`
	AuthorID       string         `gorm:"type:varchar(128);not null;index" json:"author_id"`
	Author         *User          `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	CollectionID   *uuid.UUID     `gorm:"type:uuid" json:"collection_id"`
	IsPublished    *bool          `gorm:"index" json:"is_published"`
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

func (Recipe) TableName() string {
	return "recipes"
}

// BeforeCreate assigns the primary key when the caller left it empty
func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Review is a rating left on a recipe. Ratings are aggregated into
// recipes.rating and recipes.review_count by the database.
type Review struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RecipeID  uuid.UUID `gorm:"type:uuid;not null;index" json:"recipe_id"`
	UserID    string    `gorm:"type:varchar(128);not null;index" json:"user_id"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   *string   `gorm:"type:text" json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Review) TableName() string {
	return "recipe_reviews"
}

// Collection groups recipes under a user
type Collection struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      string    `gorm:"type:varchar(128);not null;index" json:"user_id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description *string   `gorm:"type:text" json:"description"`
	IsPublic    bool      `gorm:"default:false" json:"is_public"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Collection) TableName() string {
	return "recipe_collections"
}

// All returns every model in migration order
func All() []interface{} {
	return []interface{}{
		&User{},
		&Collection{},
		&Recipe{},
		&Review{},
	}
}
