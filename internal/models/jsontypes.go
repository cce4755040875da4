package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/pageza/allerfree/backend/internal/types"
)

func rawBytes(value interface{}) ([]byte, bool) {
	switch v := value.(type) {
	case []byte:
		return v, true
	case string:
		return []byte(v), true
	}
	return nil, false
}

// StringList is a JSON array of strings. Anything that is not an array reads
// back as an empty list.
type StringList []string

// Value implements the driver.Valuer interface
func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal string list: %w", err)
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (l *StringList) Scan(value interface{}) error {
	*l = StringList{}
	b, ok := rawBytes(value)
	if !ok {
		return nil
	}
	var out []string
	if err := json.Unmarshal(b, &out); err != nil {
		return nil
	}
	if out != nil {
		*l = out
	}
	return nil
}

// IngredientList is a JSON array of {item, amount} objects
type IngredientList []types.Ingredient

// Value implements the driver.Valuer interface
func (l IngredientList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal([]types.Ingredient(l))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal ingredients: %w", err)
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (l *IngredientList) Scan(value interface{}) error {
	*l = IngredientList{}
	b, ok := rawBytes(value)
	if !ok {
		return nil
	}
	var out []types.Ingredient
	if err := json.Unmarshal(b, &out); err != nil {
		return nil
	}
	if out != nil {
		*l = out
	}
	return nil
}

// NullNutrition is a nullable nutrition_facts object
type NullNutrition struct {
	types.NutritionFacts
	Valid bool
}

// Value implements the driver.Valuer interface
func (n NullNutrition) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	b, err := json.Marshal(n.NutritionFacts)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal nutrition facts: %w", err)
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (n *NullNutrition) Scan(value interface{}) error {
	*n = NullNutrition{}
	b, ok := rawBytes(value)
	if !ok {
		return nil
	}
	var facts types.NutritionFacts
	if err := json.Unmarshal(b, &facts); err != nil {
		return nil
	}
	if string(b) == "null" {
		return nil
	}
	n.NutritionFacts = facts
	n.Valid = true
	return nil
}

// NullAllergens is a nullable allergen_info object
type NullAllergens struct {
	types.AllergenInfo
	Valid bool
}

// Value implements the driver.Valuer interface
func (n NullAllergens) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	b, err := json.Marshal(n.AllergenInfo)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal allergen info: %w", err)
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (n *NullAllergens) Scan(value interface{}) error {
	*n = NullAllergens{}
	b, ok := rawBytes(value)
	if !ok {
		return nil
	}
	var info types.AllergenInfo
	if err := json.Unmarshal(b, &info); err != nil {
		return nil
	}
	if string(b) == "null" {
		return nil
	}
	n.AllergenInfo = info
	n.Valid = true
	return nil
}
