package store

import (
	"encoding/json"
	"fmt"
	"time"

	"recipe-manager/internal/pkg/common"
)

// RecipeModel row of the recipes table; details is the JSON encoded RecipeDetails
type RecipeModel struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	Name        string    `gorm:"type:text;not null;uniqueIndex"`
	Ingredients string    `gorm:"type:text;not null"`
	Details     string    `gorm:"type:text;not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

// TableName table name
func (RecipeModel) TableName() string {
	return "recipes"
}

// RecipeToModel encodes a recipe for storage
func RecipeToModel(r *common.Recipe) (*RecipeModel, error) {
	details := r.Details
	if details.Ingredients == nil {
		details.Ingredients = []common.IngredientAmount{}
	}
	if details.Instructions == nil {
		details.Instructions = []string{}
	}

	data, err := json.Marshal(details)
	if err != nil {
		return nil, fmt.Errorf("failed to encode details: %w", err)
	}

	return &RecipeModel{
		ID:          r.ID,
		Name:        r.Name,
		Ingredients: r.Ingredients,
		Details:     string(data),
		CreatedAt:   r.CreatedAt,
	}, nil
}

// ModelToRecipe decodes a stored row
func ModelToRecipe(m *RecipeModel) (*common.Recipe, error) {
	var details common.RecipeDetails
	if m.Details != "" {
		if err := json.Unmarshal([]byte(m.Details), &details); err != nil {
			return nil, fmt.Errorf("failed to decode details of recipe %d: %w", m.ID, err)
		}
	}
	if details.Ingredients == nil {
		details.Ingredients = []common.IngredientAmount{}
	}
	if details.Instructions == nil {
		details.Instructions = []string{}
	}

	return &common.Recipe{
		ID:          m.ID,
		Name:        m.Name,
		Ingredients: m.Ingredients,
		Details:     details,
		CreatedAt:   m.CreatedAt,
	}, nil
}
