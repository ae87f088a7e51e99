package common

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// IngredientAmount one structured ingredient; item identity is case-insensitive
type IngredientAmount struct {
	Item    string  `json:"item"`
	AmountG float64 `json:"amount_g" validate:"gte=0"`
}

// ValidAmount grams must be a finite, non-negative number
func ValidAmount(g float64) bool {
	return g >= 0 && !math.IsInf(g, 0)
}

// NutritionTotals nutrition for the whole recipe. Either all four fields are
// known or the object is treated as missing.
type NutritionTotals struct {
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	FatG     float64 `json:"fat_g"`
	CarbsG   float64 `json:"carbs_g"`
}

// RecipeDetails the structured part of a recipe, stored as one JSON blob
type RecipeDetails struct {
	Ingredients  []IngredientAmount `json:"ingredients"`
	Instructions []string           `json:"instructions"`
	Nutrition    *NutritionTotals   `json:"nutrition"`
}

// Recipe a persisted recipe row with its details decoded
type Recipe struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	Ingredients string        `json:"ingredients"` // flat main-ingredient summary
	Details     RecipeDetails `json:"details"`
	CreatedAt   time.Time     `json:"created_at"`
}

// Suggestion a recipe idea returned by the generator; never persisted
type Suggestion struct {
	Name        string `json:"name"`
	Ingredients string `json:"ingredients"`
}

// TotalGrams sums amount_g over all ingredients
func TotalGrams(ingredients []IngredientAmount) float64 {
	var total float64
	for _, ing := range ingredients {
		total += ing.AmountG
	}
	return total
}

// FormatIngredientAmounts renders ingredients one per line for prompts
func FormatIngredientAmounts(ingredients []IngredientAmount) string {
	var sb strings.Builder
	for _, ing := range ingredients {
		sb.WriteString(fmt.Sprintf("- %s: %gg\n", ing.Item, ing.AmountG))
	}
	return sb.String()
}
