package recipe

import (
	"context"
	"strings"

	"recipe-manager/internal/pkg/common"

	"go.uber.org/zap"
)

// RecipeService generates full details for a named recipe
type RecipeService struct {
	oracle Oracle
}

// NewRecipeService creates the detail generator
func NewRecipeService(oracle Oracle) *RecipeService {
	return &RecipeService{oracle: oracle}
}

// GenerateDetails asks the oracle for ingredients with grams, steps and
// nutrition. Nothing is persisted.
func (s *RecipeService) GenerateDetails(ctx context.Context, name, ingredients string) (*common.RecipeDetails, error) {
	name = strings.TrimSpace(name)
	ingredients = strings.TrimSpace(ingredients)
	if name == "" || ingredients == "" {
		return nil, common.NewValidationError("Missing recipe name or ingredients")
	}
	if s.oracle == nil {
		return nil, common.NewOracleError("AI service is not configured", nil)
	}

	details, err := s.oracle.GenerateDetails(ctx, name, ingredients)
	if err != nil {
		common.LogError("AI instructions generation failed",
			zap.String("name", name),
			zap.Error(err),
		)
		if common.IsOracleError(err) {
			return nil, err
		}
		return nil, common.NewOracleError("failed to generate instructions", err)
	}

	if details.Ingredients == nil {
		details.Ingredients = []common.IngredientAmount{}
	}
	if details.Instructions == nil {
		details.Instructions = []string{}
	}
	return details, nil
}
