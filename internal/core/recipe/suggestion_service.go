package recipe

import (
	"context"
	"strings"

	"recipe-manager/internal/pkg/common"

	"go.uber.org/zap"
)

// SuggestionService recipe ideas from a list of ingredients
type SuggestionService struct {
	oracle Oracle
}

// NewSuggestionService creates the suggestion service
func NewSuggestionService(oracle Oracle) *SuggestionService {
	return &SuggestionService{oracle: oracle}
}

// GenerateRecipes returns suggestions for ingredients. Unknown flexibility
// levels are strict and negative maxExtras count as zero. Fewer than the
// requested 3 to 10 suggestions are returned as they are.
func (s *SuggestionService) GenerateRecipes(ctx context.Context, ingredients string, flexibility, maxExtras int) ([]common.Suggestion, error) {
	ingredients = strings.TrimSpace(ingredients)
	if ingredients == "" {
		return nil, common.NewValidationError("No ingredients provided")
	}
	if s.oracle == nil {
		return nil, common.NewOracleError("AI service is not configured", nil)
	}
	if maxExtras < 0 {
		maxExtras = 0
	}

	level := ParseFlexibility(flexibility)
	suggestions, err := s.oracle.GenerateRecipes(ctx, ingredients, level, maxExtras)
	if err != nil {
		common.LogError("AI recipe generation failed",
			zap.String("ingredients", ingredients),
			zap.Int("flexibility", int(level)),
			zap.Error(err),
		)
		if common.IsOracleError(err) {
			return nil, err
		}
		return nil, common.NewOracleError("failed to generate AI recipes", err)
	}

	result := make([]common.Suggestion, 0, len(suggestions))
	for _, sug := range suggestions {
		sug.Name = strings.TrimSpace(sug.Name)
		sug.Ingredients = strings.TrimSpace(sug.Ingredients)
		if sug.Name == "" {
			continue
		}
		result = append(result, sug)
	}

	common.LogInfo("AI recipes generated",
		zap.Int("flexibility", int(level)),
		zap.Int("max_extras", maxExtras),
		zap.Int("count", len(result)),
	)
	return result, nil
}
