package recipe

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"recipe-manager/internal/pkg/common"

	"go.uber.org/zap"
)

// Oracle the external generator, reduced to the three things it is asked for
type Oracle interface {
	EstimateNutrition(ctx context.Context, ingredients []common.IngredientAmount) (*common.NutritionTotals, error)
	GenerateRecipes(ctx context.Context, ingredients string, flexibility Flexibility, maxExtras int) ([]common.Suggestion, error)
	GenerateDetails(ctx context.Context, name, ingredients string) (*common.RecipeDetails, error)
}

// Generator turns a prompt into model text; *service.Service implements it
type Generator interface {
	ProcessRequest(ctx context.Context, purpose, system, prompt string) (string, error)
}

// Purposes label AI calls in logs and metrics
const (
	PurposeNutrition = "nutrition"
	PurposeRecipes   = "recipes"
	PurposeDetails   = "details"
)

// AIOracle Oracle backed by a chat model
type AIOracle struct {
	ai Generator
}

// NewAIOracle creates an oracle over ai
func NewAIOracle(ai Generator) *AIOracle {
	return &AIOracle{ai: ai}
}

// EstimateNutrition asks for totals; the reply must carry all four numeric fields
func (o *AIOracle) EstimateNutrition(ctx context.Context, ingredients []common.IngredientAmount) (*common.NutritionTotals, error) {
	content, err := o.ai.ProcessRequest(ctx, PurposeNutrition, "", buildNutritionPrompt(ingredients))
	if err != nil {
		return nil, common.NewOracleError("failed to estimate nutrition", err)
	}

	raw := common.ExtractJSON(common.StripCodeFences(content), '{', '}')
	totals, ok := ParseNutrition(json.RawMessage(raw))
	if !ok {
		return nil, common.NewOracleError("invalid nutrition response", fmt.Errorf("unexpected content: %.120s", raw))
	}
	return totals, nil
}

// GenerateRecipes asks for suggestions at the given flexibility
func (o *AIOracle) GenerateRecipes(ctx context.Context, ingredients string, flexibility Flexibility, maxExtras int) ([]common.Suggestion, error) {
	prompt := buildSuggestionPrompt(ingredients, flexibility, maxExtras)
	content, err := o.ai.ProcessRequest(ctx, PurposeRecipes, suggestionSystemPrompt, prompt)
	if err != nil {
		return nil, common.NewOracleError("failed to generate AI recipes", err)
	}

	cleaned := common.ExtractJSON(common.CleanAIJSON(content), '[', ']')
	var suggestions []common.Suggestion
	if err := common.ParseJSON(cleaned, &suggestions); err != nil {
		common.LogDebug("Unparseable recipe suggestions",
			zap.Int("ai_response_length", len(content)),
			zap.Error(err),
		)
		return nil, common.NewOracleError("invalid JSON from AI", err)
	}
	return suggestions, nil
}

// detailsReply decoded details with nutrition left raw so a partial object can be dropped
type detailsReply struct {
	Ingredients  []common.IngredientAmount `json:"ingredients"`
	Instructions []string                  `json:"instructions"`
	Nutrition    json.RawMessage           `json:"nutrition"`
}

// GenerateDetails asks for ingredients with grams, steps and nutrition
func (o *AIOracle) GenerateDetails(ctx context.Context, name, ingredients string) (*common.RecipeDetails, error) {
	content, err := o.ai.ProcessRequest(ctx, PurposeDetails, "", buildDetailsPrompt(name, ingredients))
	if err != nil {
		return nil, common.NewOracleError("failed to generate instructions", err)
	}

	cleaned := common.ExtractJSON(common.CleanAIJSON(content), '{', '}')
	var reply detailsReply
	if err := common.ParseJSON(cleaned, &reply); err != nil {
		common.LogDebug("Unparseable recipe details",
			zap.Int("ai_response_length", len(content)),
			zap.Error(err),
		)
		return nil, common.NewOracleError("invalid JSON from AI", err)
	}

	details := &common.RecipeDetails{
		Ingredients:  make([]common.IngredientAmount, 0, len(reply.Ingredients)),
		Instructions: cleanSteps(reply.Instructions),
	}
	for _, ing := range reply.Ingredients {
		ing.Item = strings.TrimSpace(ing.Item)
		if ing.Item == "" {
			continue
		}
		if !common.ValidAmount(ing.AmountG) {
			ing.AmountG = 0
		}
		details.Ingredients = append(details.Ingredients, ing)
	}
	if totals, ok := ParseNutrition(reply.Nutrition); ok {
		details.Nutrition = totals
	}
	return details, nil
}
