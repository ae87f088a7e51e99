package recipe

import (
	"context"
	"encoding/json"
	"math"

	"recipe-manager/internal/infrastructure/monitoring"
	"recipe-manager/internal/pkg/common"

	"go.uber.org/zap"
)

// Fallback multipliers per gram of total ingredient weight
const (
	caloriesPerGram = 2.0
	proteinPerGram  = 0.2
	fatPerGram      = 0.1
	carbsPerGram    = 0.15
)

var nutritionFields = []string{"calories", "protein_g", "fat_g", "carbs_g"}

// NutritionResolver produces nutrition totals, never failing
type NutritionResolver struct {
	oracle  Oracle
	metrics *monitoring.Metrics
}

// NewNutritionResolver oracle may be nil, in which case every estimate is the fallback
func NewNutritionResolver(oracle Oracle, metrics *monitoring.Metrics) *NutritionResolver {
	return &NutritionResolver{
		oracle:  oracle,
		metrics: metrics,
	}
}

// Resolve asks the oracle and falls back to FallbackNutrition on any failure
func (r *NutritionResolver) Resolve(ctx context.Context, ingredients []common.IngredientAmount) common.NutritionTotals {
	if r == nil {
		return FallbackNutrition(ingredients)
	}
	if r.oracle != nil {
		totals, err := r.oracle.EstimateNutrition(ctx, ingredients)
		if err == nil && isComplete(totals) {
			return *totals
		}
		common.LogWarn("Failed to estimate nutrition with AI, falling back",
			zap.Int("ingredients", len(ingredients)),
			zap.Error(err),
		)
	}

	r.metrics.NutritionFallback()
	return FallbackNutrition(ingredients)
}

// FallbackNutrition deterministic estimate from total grams
func FallbackNutrition(ingredients []common.IngredientAmount) common.NutritionTotals {
	total := common.TotalGrams(ingredients)
	return common.NutritionTotals{
		Calories: roundHalfUp(total * caloriesPerGram),
		ProteinG: roundHalfUp(total * proteinPerGram),
		FatG:     roundHalfUp(total * fatPerGram),
		CarbsG:   roundHalfUp(total * carbsPerGram),
	}
}

// roundHalfUp rounds .5 toward positive infinity, also for negative inputs
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}

// ParseNutrition decodes raw into totals. It reports false unless raw is an
// object whose four fields are all present, numeric and non-negative.
func ParseNutrition(raw json.RawMessage) (*common.NutritionTotals, bool) {
	if len(raw) == 0 {
		return nil, false
	}

	var fields map[string]interface{}
	if err := common.ParseJSONBytes(raw, &fields); err != nil || fields == nil {
		return nil, false
	}

	values := make([]float64, len(nutritionFields))
	for i, name := range nutritionFields {
		num, ok := fields[name].(json.Number)
		if !ok {
			return nil, false
		}
		v, err := num.Float64()
		if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, false
		}
		values[i] = v
	}

	return &common.NutritionTotals{
		Calories: values[0],
		ProteinG: values[1],
		FatG:     values[2],
		CarbsG:   values[3],
	}, true
}

func isComplete(totals *common.NutritionTotals) bool {
	if totals == nil {
		return false
	}
	for _, v := range []float64{totals.Calories, totals.ProteinG, totals.FatG, totals.CarbsG} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
