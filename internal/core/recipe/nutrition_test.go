package recipe

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"recipe-manager/internal/infrastructure/monitoring"
	"recipe-manager/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallbackNutrition(t *testing.T) {
	got := FallbackNutrition([]common.IngredientAmount{
		{Item: "chicken", AmountG: 600},
		{Item: "rice", AmountG: 395},
		{Item: "salt", AmountG: 5},
	})

	assert.Equal(t, common.NutritionTotals{Calories: 2000, ProteinG: 200, FatG: 100, CarbsG: 150}, got)
}

func TestFallbackNutritionRounding(t *testing.T) {
	got := FallbackNutrition([]common.IngredientAmount{{Item: "x", AmountG: 12.5}})

	assert.Equal(t, float64(25), got.Calories)
	assert.Equal(t, float64(3), got.ProteinG) // 2.5
	assert.Equal(t, float64(1), got.FatG)     // 1.25
	assert.Equal(t, float64(2), got.CarbsG)   // 1.875

	empty := FallbackNutrition(nil)
	assert.Equal(t, common.NutritionTotals{}, empty)
}

func TestResolveWithoutOracleFallsBack(t *testing.T) {
	metrics := monitoring.NewMetrics()
	r := NewNutritionResolver(nil, metrics)

	got := r.Resolve(context.Background(), []common.IngredientAmount{{Item: "flour", AmountG: 1000}})

	assert.Equal(t, common.NutritionTotals{Calories: 2000, ProteinG: 200, FatG: 100, CarbsG: 150}, got)
}

func TestResolveUsesOracle(t *testing.T) {
	oracle := &stubOracle{nutrition: &common.NutritionTotals{Calories: 321, ProteinG: 12, FatG: 3, CarbsG: 40}}
	r := NewNutritionResolver(oracle, nil)

	got := r.Resolve(context.Background(), []common.IngredientAmount{{Item: "flour", AmountG: 100}})

	assert.Equal(t, float64(321), got.Calories)
	assert.Equal(t, 1, oracle.nutritionCalls)
}

func TestResolveFallsBackOnOracleError(t *testing.T) {
	oracle := &stubOracle{err: common.NewOracleError("boom", errors.New("status 500"))}
	r := NewNutritionResolver(oracle, nil)

	got := r.Resolve(context.Background(), []common.IngredientAmount{{Item: "flour", AmountG: 500}})

	assert.Equal(t, common.NutritionTotals{Calories: 1000, ProteinG: 100, FatG: 50, CarbsG: 75}, got)
}

func TestResolveFallsBackOnTimeout(t *testing.T) {
	oracle := &stubOracle{err: common.NewOracleError("slow", context.DeadlineExceeded)}
	r := NewNutritionResolver(oracle, nil)

	got := r.Resolve(context.Background(), []common.IngredientAmount{{Item: "flour", AmountG: 10}})

	assert.Equal(t, float64(20), got.Calories)
}

func TestParseNutrition(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		ok   bool
	}{
		{"complete", `{"calories":600,"protein_g":55,"fat_g":30,"carbs_g":0}`, true},
		{"extra fields ignored", `{"calories":1,"protein_g":2,"fat_g":3,"carbs_g":4,"fiber_g":5}`, true},
		{"missing field", `{"calories":600,"protein_g":55,"fat_g":30}`, false},
		{"string value", `{"calories":"600","protein_g":55,"fat_g":30,"carbs_g":0}`, false},
		{"null value", `{"calories":null,"protein_g":55,"fat_g":30,"carbs_g":0}`, false},
		{"negative value", `{"calories":-1,"protein_g":55,"fat_g":30,"carbs_g":0}`, false},
		{"null", `null`, false},
		{"array", `[1,2,3,4]`, false},
		{"not json", `about 600 kcal`, false},
		{"empty", ``, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totals, ok := ParseNutrition(json.RawMessage(tt.raw))
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				require.NotNil(t, totals)
			} else {
				assert.Nil(t, totals)
			}
		})
	}
}

func TestResolveCountsFallbacks(t *testing.T) {
	metrics := monitoring.NewMetrics()
	r := NewNutritionResolver(&stubOracle{err: errors.New("down")}, metrics)

	r.Resolve(context.Background(), nil)
	r.Resolve(context.Background(), nil)

	assert.Equal(t, float64(2), counterValue(t, metrics, "nutrition_fallback_total"))
}

func counterValue(t *testing.T, m *monitoring.Metrics, name string) float64 {
	t.Helper()
	families, err := m.Registry().Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() == name && len(f.GetMetric()) > 0 {
			return f.GetMetric()[0].GetCounter().GetValue()
		}
	}
	return 0
}
