package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	recipeService "recipe-manager/internal/core/recipe"
	"recipe-manager/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestListAndGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/recipes", r.URL.Path)
		writeJSON(w, http.StatusOK, []common.Recipe{
			{ID: 1, Name: "Soup", Ingredients: "water"},
			{ID: 2, Name: "Salad", Ingredients: "lettuce"},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	recipes, err := c.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, recipes, 2)

	r, err := c.Get(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "Salad", r.Name)

	_, err = c.Get(context.Background(), 9)
	assert.True(t, IsNotFound(err))
}

func TestSaveRecipeSendsID(t *testing.T) {
	var got recipeService.SaveRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "id": 7})
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	id, err := c.SaveRecipe(context.Background(), &common.Recipe{
		ID:          7,
		Name:        "Soup",
		Ingredients: "water",
		Details: common.RecipeDetails{
			Nutrition: &common.NutritionTotals{Calories: 1, ProteinG: 2, FatG: 3, CarbsG: 4},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)

	require.NotNil(t, got.ID)
	assert.Equal(t, int64(7), *got.ID)
	require.NotNil(t, got.Details)
	assert.NotNil(t, got.Details.Ingredients)
	assert.NotNil(t, got.Details.Instructions)
	assert.JSONEq(t, `{"calories":1,"protein_g":2,"fat_g":3,"carbs_g":4}`, string(got.Details.Nutrition))
}

func TestAPIErrorMapping(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, common.ErrorResponse{Code: common.ErrCodeNotFound, Message: "Recipe not found"})
	}))
	defer srv.Close()

	err := New(srv.URL, time.Second).Delete(context.Background(), 3)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Recipe not found", apiErr.Message)
	assert.Equal(t, common.ErrCodeNotFound, apiErr.Code)
}

func TestTimeout(t *testing.T) {
	done := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()
	defer close(done)

	_, err := New(srv.URL, 50*time.Millisecond).List(context.Background())
	assert.ErrorIs(t, err, ErrTimeout)
	assert.Equal(t, "request timed out", err.Error())
}

func TestSuggestQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/ai/recipes", r.URL.Path)
		assert.Equal(t, "eggs, milk", r.URL.Query().Get("ingredients"))
		assert.Equal(t, "3", r.URL.Query().Get("flexibility"))
		assert.Equal(t, "2", r.URL.Query().Get("maxExtras"))
		writeJSON(w, http.StatusOK, []common.Suggestion{{Name: "Pancakes", Ingredients: "eggs, milk, flour"}})
	}))
	defer srv.Close()

	suggestions, err := New(srv.URL, time.Second).SuggestRecipes(context.Background(), "eggs, milk", 3, 2)
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "Pancakes", suggestions[0].Name)
}
