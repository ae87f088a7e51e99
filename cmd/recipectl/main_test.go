package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"recipe-manager/internal/api"
	recipeService "recipe-manager/internal/core/recipe"
	"recipe-manager/internal/client"
	"recipe-manager/internal/infrastructure/config"
	"recipe-manager/internal/infrastructure/monitoring"
	"recipe-manager/internal/infrastructure/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

// newServer runs the API with AI disabled over an in-memory store
func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := store.SetupDatabase(":memory:", logger.Silent)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close(db) })

	metrics := monitoring.NewMetrics()
	repo := store.NewRecipeRepository(db, metrics)
	cfg := &config.Config{Server: config.ServerConfig{MaxBodyBytes: 1 << 20}}

	router := api.SetupRouter(cfg, &api.Dependencies{
		Recipes:     recipeService.NewService(repo, recipeService.NewNutritionResolver(nil, metrics), metrics),
		Suggestions: recipeService.NewSuggestionService(nil),
		Details:     recipeService.NewRecipeService(nil),
		Metrics:     metrics,
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func run(t *testing.T, server string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetArgs(append([]string{"--server", server}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSaveListEdit(t *testing.T) {
	srv := newServer(t)

	out, err := run(t, srv.URL, "save", "--name", "Rice Bowl", "--ingredients", "Rice, egg",
		"--item", "rice=200", "--step", "Cook the rice.", "--step", "Fry the egg.")
	require.NoError(t, err)
	assert.Equal(t, "saved recipe 1\n", out)

	out, err = run(t, srv.URL, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Rice Bowl")
	assert.Contains(t, out, "rice, egg")

	out, err = run(t, srv.URL, "edit", "add", "1", "Scallion")
	require.NoError(t, err)
	assert.Contains(t, out, "recipe 1: rice, egg, scallion")
	assert.Contains(t, out, "[2] scallion 0g")

	out, err = run(t, srv.URL, "edit", "rename", "1", "0", "brown rice")
	require.NoError(t, err)
	assert.Contains(t, out, "recipe 1: brown rice, egg, scallion")

	out, err = run(t, srv.URL, "edit", "remove", "1", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "recipe 1: brown rice, scallion")

	_, err = run(t, srv.URL, "edit", "remove", "1", "9")
	require.Error(t, err)

	out, err = run(t, srv.URL, "search", "scallion")
	require.NoError(t, err)
	assert.Contains(t, out, "Rice Bowl")

	out, err = run(t, srv.URL, "show", "Rice Bowl")
	require.NoError(t, err)
	assert.Contains(t, out, "1. Cook the rice.")
	// no oracle configured: 200 g of rice through the fallback
	assert.Contains(t, out, "Nutrition: 400 kcal, protein 40g, fat 20g, carbs 30g")

	out, err = run(t, srv.URL, "delete", "1")
	require.NoError(t, err)
	assert.Equal(t, "deleted recipe 1\n", out)

	_, err = run(t, srv.URL, "delete", "1")
	assert.True(t, client.IsNotFound(err))
}

func TestShowUnknownWithoutIngredients(t *testing.T) {
	srv := newServer(t)

	_, err := run(t, srv.URL, "show", "Nothing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is not stored")
}

func TestSuggestWithoutAI(t *testing.T) {
	srv := newServer(t)

	_, err := run(t, srv.URL, "suggest", "eggs")
	require.Error(t, err)
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
}

func TestRequestTimedOut(t *testing.T) {
	done := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()
	defer close(done)

	_, err := run(t, srv.URL, "--timeout", "50ms", "list")
	require.Error(t, err)
	assert.Equal(t, "request timed out", err.Error())
}

func TestParseItems(t *testing.T) {
	items, err := parseItems([]string{"rice=200", " egg = 50.5 "})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "egg", items[1].Item)
	assert.Equal(t, 50.5, items[1].AmountG)

	_, err = parseItems([]string{"rice"})
	assert.Error(t, err)
	_, err = parseItems([]string{"rice=-1"})
	assert.Error(t, err)
}
