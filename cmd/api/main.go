package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recipe-manager/internal/api"
	"recipe-manager/internal/api/handlers/health"
	"recipe-manager/internal/api/middleware"
	"recipe-manager/internal/core/ai/cache"
	"recipe-manager/internal/core/ai/openrouter"
	aiService "recipe-manager/internal/core/ai/service"
	recipeService "recipe-manager/internal/core/recipe"
	"recipe-manager/internal/infrastructure/config"
	"recipe-manager/internal/infrastructure/monitoring"
	"recipe-manager/internal/infrastructure/store"
	"recipe-manager/internal/pkg/common"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := common.InitLogger(cfg.LogLevel, cfg.LogFile); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	common.LogInfo("Configuration loaded",
		zap.String("env", cfg.App.Env),
		zap.Bool("ai_enabled", cfg.OpenRouter.Enabled),
		zap.String("openrouter_api_key", common.MaskSecret(cfg.OpenRouter.APIKey)),
		zap.String("openrouter_model", cfg.OpenRouter.Model),
		zap.String("database", cfg.Database.Path),
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
	)

	db, err := store.SetupDatabase(cfg.Database.Path, store.ParseLogLevel(cfg.Database.LogLevel))
	if err != nil {
		common.LogFatal("Failed to open recipe store", zap.Error(err))
	}
	defer func() {
		if err := store.Close(db); err != nil {
			common.LogError("Failed to close recipe store", zap.Error(err))
		}
	}()

	metrics := monitoring.NewMetrics()
	repo := store.NewRecipeRepository(db, metrics)

	checks := map[string]health.Pinger{}

	// without an API key the server runs with AI disabled:
	// generation answers AI_SERVICE_ERROR and nutrition always falls back
	var oracle recipeService.Oracle
	if cfg.OpenRouter.Enabled {
		startCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		responseCache, err := cache.NewService(startCtx, &cfg.Cache)
		cancel()
		if err != nil {
			common.LogFatal("Failed to initialize response cache", zap.Error(err))
		}
		if responseCache.Enabled() {
			checks["cache"] = health.PingFunc(responseCache.Ping)
		}

		ai := aiService.NewService(openrouter.NewClient(&cfg.OpenRouter), responseCache, metrics)
		defer func() {
			if err := ai.Close(); err != nil {
				common.LogError("Failed to close AI service", zap.Error(err))
			}
		}()
		oracle = recipeService.NewAIOracle(ai)
	} else {
		common.LogWarn("OpenRouter is not configured, AI features are disabled")
	}

	dedup := middleware.NewDeduplicator(cfg.DedupWindow)
	defer dedup.Stop()

	recipes := recipeService.NewService(repo, recipeService.NewNutritionResolver(oracle, metrics), metrics)
	checks["database"] = recipes

	router := api.SetupRouter(cfg, &api.Dependencies{
		Recipes:     recipes,
		Suggestions: recipeService.NewSuggestionService(oracle),
		Details:     recipeService.NewRecipeService(oracle),
		Metrics:     metrics,
		Checks:      checks,
		Dedup:       dedup,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		common.LogInfo("Starting server",
			zap.String("addr", srv.Addr),
			zap.String("version", cfg.App.Version),
			zap.String("env", cfg.App.Env),
			zap.Bool("debug", cfg.App.Debug),
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-serverErr:
		common.LogError("Failed to start server", zap.Error(err))
		return
	}

	common.LogInfo("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		common.LogError("Server forced to shutdown", zap.Error(err))
		return
	}

	common.LogInfo("Server exited")
}
