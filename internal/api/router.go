package api

import (
	"net/http"
	"time"

	"recipe-manager/internal/api/handlers"
	"recipe-manager/internal/api/handlers/health"
	recipeHandler "recipe-manager/internal/api/handlers/recipe"
	"recipe-manager/internal/api/middleware"
	recipeService "recipe-manager/internal/core/recipe"
	"recipe-manager/internal/infrastructure/config"
	"recipe-manager/internal/infrastructure/monitoring"
	"recipe-manager/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Dependencies services the router exposes
type Dependencies struct {
	Recipes     *recipeService.Service
	Suggestions *recipeService.SuggestionService
	Details     *recipeService.RecipeService
	Metrics     *monitoring.Metrics
	// Checks pinged by /ready, keyed by name
	Checks map[string]health.Pinger
	// Dedup optional; nil disables duplicate POST rejection
	Dedup *middleware.Deduplicator
}

// SetupRouter builds the gin engine with middleware and all routes
func SetupRouter(cfg *config.Config, deps *Dependencies) *gin.Engine {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, common.ErrorResponse{
			Success: false,
			Code:    common.ErrCodeNotFound,
			Message: "Route not found",
		})
	})
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, common.ErrorResponse{
			Success: false,
			Code:    common.ErrCodeMethodNotAllowed,
			Message: "Method not allowed",
		})
	})

	router.Use(middleware.Recovery())
	router.Use(requestid.New())
	router.Use(middleware.Logger())
	if deps.Metrics != nil {
		router.Use(deps.Metrics.HTTPMiddleware())
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	healthHandler := health.NewHandler(cfg, deps.Checks)
	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/ready", healthHandler.ReadinessCheck)
	router.GET("/live", healthHandler.LivenessCheck)
	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	// everything below is rate limited and body capped
	limited := router.Group("")
	limited.Use(middleware.BodySizeLimit(cfg.Server.MaxBodyBytes))
	if cfg.RateLimit.Enabled {
		limited.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}
	limited.Use(middleware.Timeout(cfg.Server.RequestTimeout))

	recipes := recipeHandler.NewHandler(deps.Recipes)
	// only saves write, so only saves are deduplicated
	save := []gin.HandlerFunc{recipes.HandleSave}
	if deps.Dedup != nil {
		save = append([]gin.HandlerFunc{deps.Dedup.Middleware()}, save...)
	}
	ai := handlers.NewAIHandler(deps.Suggestions, deps.Details)

	v1 := limited.Group("/api/v1")
	{
		recipeGroup := v1.Group("/recipes")
		{
			recipeGroup.GET("", recipes.HandleList)
			recipeGroup.POST("", save...)
			recipeGroup.GET("/search", recipes.HandleSearch)
			recipeGroup.GET("/instructions", recipes.HandleInstructions)
			recipeGroup.DELETE("/:id", recipes.HandleDelete)
		}

		aiGroup := v1.Group("/ai")
		{
			aiGroup.GET("/recipes", ai.GenerateRecipes)
			aiGroup.GET("/instructions", ai.GenerateInstructions)
		}

		ingredientGroup := v1.Group("/ingredients")
		{
			ingredientGroup.POST("/sync", recipeHandler.HandleSync)
			ingredientGroup.POST("/rename", recipeHandler.HandleRename)
			ingredientGroup.POST("/remove", recipeHandler.HandleRemove)
			ingredientGroup.POST("/add", recipeHandler.HandleAdd)
		}
	}

	// unversioned routes kept for existing clients
	limited.GET("/recipes", recipes.HandleList)
	limited.POST("/save-recipe", save...)
	limited.DELETE("/delete-recipe/:id", recipes.HandleDelete)
	limited.GET("/recipe-instructions", recipes.HandleInstructions)
	limited.GET("/search", recipes.HandleSearch)
	limited.GET("/ai-recipes", ai.GenerateRecipes)
	limited.GET("/ai-instructions", ai.GenerateInstructions)

	common.LogInfo("Router setup completed",
		zap.Bool("ai_enabled", cfg.OpenRouter.Enabled),
		zap.Bool("rate_limit", cfg.RateLimit.Enabled),
		zap.Duration("request_timeout", cfg.Server.RequestTimeout),
		zap.Int64("max_body_size", cfg.Server.MaxBodyBytes),
	)

	return router
}
