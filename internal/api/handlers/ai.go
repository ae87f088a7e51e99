package handlers

import (
	"net/http"
	"strconv"

	recipeService "recipe-manager/internal/core/recipe"
	"recipe-manager/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AIHandler generation endpoints; nothing here is persisted
type AIHandler struct {
	suggestions *recipeService.SuggestionService
	details     *recipeService.RecipeService
}

// NewAIHandler creates the AI handler
func NewAIHandler(suggestions *recipeService.SuggestionService, details *recipeService.RecipeService) *AIHandler {
	return &AIHandler{
		suggestions: suggestions,
		details:     details,
	}
}

// GenerateRecipes GET ?ingredients=&flexibility=&maxExtras=
func (h *AIHandler) GenerateRecipes(c *gin.Context) {
	ingredients := c.Query("ingredients")
	flexibility := queryInt(c, "flexibility", int(recipeService.FlexibilityStrict))
	maxExtras := queryInt(c, "maxExtras", 0)

	common.LogInfo("Generating AI recipes",
		zap.String("request_id", RequestID(c)),
		zap.Int("flexibility", flexibility),
		zap.Int("max_extras", maxExtras),
	)

	suggestions, err := h.suggestions.GenerateRecipes(c.Request.Context(), ingredients, flexibility, maxExtras)
	if err != nil {
		WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, suggestions)
}

// GenerateInstructions GET ?name=&ingredients=
func (h *AIHandler) GenerateInstructions(c *gin.Context) {
	name := c.Query("name")

	common.LogInfo("Generating AI instructions",
		zap.String("request_id", RequestID(c)),
		zap.String("name", name),
	)

	details, err := h.details.GenerateDetails(c.Request.Context(), name, c.Query("ingredients"))
	if err != nil {
		WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, details)
}

// queryInt parses an integer query parameter, def when absent or not a number
func queryInt(c *gin.Context, key string, def int) int {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
