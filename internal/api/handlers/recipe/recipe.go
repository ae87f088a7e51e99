package recipe

import (
	"net/http"

	"recipe-manager/internal/api/handlers"
	recipeService "recipe-manager/internal/core/recipe"
	"recipe-manager/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SaveResponse body of a successful save
type SaveResponse struct {
	Success bool  `json:"success"`
	ID      int64 `json:"id"`
}

// DeleteResponse body of a successful delete
type DeleteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Handler stored recipe endpoints
type Handler struct {
	recipes *recipeService.Service
}

// NewHandler creates the recipe handler
func NewHandler(recipes *recipeService.Service) *Handler {
	return &Handler{recipes: recipes}
}

// HandleList GET all recipes
func (h *Handler) HandleList(c *gin.Context) {
	recipes, err := h.recipes.List(c.Request.Context())
	if err != nil {
		handlers.WriteError(c, err)
		return
	}

	common.LogDebug("Fetched recipes",
		zap.String("request_id", handlers.RequestID(c)),
		zap.Int("count", len(recipes)),
	)
	c.JSON(http.StatusOK, recipes)
}

// HandleSave POST insert (no id) or update (id)
func (h *Handler) HandleSave(c *gin.Context) {
	requestID := handlers.RequestID(c)

	var req recipeService.SaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogWarn("Invalid save request",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		handlers.WriteError(c, common.NewValidationError("Invalid request format"))
		return
	}

	id, err := h.recipes.Save(c.Request.Context(), &req)
	if err != nil {
		handlers.WriteError(c, err)
		return
	}

	common.LogInfo("Recipe saved",
		zap.String("request_id", requestID),
		zap.Int64("id", id),
		zap.Bool("update", req.ID != nil),
	)
	c.JSON(http.StatusOK, SaveResponse{Success: true, ID: id})
}

// HandleDelete DELETE by id
func (h *Handler) HandleDelete(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		handlers.WriteError(c, err)
		return
	}

	if err := h.recipes.Delete(c.Request.Context(), id); err != nil {
		handlers.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, DeleteResponse{Success: true, Message: "Recipe deleted successfully"})
}

// HandleInstructions GET stored details by ?name=
func (h *Handler) HandleInstructions(c *gin.Context) {
	result, err := h.recipes.Instructions(c.Request.Context(), c.Query("name"))
	if err != nil {
		handlers.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// HandleSearch GET ?ingredients=a,b
func (h *Handler) HandleSearch(c *gin.Context) {
	recipes, err := h.recipes.Search(c.Request.Context(), c.Query("ingredients"))
	if err != nil {
		handlers.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, recipes)
}
