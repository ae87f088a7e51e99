package recipe

import (
	"net/http"

	"recipe-manager/internal/api/handlers"
	"recipe-manager/internal/core/ingredient"
	"recipe-manager/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// IngredientEditRequest state of an ingredient editor plus the edit to apply
type IngredientEditRequest struct {
	Flat        string                    `json:"flat"`
	Ingredients []common.IngredientAmount `json:"ingredients"`
	Index       *int                      `json:"index,omitempty"`
	Name        string                    `json:"name,omitempty"`
	Token       string                    `json:"token,omitempty"`
}

// IngredientEditResponse state after the edit
type IngredientEditResponse struct {
	Flat        string                    `json:"flat"`
	Main        []string                  `json:"main"`
	Ingredients []common.IngredientAmount `json:"ingredients"`
	Changed     bool                      `json:"changed"`
}

func bindEdit(c *gin.Context) (*IngredientEditRequest, bool) {
	var req IngredientEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlers.WriteError(c, common.NewValidationError("Invalid request format"))
		return nil, false
	}
	if req.Ingredients == nil {
		req.Ingredients = []common.IngredientAmount{}
	}
	return &req, true
}

func editIndex(c *gin.Context, req *IngredientEditRequest) (int, bool) {
	if req.Index == nil {
		handlers.WriteError(c, common.NewValidationError("Ingredient index is required"))
		return 0, false
	}
	return *req.Index, true
}

func writeEdit(c *gin.Context, flat string, list []common.IngredientAmount, changed bool) {
	if list == nil {
		list = []common.IngredientAmount{}
	}
	main := ingredient.ParseMain(flat)
	if main == nil {
		main = []string{}
	}
	c.JSON(http.StatusOK, IngredientEditResponse{
		Flat:        flat,
		Main:        main,
		Ingredients: list,
		Changed:     changed,
	})
}

// HandleSync POST rebuilds the structured list from the flat text
func HandleSync(c *gin.Context) {
	req, ok := bindEdit(c)
	if !ok {
		return
	}
	list := ingredient.SyncMainFromFlat(req.Flat, req.Ingredients)
	writeEdit(c, req.Flat, list, true)
}

// HandleRename POST renames the entry at index, following it in the flat text
func HandleRename(c *gin.Context) {
	req, ok := bindEdit(c)
	if !ok {
		return
	}
	index, ok := editIndex(c, req)
	if !ok {
		return
	}

	list, flat, err := ingredient.RenameIngredient(req.Ingredients, index, req.Name, req.Flat)
	if err != nil {
		handlers.WriteError(c, err)
		return
	}
	writeEdit(c, flat, list, true)
}

// HandleRemove POST removes the entry at index
func HandleRemove(c *gin.Context) {
	req, ok := bindEdit(c)
	if !ok {
		return
	}
	index, ok := editIndex(c, req)
	if !ok {
		return
	}

	list, flat, err := ingredient.RemoveIngredient(req.Ingredients, index, req.Flat)
	if err != nil {
		handlers.WriteError(c, err)
		return
	}
	writeEdit(c, flat, list, true)
}

// HandleAdd POST adds a main ingredient token
func HandleAdd(c *gin.Context) {
	req, ok := bindEdit(c)
	if !ok {
		return
	}

	main, list, added := ingredient.AddMainIngredient(req.Token, ingredient.ParseMain(req.Flat), req.Ingredients)
	flat := req.Flat
	if added {
		flat = ingredient.JoinMain(main)
	}
	writeEdit(c, flat, list, added)
}
