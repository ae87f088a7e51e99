package recipe

import (
	"context"
	"errors"
	"strings"

	"recipe-manager/internal/core/ingredient"
	"recipe-manager/internal/infrastructure/monitoring"
	"recipe-manager/internal/pkg/common"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var errNegativeAmount = common.NewValidationError("Ingredient amounts must be non-negative numbers")

// Service stored recipes: save, list, delete, search and lookup by name
type Service struct {
	repo      Repository
	nutrition *NutritionResolver
	validate  *validator.Validate
	metrics   *monitoring.Metrics
}

// NewService creates the recipe service
func NewService(repo Repository, nutrition *NutritionResolver, metrics *monitoring.Metrics) *Service {
	return &Service{
		repo:      repo,
		nutrition: nutrition,
		validate:  validator.New(),
		metrics:   metrics,
	}
}

// List returns every stored recipe
func (s *Service) List(ctx context.Context) ([]common.Recipe, error) {
	recipes, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if recipes == nil {
		recipes = []common.Recipe{}
	}
	return recipes, nil
}

// Save inserts (no id) or fully replaces (id) a recipe and returns its id.
// Every main ingredient gets a structured entry before the write, and missing
// or incomplete nutrition is resolved.
func (s *Service) Save(ctx context.Context, req *SaveRequest) (int64, error) {
	if req == nil {
		return 0, common.NewValidationError("Missing required fields")
	}
	if err := s.validate.StructCtx(ctx, req); err != nil {
		common.LogDebug("Save validation failed", zap.Error(err))
		var fields validator.ValidationErrors
		if errors.As(err, &fields) && fields[0].Field() == "AmountG" {
			return 0, errNegativeAmount
		}
		return 0, common.NewValidationError("Missing required fields")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return 0, common.NewValidationError("Recipe name cannot be blank")
	}
	main := ingredient.ParseMain(req.Ingredients)
	if len(main) == 0 {
		return 0, common.NewValidationError("At least one main ingredient is required")
	}
	if req.ID != nil && *req.ID <= 0 {
		return 0, common.NewValidationError("Invalid recipe id")
	}
	for _, ing := range req.Details.Ingredients {
		if !common.ValidAmount(ing.AmountG) {
			return 0, errNegativeAmount
		}
	}

	details := common.RecipeDetails{
		Ingredients:  ingredient.SyncMainFromFlat(req.Ingredients, req.Details.Ingredients),
		Instructions: cleanSteps(req.Details.Instructions),
	}
	if totals, ok := ParseNutrition(req.Details.Nutrition); ok {
		details.Nutrition = totals
	} else {
		common.LogInfo("Resolving nutrition", zap.String("name", name))
		totals := s.nutrition.Resolve(ctx, details.Ingredients)
		details.Nutrition = &totals
	}

	recipe := &common.Recipe{
		Name:        name,
		Ingredients: ingredient.JoinMain(main),
		Details:     details,
	}

	if req.ID != nil {
		recipe.ID = *req.ID
		if err := s.repo.Update(ctx, recipe); err != nil {
			return 0, err
		}
		s.metrics.RecipeSaved("update")
		common.LogInfo("Recipe updated", zap.Int64("id", recipe.ID), zap.String("name", name))
		return recipe.ID, nil
	}

	id, err := s.repo.Create(ctx, recipe)
	if err != nil {
		return 0, err
	}
	s.metrics.RecipeSaved("insert")
	common.LogInfo("Recipe inserted", zap.Int64("id", id), zap.String("name", name))
	return id, nil
}

// Delete removes a recipe permanently
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return common.NewValidationError("Recipe ID is required")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.metrics.RecipeDeleted()
	common.LogInfo("Recipe deleted", zap.Int64("id", id))
	return nil
}

// Instructions returns the stored details of the recipe called name.
// Exists is false when no recipe has that name.
func (s *Service) Instructions(ctx context.Context, name string) (*InstructionsResult, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, common.NewValidationError("Missing recipe name")
	}

	recipe, err := s.repo.FindByName(ctx, name)
	if err != nil {
		if common.IsNotFound(err) {
			return &InstructionsResult{Exists: false}, nil
		}
		return nil, err
	}
	return &InstructionsResult{Exists: true, Instructions: &recipe.Details}, nil
}

// Search returns recipes whose flat ingredients contain every queried token
func (s *Service) Search(ctx context.Context, query string) ([]common.Recipe, error) {
	wanted := ingredient.ParseMain(query)
	if len(wanted) == 0 {
		return nil, common.NewValidationError("No ingredients provided")
	}

	recipes, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	matching := []common.Recipe{}
	for _, r := range recipes {
		if containsAll(r.Ingredients, wanted) {
			matching = append(matching, r)
		}
	}
	return matching, nil
}

// Ping checks the store
func (s *Service) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

func containsAll(flat string, wanted []string) bool {
	for _, w := range wanted {
		if !ingredient.IsMainIngredient(flat, w) {
			return false
		}
	}
	return true
}

// cleanSteps trims every step and drops the blank ones
func cleanSteps(steps []string) []string {
	out := make([]string, 0, len(steps))
	for _, step := range steps {
		if step = strings.TrimSpace(step); step != "" {
			out = append(out, step)
		}
	}
	return out
}
