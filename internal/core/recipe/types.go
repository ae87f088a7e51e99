package recipe

import (
	"context"
	"encoding/json"

	"recipe-manager/internal/pkg/common"
)

// Flexibility how far generated recipes may stray from the given ingredients
type Flexibility int

const (
	// FlexibilityStrict only the listed ingredients
	FlexibilityStrict Flexibility = 1
	// FlexibilityModerate up to maxExtras common pantry extras
	FlexibilityModerate Flexibility = 2
	// FlexibilityCreative up to maxExtras extras of any kind
	FlexibilityCreative Flexibility = 3
)

// ParseFlexibility maps a level to a Flexibility; anything unknown is strict
func ParseFlexibility(level int) Flexibility {
	switch Flexibility(level) {
	case FlexibilityModerate, FlexibilityCreative:
		return Flexibility(level)
	default:
		return FlexibilityStrict
	}
}

// SaveRequest body of a save; ID set means update
type SaveRequest struct {
	ID          *int64       `json:"id,omitempty"`
	Name        string       `json:"name" validate:"required"`
	Ingredients string       `json:"ingredients" validate:"required"`
	Details     *SaveDetails `json:"details" validate:"required"`
}

// SaveDetails details as submitted. Nutrition stays raw until it has been
// checked for completeness.
type SaveDetails struct {
	Ingredients  []common.IngredientAmount `json:"ingredients" validate:"required,dive"`
	Instructions []string                  `json:"instructions" validate:"required"`
	Nutrition    json.RawMessage           `json:"nutrition,omitempty"`
}

// InstructionsResult stored details looked up by recipe name
type InstructionsResult struct {
	Exists       bool                  `json:"exists"`
	Instructions *common.RecipeDetails `json:"instructions,omitempty"`
}

// Repository recipe persistence.
// Create returns a conflict error when the name is taken; Update and Delete
// return a not-found error when no row matched; FindByName returns a
// not-found error when the name is unknown.
type Repository interface {
	List(ctx context.Context) ([]common.Recipe, error)
	Create(ctx context.Context, recipe *common.Recipe) (int64, error)
	Update(ctx context.Context, recipe *common.Recipe) error
	Delete(ctx context.Context, id int64) error
	FindByName(ctx context.Context, name string) (*common.Recipe, error)
	Ping(ctx context.Context) error
}
