package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"recipe-manager/internal/infrastructure/monitoring"
	"recipe-manager/internal/pkg/common"

	"gorm.io/gorm"
)

// RecipeRepository recipe persistence on gorm
type RecipeRepository struct {
	db      *gorm.DB
	metrics *monitoring.Metrics
}

// NewRecipeRepository creates the repository; metrics may be nil
func NewRecipeRepository(db *gorm.DB, metrics *monitoring.Metrics) *RecipeRepository {
	return &RecipeRepository{
		db:      db,
		metrics: metrics,
	}
}

// List returns all recipes in id order
func (r *RecipeRepository) List(ctx context.Context) ([]common.Recipe, error) {
	defer r.observe("list", time.Now())

	var models []RecipeModel
	if err := r.db.WithContext(ctx).Order("id").Find(&models).Error; err != nil {
		return nil, common.NewStoreError(err)
	}

	recipes := make([]common.Recipe, 0, len(models))
	for i := range models {
		recipe, err := ModelToRecipe(&models[i])
		if err != nil {
			return nil, common.NewStoreError(err)
		}
		recipes = append(recipes, *recipe)
	}
	return recipes, nil
}

// Create inserts a recipe and returns its new id
func (r *RecipeRepository) Create(ctx context.Context, recipe *common.Recipe) (int64, error) {
	defer r.observe("create", time.Now())

	model, err := RecipeToModel(recipe)
	if err != nil {
		return 0, common.NewStoreError(err)
	}
	model.ID = 0
	model.CreatedAt = time.Time{}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := nameTaken(tx, model.Name, 0)
		if err != nil {
			return err
		}
		if taken {
			return common.NewConflictError("recipe name already exists")
		}
		return tx.Create(model).Error
	})
	if err != nil {
		return 0, translateError(err)
	}

	recipe.ID = model.ID
	recipe.CreatedAt = model.CreatedAt
	return model.ID, nil
}

// Update replaces name, ingredients and details of an existing row.
// created_at is never touched.
func (r *RecipeRepository) Update(ctx context.Context, recipe *common.Recipe) error {
	defer r.observe("update", time.Now())

	model, err := RecipeToModel(recipe)
	if err != nil {
		return common.NewStoreError(err)
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := nameTaken(tx, model.Name, model.ID)
		if err != nil {
			return err
		}
		if taken {
			return common.NewConflictError("recipe name already exists")
		}

		result := tx.Model(&RecipeModel{}).
			Where("id = ?", model.ID).
			Updates(map[string]interface{}{
				"name":        model.Name,
				"ingredients": model.Ingredients,
				"details":     model.Details,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return common.NewNotFoundError("Recipe not found")
		}
		return nil
	})
	return translateError(err)
}

// Delete removes a row permanently
func (r *RecipeRepository) Delete(ctx context.Context, id int64) error {
	defer r.observe("delete", time.Now())

	result := r.db.WithContext(ctx).Delete(&RecipeModel{}, "id = ?", id)
	if result.Error != nil {
		return common.NewStoreError(result.Error)
	}
	if result.RowsAffected == 0 {
		return common.NewNotFoundError("Recipe not found")
	}
	return nil
}

// FindByName looks a recipe up by its exact name
func (r *RecipeRepository) FindByName(ctx context.Context, name string) (*common.Recipe, error) {
	defer r.observe("find_by_name", time.Now())

	var model RecipeModel
	result := r.db.WithContext(ctx).Where("name = ?", name).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, common.NewNotFoundError("Recipe not found")
		}
		return nil, common.NewStoreError(result.Error)
	}

	recipe, err := ModelToRecipe(&model)
	if err != nil {
		return nil, common.NewStoreError(err)
	}
	return recipe, nil
}

// Count number of stored recipes
func (r *RecipeRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&RecipeModel{}).Count(&count).Error; err != nil {
		return 0, common.NewStoreError(err)
	}
	return count, nil
}

// Ping checks the connection
func (r *RecipeRepository) Ping(ctx context.Context) error {
	if err := Ping(ctx, r.db); err != nil {
		return common.NewStoreError(err)
	}
	return nil
}

func (r *RecipeRepository) observe(operation string, start time.Time) {
	r.metrics.DBQuery(operation, time.Since(start))
}

func nameTaken(tx *gorm.DB, name string, exceptID int64) (bool, error) {
	var count int64
	query := tx.Model(&RecipeModel{}).Where("name = ?", name)
	if exceptID != 0 {
		query = query.Where("id <> ?", exceptID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// translateError keeps domain errors and maps driver failures to store errors
func translateError(err error) error {
	if err == nil {
		return nil
	}
	var ce *common.CustomError
	if errors.As(err, &ce) {
		return err
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return common.NewConflictError("recipe name already exists")
	}
	return common.NewStoreError(err)
}
