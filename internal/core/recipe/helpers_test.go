package recipe

import (
	"context"
	"sort"
	"sync"
	"time"

	"recipe-manager/internal/pkg/common"
)

// stubOracle canned oracle answers
type stubOracle struct {
	nutrition   *common.NutritionTotals
	suggestions []common.Suggestion
	details     *common.RecipeDetails
	err         error

	nutritionCalls  int
	lastFlexibility Flexibility
	lastMaxExtras   int
}

func (o *stubOracle) EstimateNutrition(ctx context.Context, ingredients []common.IngredientAmount) (*common.NutritionTotals, error) {
	o.nutritionCalls++
	if o.err != nil {
		return nil, o.err
	}
	return o.nutrition, nil
}

func (o *stubOracle) GenerateRecipes(ctx context.Context, ingredients string, flexibility Flexibility, maxExtras int) ([]common.Suggestion, error) {
	o.lastFlexibility = flexibility
	o.lastMaxExtras = maxExtras
	if o.err != nil {
		return nil, o.err
	}
	return o.suggestions, nil
}

func (o *stubOracle) GenerateDetails(ctx context.Context, name, ingredients string) (*common.RecipeDetails, error) {
	if o.err != nil {
		return nil, o.err
	}
	return o.details, nil
}

// memoryRepo in-memory Repository with the store's conflict and not-found rules
type memoryRepo struct {
	mu     sync.Mutex
	rows   map[int64]common.Recipe
	nextID int64
	err    error
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{rows: make(map[int64]common.Recipe), nextID: 1}
}

func (r *memoryRepo) List(ctx context.Context) ([]common.Recipe, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := make([]common.Recipe, 0, len(r.rows))
	for _, row := range r.rows {
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memoryRepo) Create(ctx context.Context, recipe *common.Recipe) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return 0, r.err
	}
	for _, row := range r.rows {
		if row.Name == recipe.Name {
			return 0, common.NewConflictError("recipe name already exists")
		}
	}
	stored := *recipe
	stored.ID = r.nextID
	stored.CreatedAt = time.Now()
	r.rows[stored.ID] = stored
	r.nextID++
	return stored.ID, nil
}

func (r *memoryRepo) Update(ctx context.Context, recipe *common.Recipe) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	existing, ok := r.rows[recipe.ID]
	if !ok {
		return common.NewNotFoundError("Recipe not found")
	}
	for id, row := range r.rows {
		if id != recipe.ID && row.Name == recipe.Name {
			return common.NewConflictError("recipe name already exists")
		}
	}
	stored := *recipe
	stored.CreatedAt = existing.CreatedAt
	r.rows[recipe.ID] = stored
	return nil
}

func (r *memoryRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	if _, ok := r.rows[id]; !ok {
		return common.NewNotFoundError("Recipe not found")
	}
	delete(r.rows, id)
	return nil
}

func (r *memoryRepo) FindByName(ctx context.Context, name string) (*common.Recipe, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, row := range r.rows {
		if row.Name == name {
			found := row
			return &found, nil
		}
	}
	return nil, common.NewNotFoundError("Recipe not found")
}

func (r *memoryRepo) Ping(ctx context.Context) error {
	return r.err
}

func (r *memoryRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

// fakeGenerator returns a fixed reply and records the last prompt
type fakeGenerator struct {
	reply   string
	err     error
	purpose string
	system  string
	prompt  string
}

func (g *fakeGenerator) ProcessRequest(ctx context.Context, purpose, system, prompt string) (string, error) {
	g.purpose = purpose
	g.system = system
	g.prompt = prompt
	return g.reply, g.err
}
