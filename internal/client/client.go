// Package client is a thin HTTP client for the recipe API.
package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	recipeService "recipe-manager/internal/core/recipe"
	"recipe-manager/internal/pkg/common"

	"github.com/go-resty/resty/v2"
)

// DefaultTimeout per-request timeout of the client
const DefaultTimeout = 10 * time.Second

// ErrTimeout the server did not answer within the timeout
var ErrTimeout = errors.New("request timed out")

// APIError a non-2xx answer from the server
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s (%d %s)", e.Message, e.Status, e.Code)
	}
	return fmt.Sprintf("%s (%d)", e.Message, e.Status)
}

// IsNotFound reports whether err is a 404 from the server
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// Client recipe API client
type Client struct {
	http *resty.Client
}

// New creates a client for baseURL; timeout <= 0 uses DefaultTimeout
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		http: resty.New().
			SetBaseURL(strings.TrimRight(baseURL, "/")).
			SetHeader("Accept", "application/json").
			SetTimeout(timeout).
			SetRetryCount(0),
	}
}

// do runs req and maps transport and status failures
func (c *Client) do(req *resty.Request, method, path string) error {
	var apiErr common.ErrorResponse
	resp, err := req.SetError(&apiErr).Execute(method, path)
	if err != nil {
		if common.IsTimeout(err) {
			return ErrTimeout
		}
		return fmt.Errorf("request failed: %w", err)
	}
	if resp.IsError() {
		msg := apiErr.Message
		if msg == "" {
			msg = strings.TrimSpace(resp.String())
		}
		if msg == "" {
			msg = http.StatusText(resp.StatusCode())
		}
		return &APIError{Status: resp.StatusCode(), Code: apiErr.Code, Message: msg}
	}
	return nil
}

func (c *Client) request(ctx context.Context) *resty.Request {
	return c.http.R().SetContext(ctx)
}

// List all stored recipes
func (c *Client) List(ctx context.Context) ([]common.Recipe, error) {
	var recipes []common.Recipe
	if err := c.do(c.request(ctx).SetResult(&recipes), http.MethodGet, "/api/v1/recipes"); err != nil {
		return nil, err
	}
	return recipes, nil
}

// Get finds a stored recipe by id
func (c *Client) Get(ctx context.Context, id int64) (*common.Recipe, error) {
	recipes, err := c.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range recipes {
		if recipes[i].ID == id {
			return &recipes[i], nil
		}
	}
	return nil, &APIError{Status: http.StatusNotFound, Code: common.ErrCodeNotFound, Message: "Recipe not found"}
}

// Search recipes containing every ingredient in the comma-separated query
func (c *Client) Search(ctx context.Context, ingredients string) ([]common.Recipe, error) {
	var recipes []common.Recipe
	req := c.request(ctx).
		SetQueryParam("ingredients", ingredients).
		SetResult(&recipes)
	if err := c.do(req, http.MethodGet, "/api/v1/recipes/search"); err != nil {
		return nil, err
	}
	return recipes, nil
}

// Save inserts or (with ID) updates a recipe and returns its id
func (c *Client) Save(ctx context.Context, save *recipeService.SaveRequest) (int64, error) {
	var result struct {
		Success bool  `json:"success"`
		ID      int64 `json:"id"`
	}
	req := c.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(save).
		SetResult(&result)
	if err := c.do(req, http.MethodPost, "/api/v1/recipes"); err != nil {
		return 0, err
	}
	return result.ID, nil
}

// SaveRecipe writes back a stored recipe under its id
func (c *Client) SaveRecipe(ctx context.Context, r *common.Recipe) (int64, error) {
	id := r.ID
	save := &recipeService.SaveRequest{
		ID:          &id,
		Name:        r.Name,
		Ingredients: r.Ingredients,
		Details: &recipeService.SaveDetails{
			Ingredients:  r.Details.Ingredients,
			Instructions: r.Details.Instructions,
		},
	}
	if save.Details.Ingredients == nil {
		save.Details.Ingredients = []common.IngredientAmount{}
	}
	if save.Details.Instructions == nil {
		save.Details.Instructions = []string{}
	}
	if r.Details.Nutrition != nil {
		raw, err := common.ToJSON(r.Details.Nutrition)
		if err != nil {
			return 0, err
		}
		save.Details.Nutrition = []byte(raw)
	}
	return c.Save(ctx, save)
}

// Delete removes a recipe by id
func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.do(c.request(ctx), http.MethodDelete, "/api/v1/recipes/"+strconv.FormatInt(id, 10))
}

// Instructions stored details for a recipe name
func (c *Client) Instructions(ctx context.Context, name string) (*recipeService.InstructionsResult, error) {
	var result recipeService.InstructionsResult
	req := c.request(ctx).
		SetQueryParam("name", name).
		SetResult(&result)
	if err := c.do(req, http.MethodGet, "/api/v1/recipes/instructions"); err != nil {
		return nil, err
	}
	return &result, nil
}

// SuggestRecipes asks the server for AI recipe ideas
func (c *Client) SuggestRecipes(ctx context.Context, ingredients string, flexibility, maxExtras int) ([]common.Suggestion, error) {
	var suggestions []common.Suggestion
	req := c.request(ctx).
		SetQueryParams(map[string]string{
			"ingredients": ingredients,
			"flexibility": strconv.Itoa(flexibility),
			"maxExtras":   strconv.Itoa(maxExtras),
		}).
		SetResult(&suggestions)
	if err := c.do(req, http.MethodGet, "/api/v1/ai/recipes"); err != nil {
		return nil, err
	}
	return suggestions, nil
}

// GenerateDetails asks the server for AI-generated details
func (c *Client) GenerateDetails(ctx context.Context, name, ingredients string) (*common.RecipeDetails, error) {
	var details common.RecipeDetails
	req := c.request(ctx).
		SetQueryParams(map[string]string{
			"name":        name,
			"ingredients": ingredients,
		}).
		SetResult(&details)
	if err := c.do(req, http.MethodGet, "/api/v1/ai/instructions"); err != nil {
		return nil, err
	}
	return &details, nil
}
