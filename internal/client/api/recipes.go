package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/recetario/internal/client/models"
)

func (c *Client) ListRecipes(ctx context.Context, f models.RecipeFilter) ([]models.Recipe, error) {
	q := url.Values{}
	if f.Skip > 0 {
		q.Set("skip", strconv.Itoa(f.Skip))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Country != "" {
		q.Set("country", f.Country)
	}
	if f.Type != "" {
		q.Set("type", f.Type)
	}

	var out []models.Recipe
	if err := c.getJSON(ctx, "/recipes", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetRecipe(ctx context.Context, id int64) (*models.Recipe, error) {
	var out models.Recipe
	if err := c.getJSON(ctx, recipePath(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateRecipe(ctx context.Context, in models.RecipeInput) (*models.Recipe, error) {
	var out models.Recipe
	if err := c.sendJSON(ctx, http.MethodPost, "/recipes", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateRecipe(ctx context.Context, id int64, in models.RecipeInput) (*models.Recipe, error) {
	var out models.Recipe
	if err := c.sendJSON(ctx, http.MethodPut, recipePath(id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteRecipe(ctx context.Context, id int64) error {
	return c.sendJSON(ctx, http.MethodDelete, recipePath(id), nil, nil)
}

func recipePath(id int64) string {
	return fmt.Sprintf("/recipes/%d", id)
}
