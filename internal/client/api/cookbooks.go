package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/recetario/internal/client/models"
)

func (c *Client) ListCookbooks(ctx context.Context, f models.CookbookFilter) ([]models.Cookbook, error) {
	q := url.Values{}
	if f.Skip > 0 {
		q.Set("skip", strconv.Itoa(f.Skip))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}

	var out []models.Cookbook
	if err := c.getJSON(ctx, "/cookbooks", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetCookbook(ctx context.Context, id int64) (*models.Cookbook, error) {
	var out models.Cookbook
	if err := c.getJSON(ctx, cookbookPath(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateCookbook(ctx context.Context, in models.CookbookCreateInput) (*models.Cookbook, error) {
	if in.RecipeIDs == nil {
		in.RecipeIDs = []int64{}
	}
	var out models.Cookbook
	if err := c.sendJSON(ctx, http.MethodPost, "/cookbooks", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateCookbook(ctx context.Context, id int64, in models.CookbookUpdateInput) (*models.Cookbook, error) {
	var out models.Cookbook
	if err := c.sendJSON(ctx, http.MethodPut, cookbookPath(id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteCookbook(ctx context.Context, id int64) error {
	return c.sendJSON(ctx, http.MethodDelete, cookbookPath(id), nil, nil)
}

func cookbookPath(id int64) string {
	return fmt.Sprintf("/cookbooks/%d", id)
}
