package api

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/recetario/internal/client/models"
)

// RecipePDF downloads the printable document of a recipe.
func (c *Client) RecipePDF(ctx context.Context, id int64) ([]byte, error) {
	return c.send(ctx, http.MethodGet, c.endpoint(recipePath(id)+"/pdf", nil), nil, "")
}

// CookbookPDF has the server render and store the cookbook document and
// returns the URL it can be fetched from.
func (c *Client) CookbookPDF(ctx context.Context, id int64) (string, error) {
	var out models.UploadedImage
	if err := c.getJSON(ctx, cookbookPath(id)+"/pdf", nil, &out); err != nil {
		return "", err
	}
	return out.URL, nil
}
