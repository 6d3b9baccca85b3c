package models

import "time"

type Cookbook struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	OwnerID     int64      `json:"owner_id"`
	CreatedAt   time.Time  `json:"created_at"`
	Recipes     []Recipe   `json:"recipes"`
	Owner       *UserBasic `json:"owner"`
}

// RecipeIDs lists the ids of the recipes currently in the cookbook.
func (c Cookbook) RecipeIDs() []int64 {
	ids := make([]int64, 0, len(c.Recipes))
	for _, r := range c.Recipes {
		ids = append(ids, r.ID)
	}
	return ids
}

type CookbookCreateInput struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	RecipeIDs   []int64 `json:"recipe_ids"`
}

// CookbookUpdateInput leaves the recipe set untouched when RecipeIDs is nil
// and replaces it otherwise.
type CookbookUpdateInput struct {
	Title       string   `json:"title"`
	Description *string  `json:"description,omitempty"`
	RecipeIDs   *[]int64 `json:"recipe_ids,omitempty"`
}

type CookbookFilter struct {
	Skip   int
	Limit  int
	Search string
}

// UploadedImage is the body of a successful POST /upload and of
// GET /cookbooks/{id}/pdf.
type UploadedImage struct {
	URL string `json:"url"`
}
