package models

import (
	"strings"
	"time"
)

type Cookbook struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	OwnerID     int64      `json:"owner_id"`
	CreatedAt   time.Time  `json:"created_at"`
	Recipes     []Recipe   `json:"recipes"`
	Owner       *UserBasic `json:"owner"`
}

// CookbookInput is the body of POST /cookbooks and PUT /cookbooks/{id}.
// On update an absent description or a nil RecipeIDs keeps the stored value.
type CookbookInput struct {
	Title       string         `json:"title"`
	Description OptionalString `json:"description"`
	RecipeIDs   *[]int64       `json:"recipe_ids"`
}

func (in *CookbookInput) Normalize() (field string, ok bool) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return "title", false
	}
	return "", true
}

type CookbookFilter struct {
	Skip   int
	Limit  int
	Search string
}
