package models

import (
	"strings"
	"time"
)

const (
	InstructionsNumbered = "numbered"
	InstructionsPlain    = "plain"

	DefaultDifficulty = "medium"
)

type Ingredient struct {
	Name   string  `json:"name"`
	Amount *string `json:"amount"`
	Unit   *string `json:"unit"`
}

// RecipeInput is the body of POST /recipes and PUT /recipes/{id}.
type RecipeInput struct {
	Title                  string       `json:"title"`
	Ingredients            []Ingredient `json:"ingredients"`
	Instructions           string       `json:"instructions"`
	InstructionsFormat     string       `json:"instructions_format"`
	Country                *string      `json:"country"`
	Type                   *string      `json:"type"`
	ImageURL               *string      `json:"image_url"`
	CookbookID             *int64       `json:"cookbook_id"`
	PreparationTimeMinutes int          `json:"preparation_time_minutes"`
	Difficulty             string       `json:"difficulty"`
	Notes                  *string      `json:"notes"`
}

// Normalize fills in defaults and reports the first invalid field, if any.
func (in *RecipeInput) Normalize() (field string, ok bool) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return "title", false
	}
	if in.Ingredients == nil {
		in.Ingredients = []Ingredient{}
	}
	for _, ing := range in.Ingredients {
		if strings.TrimSpace(ing.Name) == "" {
			return "ingredients.name", false
		}
	}
	switch in.InstructionsFormat {
	case "":
		in.InstructionsFormat = InstructionsNumbered
	case InstructionsNumbered, InstructionsPlain:
	default:
		return "instructions_format", false
	}
	if in.PreparationTimeMinutes < 0 {
		return "preparation_time_minutes", false
	}
	if in.Difficulty == "" {
		in.Difficulty = DefaultDifficulty
	}
	if in.CookbookID != nil && *in.CookbookID == 0 {
		in.CookbookID = nil
	}
	return "", true
}

type Recipe struct {
	ID                     int64        `json:"id"`
	Title                  string       `json:"title"`
	Ingredients            []Ingredient `json:"ingredients"`
	Instructions           string       `json:"instructions"`
	InstructionsFormat     string       `json:"instructions_format"`
	Country                *string      `json:"country"`
	Type                   *string      `json:"type"`
	ImageURL               *string      `json:"image_url"`
	CookbookID             *int64       `json:"cookbook_id"`
	PreparationTimeMinutes int          `json:"preparation_time_minutes"`
	Difficulty             string       `json:"difficulty"`
	Notes                  *string      `json:"notes"`
	OwnerID                int64        `json:"owner_id"`
	CreatedAt              time.Time    `json:"created_at"`
	Owner                  *UserBasic   `json:"owner"`
}

// Apply copies the editable fields of in onto r.
func (r *Recipe) Apply(in RecipeInput) {
	r.Title = in.Title
	r.Ingredients = in.Ingredients
	r.Instructions = in.Instructions
	r.InstructionsFormat = in.InstructionsFormat
	r.Country = in.Country
	r.Type = in.Type
	r.ImageURL = in.ImageURL
	r.CookbookID = in.CookbookID
	r.PreparationTimeMinutes = in.PreparationTimeMinutes
	r.Difficulty = in.Difficulty
	r.Notes = in.Notes
}

type RecipeFilter struct {
	Skip    int
	Limit   int
	Country string
	Type    string
}
