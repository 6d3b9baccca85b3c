package models

import "time"

const (
	InstructionsNumbered = "numbered"
	InstructionsPlain    = "plain"

	DefaultDifficulty = "medium"
)

type Ingredient struct {
	Name   string  `json:"name"`
	Amount *string `json:"amount,omitempty"`
	Unit   *string `json:"unit,omitempty"`
}

// RecipeInput is the body of POST /recipes and PUT /recipes/{id}.
type RecipeInput struct {
	Title                  string       `json:"title"`
	Ingredients            []Ingredient `json:"ingredients"`
	Instructions           string       `json:"instructions"`
	InstructionsFormat     string       `json:"instructions_format"`
	Country                *string      `json:"country,omitempty"`
	Type                   *string      `json:"type,omitempty"`
	ImageURL               *string      `json:"image_url,omitempty"`
	CookbookID             *int64       `json:"cookbook_id,omitempty"`
	PreparationTimeMinutes int          `json:"preparation_time_minutes"`
	Difficulty             string       `json:"difficulty"`
	Notes                  *string      `json:"notes,omitempty"`
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

// Input converts a fetched recipe back into an editable payload.
func (r Recipe) Input() RecipeInput {
	return RecipeInput{
		Title:                  r.Title,
		Ingredients:            append([]Ingredient(nil), r.Ingredients...),
		Instructions:           r.Instructions,
		InstructionsFormat:     r.InstructionsFormat,
		Country:                r.Country,
		Type:                   r.Type,
		ImageURL:               r.ImageURL,
		CookbookID:             r.CookbookID,
		PreparationTimeMinutes: r.PreparationTimeMinutes,
		Difficulty:             r.Difficulty,
		Notes:                  r.Notes,
	}
}

// RecipeFilter holds the query parameters of GET /recipes. Zero values are
// omitted from the request.
type RecipeFilter struct {
	Skip    int
	Limit   int
	Country string
	Type    string
}
