package model

import "time"

// RecipeIngredient is one line of a recipe's ingredient list.
// Quantity is free text ("2 cups", "a pinch").
type RecipeIngredient struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
}

// Recipe represents a user-authored recipe.
type Recipe struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Description  string             `json:"description"`
	Ingredients  []RecipeIngredient `json:"ingredients"`
	PrepTime     string             `json:"prep_time"`
	Difficulty   string             `json:"difficulty"`
	Instructions []string           `json:"instructions"`
	Image        string             `json:"image"`
	Servings     int                `json:"servings"`
	Cost         string             `json:"cost"`
	UserID       string             `json:"user_id"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// RecipePageSize is the number of recipes returned per listing page.
const RecipePageSize = 16

// Favorite records whether a user has saved a recipe.
type Favorite struct {
	UserID    string    `json:"user_id"`
	RecipeID  string    `json:"recipe_id"`
	Saved     bool      `json:"favorite"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
