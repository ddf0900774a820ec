package dto

import "github.com/recetario/recetario/internal/model"

// RecipeRequest is the body for creating (all fields) or patching (any subset) a recipe.
type RecipeRequest struct {
	Name         *string                  `json:"name,omitempty"`
	Description  *string                  `json:"description,omitempty"`
	Ingredients  []model.RecipeIngredient `json:"ingredients,omitempty"`
	PrepTime     *string                  `json:"prep_time,omitempty"`
	Difficulty   *string                  `json:"difficulty,omitempty"`
	Instructions []string                 `json:"instructions,omitempty"`
	Image        *string                  `json:"image,omitempty"`
	Servings     *int                     `json:"servings,omitempty"`
	Cost         *string                  `json:"cost,omitempty"`
	UserID       string                   `json:"user_id,omitempty"`
}

// IngredientRequest is the body for adding a catalog ingredient.
type IngredientRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Image    string `json:"image"`
}
