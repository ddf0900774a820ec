package repository

import (
	"context"
	"fmt"

	"github.com/recetario/recetario/internal/model"
)

// ToggleFavorite flips the saved flag for (userID, recipeID), creating it as
// saved on first use. The flip is a single statement, so concurrent toggles
// never lose an update.
func (r *Repository) ToggleFavorite(ctx context.Context, userID, recipeID string) (*model.Favorite, error) {
	query := `
		INSERT INTO favorites (user_id, recipe_id, saved, created_at, updated_at)
		VALUES ($1, $2, TRUE, NOW(), NOW())
		ON CONFLICT (user_id, recipe_id)
		DO UPDATE SET saved = NOT favorites.saved, updated_at = NOW()
		RETURNING user_id, recipe_id, saved, created_at, updated_at
	`

	var fav model.Favorite
	err := r.db.QueryRow(ctx, query, userID, recipeID).Scan(
		&fav.UserID,
		&fav.RecipeID,
		&fav.Saved,
		&fav.CreatedAt,
		&fav.UpdatedAt,
	)
	if err != nil {
		switch foreignKeyViolation(err) {
		case "":
			return nil, fmt.Errorf("failed to toggle favorite: %w", err)
		case "favorites_recipe_id_fkey":
			return nil, ErrRecipeNotFound
		default:
			return nil, ErrUserNotFound
		}
	}

	return &fav, nil
}

// ListSavedRecipes returns the recipes userID currently has saved, most recently saved first.
func (r *Repository) ListSavedRecipes(ctx context.Context, userID string) ([]*model.Recipe, error) {
	query := `
		SELECT r.id, r.name, r.description, r.ingredients, r.prep_time, r.difficulty, r.instructions,
		       r.image, r.servings, r.cost, r.user_id, r.created_at, r.updated_at
		FROM favorites f
		JOIN recipes r ON r.id = f.recipe_id
		WHERE f.user_id = $1 AND f.saved
		ORDER BY f.updated_at DESC, r.id
	`

	return r.queryRecipes(ctx, query, userID)
}
