package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"

	"github.com/recetario/recetario/internal/model"
)

// Common errors for recipe repository operations.
var (
	ErrRecipeNotFound = errors.New("recipe not found")
)

const recipeColumns = `id, name, description, ingredients, prep_time, difficulty, instructions, image, servings, cost, user_id, created_at, updated_at`

// CreateRecipe inserts a new recipe. Returns ErrUserNotFound if the author does not exist.
func (r *Repository) CreateRecipe(ctx context.Context, recipe *model.Recipe) error {
	ingredients, err := json.Marshal(recipe.Ingredients)
	if err != nil {
		return fmt.Errorf("failed to encode ingredients: %w", err)
	}

	query := `
		INSERT INTO recipes (` + recipeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err = r.db.Exec(ctx, query,
		recipe.ID,
		recipe.Name,
		recipe.Description,
		ingredients,
		recipe.PrepTime,
		recipe.Difficulty,
		pq.Array(recipe.Instructions),
		recipe.Image,
		recipe.Servings,
		recipe.Cost,
		recipe.UserID,
		recipe.CreatedAt,
		recipe.UpdatedAt,
	)
	if err != nil {
		if foreignKeyViolation(err) != "" {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to create recipe: %w", err)
	}

	return nil
}

// GetRecipeByID retrieves a recipe by its ID.
func (r *Repository) GetRecipeByID(ctx context.Context, id string) (*model.Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes WHERE id = $1`

	recipe, err := scanRecipe(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRecipeNotFound
		}
		return nil, fmt.Errorf("failed to get recipe by ID: %w", err)
	}

	return recipe, nil
}

// ListRecipes returns one page of recipes, newest first. Pages start at 1.
func (r *Repository) ListRecipes(ctx context.Context, page, pageSize int) ([]*model.Recipe, error) {
	if page < 1 {
		page = 1
	}

	query := `
		SELECT ` + recipeColumns + `
		FROM recipes
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`

	return r.queryRecipes(ctx, query, pageSize, (page-1)*pageSize)
}

// ListRecipesByUser returns recipes authored by userID, newest first.
func (r *Repository) ListRecipesByUser(ctx context.Context, userID string) ([]*model.Recipe, error) {
	query := `
		SELECT ` + recipeColumns + `
		FROM recipes
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`

	return r.queryRecipes(ctx, query, userID)
}

// SearchRecipesByName returns recipes whose name contains term, ignoring case.
func (r *Repository) SearchRecipesByName(ctx context.Context, term string) ([]*model.Recipe, error) {
	query := `
		SELECT ` + recipeColumns + `
		FROM recipes
		WHERE name ILIKE '%' || $1 || '%'
		ORDER BY name, id
	`

	return r.queryRecipes(ctx, query, escapeLike(term))
}

// UpdateRecipe overwrites a recipe's mutable fields.
func (r *Repository) UpdateRecipe(ctx context.Context, recipe *model.Recipe) error {
	ingredients, err := json.Marshal(recipe.Ingredients)
	if err != nil {
		return fmt.Errorf("failed to encode ingredients: %w", err)
	}

	query := `
		UPDATE recipes
		SET name = $2, description = $3, ingredients = $4, prep_time = $5, difficulty = $6,
		    instructions = $7, image = $8, servings = $9, cost = $10, updated_at = $11
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		recipe.ID,
		recipe.Name,
		recipe.Description,
		ingredients,
		recipe.PrepTime,
		recipe.Difficulty,
		pq.Array(recipe.Instructions),
		recipe.Image,
		recipe.Servings,
		recipe.Cost,
		recipe.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update recipe: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrRecipeNotFound
	}

	return nil
}

// DeleteRecipe removes a recipe and returns it as it was before deletion.
func (r *Repository) DeleteRecipe(ctx context.Context, id string) (*model.Recipe, error) {
	query := `DELETE FROM recipes WHERE id = $1 RETURNING ` + recipeColumns

	recipe, err := scanRecipe(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRecipeNotFound
		}
		return nil, fmt.Errorf("failed to delete recipe: %w", err)
	}

	return recipe, nil
}

func (r *Repository) queryRecipes(ctx context.Context, query string, args ...any) ([]*model.Recipe, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	defer rows.Close()

	recipes := make([]*model.Recipe, 0)
	for rows.Next() {
		recipe, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recipe: %w", err)
		}
		recipes = append(recipes, recipe)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recipes: %w", err)
	}

	return recipes, nil
}

// scanRecipe scans a row into a Recipe model. pgx.Rows satisfies pgx.Row.
func scanRecipe(row pgx.Row) (*model.Recipe, error) {
	var (
		recipe      model.Recipe
		ingredients []byte
	)
	err := row.Scan(
		&recipe.ID,
		&recipe.Name,
		&recipe.Description,
		&ingredients,
		&recipe.PrepTime,
		&recipe.Difficulty,
		pq.Array(&recipe.Instructions),
		&recipe.Image,
		&recipe.Servings,
		&recipe.Cost,
		&recipe.UserID,
		&recipe.CreatedAt,
		&recipe.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(ingredients) > 0 {
		if err := json.Unmarshal(ingredients, &recipe.Ingredients); err != nil {
			return nil, fmt.Errorf("failed to decode ingredients: %w", err)
		}
	}

	return &recipe, nil
}
