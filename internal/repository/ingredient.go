package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/recetario/recetario/internal/model"
)

// Common errors for ingredient repository operations.
var (
	ErrIngredientNotFound = errors.New("ingredient not found")
)

const ingredientColumns = `id, name, category, image, created_at`

// CreateIngredient inserts a catalog ingredient.
func (r *Repository) CreateIngredient(ctx context.Context, ing *model.Ingredient) error {
	query := `INSERT INTO ingredients (` + ingredientColumns + `) VALUES ($1, $2, $3, $4, $5)`

	if _, err := r.db.Exec(ctx, query, ing.ID, ing.Name, ing.Category, ing.Image, ing.CreatedAt); err != nil {
		return fmt.Errorf("failed to create ingredient: %w", err)
	}
	return nil
}

// DeleteIngredient removes a catalog ingredient and returns it.
func (r *Repository) DeleteIngredient(ctx context.Context, id string) (*model.Ingredient, error) {
	query := `DELETE FROM ingredients WHERE id = $1 RETURNING ` + ingredientColumns

	var ing model.Ingredient
	err := r.db.QueryRow(ctx, query, id).Scan(&ing.ID, &ing.Name, &ing.Category, &ing.Image, &ing.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrIngredientNotFound
		}
		return nil, fmt.Errorf("failed to delete ingredient: %w", err)
	}
	return &ing, nil
}

// SearchIngredientsByName returns catalog ingredients whose name contains term, ignoring case.
func (r *Repository) SearchIngredientsByName(ctx context.Context, term string) ([]*model.Ingredient, error) {
	query := `
		SELECT ` + ingredientColumns + `
		FROM ingredients
		WHERE name ILIKE '%' || $1 || '%'
		ORDER BY name, id
	`

	rows, err := r.db.Query(ctx, query, escapeLike(term))
	if err != nil {
		return nil, fmt.Errorf("failed to search ingredients: %w", err)
	}

	ingredients, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*model.Ingredient, error) {
		var ing model.Ingredient
		err := row.Scan(&ing.ID, &ing.Name, &ing.Category, &ing.Image, &ing.CreatedAt)
		return &ing, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan ingredients: %w", err)
	}
	return ingredients, nil
}
