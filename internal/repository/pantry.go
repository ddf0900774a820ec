package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/recetario/recetario/internal/model"
)

// Common errors for pantry repository operations.
var (
	ErrPantryNotFound = errors.New("pantry not found")
)

// UpsertPantryItem adds delta to the named ingredient in userID's pantry,
// creating the pantry and the entry as needed. The increment is performed by
// the database in one statement, so concurrent additions to the same entry
// accumulate instead of overwriting each other. It returns the resulting
// pantry and whether the entry was newly created.
func (r *Repository) UpsertPantryItem(ctx context.Context, userID, name string, delta float64) (*model.Pantry, bool, error) {
	var (
		pantry  *model.Pantry
		created bool
	)

	err := r.WithTx(ctx, func(tx *Repository) error {
		headerQuery := `
			INSERT INTO pantries (user_id, created_at, updated_at)
			VALUES ($1, NOW(), NOW())
			ON CONFLICT (user_id) DO UPDATE SET updated_at = NOW()
		`
		if _, err := tx.db.Exec(ctx, headerQuery, userID); err != nil {
			if foreignKeyViolation(err) != "" {
				return ErrUserNotFound
			}
			return fmt.Errorf("failed to upsert pantry: %w", err)
		}

		itemQuery := `
			INSERT INTO pantry_items (user_id, name, quantity, created_at, updated_at)
			VALUES ($1, $2, $3, NOW(), NOW())
			ON CONFLICT (user_id, name)
			DO UPDATE SET quantity = pantry_items.quantity + EXCLUDED.quantity, updated_at = NOW()
			RETURNING (xmax = 0)
		`
		if err := tx.db.QueryRow(ctx, itemQuery, userID, name, delta).Scan(&created); err != nil {
			return fmt.Errorf("failed to upsert pantry item: %w", err)
		}

		var err error
		pantry, err = tx.GetPantryByUser(ctx, userID)
		return err
	})
	if err != nil {
		return nil, false, err
	}

	return pantry, created, nil
}

// GetPantryByUser returns userID's pantry with entries in insertion order.
func (r *Repository) GetPantryByUser(ctx context.Context, userID string) (*model.Pantry, error) {
	pantry := &model.Pantry{UserID: userID}

	headerQuery := `SELECT created_at, updated_at FROM pantries WHERE user_id = $1`
	if err := r.db.QueryRow(ctx, headerQuery, userID).Scan(&pantry.CreatedAt, &pantry.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPantryNotFound
		}
		return nil, fmt.Errorf("failed to get pantry: %w", err)
	}

	itemsQuery := `
		SELECT name, quantity
		FROM pantry_items
		WHERE user_id = $1
		ORDER BY id
	`
	rows, err := r.db.Query(ctx, itemsQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pantry items: %w", err)
	}

	pantry.Entries, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.PantryEntry, error) {
		var e model.PantryEntry
		err := row.Scan(&e.Name, &e.Quantity)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan pantry items: %w", err)
	}

	return pantry, nil
}

// RemovePantryItem deletes the named entry from userID's pantry.
// Removing a name that is not in the pantry succeeds; a missing pantry does not.
func (r *Repository) RemovePantryItem(ctx context.Context, userID, name string) error {
	return r.WithTx(ctx, func(tx *Repository) error {
		touch := `UPDATE pantries SET updated_at = NOW() WHERE user_id = $1`
		result, err := tx.db.Exec(ctx, touch, userID)
		if err != nil {
			return fmt.Errorf("failed to lock pantry: %w", err)
		}
		if result.RowsAffected() == 0 {
			return ErrPantryNotFound
		}

		if _, err := tx.db.Exec(ctx, `DELETE FROM pantry_items WHERE user_id = $1 AND name = $2`, userID, name); err != nil {
			return fmt.Errorf("failed to remove pantry item: %w", err)
		}
		return nil
	})
}

// DeletePantryByUser removes userID's whole pantry and returns its last state.
func (r *Repository) DeletePantryByUser(ctx context.Context, userID string) (*model.Pantry, error) {
	var pantry *model.Pantry

	err := r.WithTx(ctx, func(tx *Repository) error {
		var err error
		pantry, err = tx.GetPantryByUser(ctx, userID)
		if err != nil {
			return err
		}

		result, err := tx.db.Exec(ctx, `DELETE FROM pantries WHERE user_id = $1`, userID)
		if err != nil {
			return fmt.Errorf("failed to delete pantry: %w", err)
		}
		if result.RowsAffected() == 0 {
			return ErrPantryNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return pantry, nil
}
