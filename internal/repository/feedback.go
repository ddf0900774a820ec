package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/recetario/recetario/internal/model"
)

// InsertFeedback stores a batch of comments and a batch of ratings in one
// transaction: either every record is written or none is.
func (r *Repository) InsertFeedback(ctx context.Context, comments []model.Comment, ratings []model.Rating) error {
	if len(comments) == 0 && len(ratings) == 0 {
		return nil
	}

	return r.WithTx(ctx, func(tx *Repository) error {
		batch := &pgx.Batch{}

		commentQuery := `
			INSERT INTO comments (id, user_id, recipe_id, content, created_at)
			VALUES ($1, $2, $3, $4, $5)
		`
		for _, c := range comments {
			batch.Queue(commentQuery, c.ID, c.UserID, c.RecipeID, c.Content, c.CreatedAt)
		}

		ratingQuery := `
			INSERT INTO ratings (id, user_id, recipe_id, score, created_at)
			VALUES ($1, $2, $3, $4, $5)
		`
		for _, rt := range ratings {
			batch.Queue(ratingQuery, rt.ID, rt.UserID, rt.RecipeID, rt.Score, rt.CreatedAt)
		}

		results := tx.db.SendBatch(ctx, batch)
		defer results.Close()

		total := len(comments) + len(ratings)
		for i := 0; i < total; i++ {
			if _, err := results.Exec(); err != nil {
				return classifyFeedbackError(i, err)
			}
		}

		return results.Close()
	})
}

func classifyFeedbackError(i int, err error) error {
	switch foreignKeyViolation(err) {
	case "":
		return fmt.Errorf("batch insert feedback %d: %w", i, err)
	case "comments_recipe_id_fkey", "ratings_recipe_id_fkey":
		return ErrRecipeNotFound
	default:
		return ErrUserNotFound
	}
}

// ListCommentsByRecipe returns recipeID's comments, oldest first, with author details.
func (r *Repository) ListCommentsByRecipe(ctx context.Context, recipeID string) ([]model.Comment, error) {
	query := `
		SELECT c.id, c.user_id, c.recipe_id, c.content, c.created_at, u.name, u.image
		FROM comments c
		LEFT JOIN users u ON u.id = c.user_id
		WHERE c.recipe_id = $1
		ORDER BY c.created_at, c.id
	`

	rows, err := r.db.Query(ctx, query, recipeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	comments, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Comment, error) {
		var (
			c           model.Comment
			name, image *string
		)
		err := row.Scan(&c.ID, &c.UserID, &c.RecipeID, &c.Content, &c.CreatedAt, &name, &image)
		c.Author = userSummary(name, image)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan comments: %w", err)
	}
	return comments, nil
}

// ListRatingsByRecipe returns recipeID's ratings, oldest first, with author details.
func (r *Repository) ListRatingsByRecipe(ctx context.Context, recipeID string) ([]model.Rating, error) {
	query := `
		SELECT rt.id, rt.user_id, rt.recipe_id, rt.score, rt.created_at, u.name, u.image
		FROM ratings rt
		LEFT JOIN users u ON u.id = rt.user_id
		WHERE rt.recipe_id = $1
		ORDER BY rt.created_at, rt.id
	`

	rows, err := r.db.Query(ctx, query, recipeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ratings: %w", err)
	}

	ratings, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Rating, error) {
		var (
			rt          model.Rating
			name, image *string
		)
		err := row.Scan(&rt.ID, &rt.UserID, &rt.RecipeID, &rt.Score, &rt.CreatedAt, &name, &image)
		rt.Author = userSummary(name, image)
		return rt, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan ratings: %w", err)
	}
	return ratings, nil
}

// userSummary builds author details from a LEFT JOIN; nil when the user row is absent.
func userSummary(name, image *string) *model.UserSummary {
	if name == nil {
		return nil
	}
	s := &model.UserSummary{Name: *name}
	if image != nil {
		s.Image = *image
	}
	return s
}
