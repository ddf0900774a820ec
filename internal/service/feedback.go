package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/oklog/ulid/v2"
	"golang.org/x/sync/errgroup"

	"github.com/recetario/recetario/internal/metrics"
	"github.com/recetario/recetario/internal/model"
	"github.com/recetario/recetario/internal/repository"
)

// FeedbackService stores and joins a recipe's comments and ratings.
type FeedbackService struct {
	store   FeedbackStore
	metrics metrics.Recorder
	now     func() time.Time
}

// NewFeedbackService creates a new FeedbackService.
func NewFeedbackService(store FeedbackStore, recorder metrics.Recorder) *FeedbackService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &FeedbackService{
		store:   store,
		metrics: recorder,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// GetCommentsAndRatings returns one record per user who commented on or
// rated recipeID. Users with only a comment have a nil Rating and vice versa.
func (s *FeedbackService) GetCommentsAndRatings(ctx context.Context, recipeID string) ([]model.RecipeFeedback, error) {
	if err := validateID("recipe_id", recipeID); err != nil {
		return nil, err
	}

	var (
		comments []model.Comment
		ratings  []model.Rating
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		comments, err = s.store.ListCommentsByRecipe(gctx, recipeID)
		return err
	})
	g.Go(func() error {
		var err error
		ratings, err = s.store.ListRatingsByRecipe(gctx, recipeID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, storageErr("list feedback", err)
	}

	return model.JoinFeedback(comments, ratings), nil
}

// CommentInput is one comment in a batch. An empty RecipeID means the batch recipe.
type CommentInput struct {
	UserID   string
	RecipeID string
	Content  string
}

// RatingInput is one rating in a batch. An empty RecipeID means the batch recipe.
type RatingInput struct {
	UserID   string
	RecipeID string
	Score    int
}

// AddFeedbackInput is a batch of comments and ratings for one recipe.
type AddFeedbackInput struct {
	RecipeID string
	Comments []CommentInput
	Ratings  []RatingInput
}

// FeedbackBatch is what AddCommentsAndRatings stored.
type FeedbackBatch struct {
	Comments []model.Comment
	Ratings  []model.Rating
}

// AddCommentsAndRatings validates and stores both batches atomically: when
// any record fails, nothing is stored.
func (s *FeedbackService) AddCommentsAndRatings(ctx context.Context, input AddFeedbackInput) (*FeedbackBatch, error) {
	if err := validateID("recipe_id", input.RecipeID); err != nil {
		return nil, err
	}
	if len(input.Comments) == 0 && len(input.Ratings) == 0 {
		return nil, invalid("comments", "at least one comment or rating is required")
	}

	now := s.now()
	batch := &FeedbackBatch{
		Comments: make([]model.Comment, 0, len(input.Comments)),
		Ratings:  make([]model.Rating, 0, len(input.Ratings)),
	}

	for _, c := range input.Comments {
		if err := validateID("comments.user_id", c.UserID); err != nil {
			return nil, err
		}
		if err := sameRecipe("comments.recipe_id", c.RecipeID, input.RecipeID); err != nil {
			return nil, err
		}
		content := strings.TrimSpace(c.Content)
		if n := utf8.RuneCountInString(content); n < 1 || n > model.MaxCommentLength {
			return nil, invalid("comments.content", "must be between 1 and %d characters", model.MaxCommentLength)
		}

		batch.Comments = append(batch.Comments, model.Comment{
			ID:        ulid.Make().String(),
			UserID:    c.UserID,
			RecipeID:  input.RecipeID,
			Content:   content,
			CreatedAt: now,
		})
	}

	for _, r := range input.Ratings {
		if err := validateID("ratings.user_id", r.UserID); err != nil {
			return nil, err
		}
		if err := sameRecipe("ratings.recipe_id", r.RecipeID, input.RecipeID); err != nil {
			return nil, err
		}
		if r.Score < model.MinRatingScore || r.Score > model.MaxRatingScore {
			return nil, invalid("ratings.score", "must be between %d and %d", model.MinRatingScore, model.MaxRatingScore)
		}

		batch.Ratings = append(batch.Ratings, model.Rating{
			ID:        ulid.Make().String(),
			UserID:    r.UserID,
			RecipeID:  input.RecipeID,
			Score:     r.Score,
			CreatedAt: now,
		})
	}

	if err := s.store.InsertFeedback(ctx, batch.Comments, batch.Ratings); err != nil {
		switch {
		case errors.Is(err, repository.ErrRecipeNotFound):
			return nil, ErrRecipeNotFound
		case errors.Is(err, repository.ErrUserNotFound):
			return nil, ErrUserNotFound
		default:
			return nil, storageErr("insert feedback", err)
		}
	}

	s.metrics.IncFeedbackBatch()

	return batch, nil
}

func sameRecipe(field, got, want string) error {
	if got != "" && got != want {
		return invalid(field, "must match the recipe in the path")
	}
	return nil
}
