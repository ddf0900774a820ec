package dto

import (
	"github.com/recetario/recetario/internal/model"
	"github.com/recetario/recetario/internal/service"
)

// CommentRequest is one comment in a feedback batch.
type CommentRequest struct {
	UserID   string `json:"user_id"`
	RecipeID string `json:"recipe_id,omitempty"`
	Content  string `json:"content"`
}

// RatingRequest is one rating in a feedback batch.
type RatingRequest struct {
	UserID   string `json:"user_id"`
	RecipeID string `json:"recipe_id,omitempty"`
	Score    int    `json:"score"`
}

// FeedbackRequest is a batch of comments and ratings for one recipe.
type FeedbackRequest struct {
	Comments []CommentRequest `json:"comments"`
	Ratings  []RatingRequest  `json:"ratings"`
}

// UserIDs returns every user id referenced by the batch.
func (r *FeedbackRequest) UserIDs() []string {
	ids := make([]string, 0, len(r.Comments)+len(r.Ratings))
	for _, c := range r.Comments {
		ids = append(ids, c.UserID)
	}
	for _, rt := range r.Ratings {
		ids = append(ids, rt.UserID)
	}
	return ids
}

// ToInput converts the request to service input for recipeID.
func (r *FeedbackRequest) ToInput(recipeID string) service.AddFeedbackInput {
	in := service.AddFeedbackInput{
		RecipeID: recipeID,
		Comments: make([]service.CommentInput, 0, len(r.Comments)),
		Ratings:  make([]service.RatingInput, 0, len(r.Ratings)),
	}
	for _, c := range r.Comments {
		in.Comments = append(in.Comments, service.CommentInput(c))
	}
	for _, rt := range r.Ratings {
		in.Ratings = append(in.Ratings, service.RatingInput(rt))
	}
	return in
}

// FeedbackBatchResponse reports what was stored.
type FeedbackBatchResponse struct {
	Comments []model.Comment `json:"comments"`
	Ratings  []model.Rating  `json:"ratings"`
}
