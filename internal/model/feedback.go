package model

import "time"

// MaxCommentLength bounds comment content, in characters.
const MaxCommentLength = 500

// Rating score bounds (inclusive).
const (
	MinRatingScore = 1
	MaxRatingScore = 5
)

// Comment is a free-text comment left by a user on a recipe.
// Author is populated on reads and nil when the user no longer exists.
type Comment struct {
	ID        string       `json:"id"`
	UserID    string       `json:"user_id"`
	RecipeID  string       `json:"recipe_id"`
	Content   string       `json:"content"`
	Author    *UserSummary `json:"-"`
	CreatedAt time.Time    `json:"created_at"`
}

// Rating is a 1-5 score left by a user on a recipe.
type Rating struct {
	ID        string       `json:"id"`
	UserID    string       `json:"user_id"`
	RecipeID  string       `json:"recipe_id"`
	Score     int          `json:"score"`
	Author    *UserSummary `json:"-"`
	CreatedAt time.Time    `json:"created_at"`
}

// RecipeFeedback is the per-user merged view of a recipe's comments and ratings.
// Content and Rating are nil when the user left no comment or no rating.
type RecipeFeedback struct {
	UserID  string       `json:"-"`
	User    *UserSummary `json:"user"`
	Content *string      `json:"content"`
	Rating  *int         `json:"rating"`
}

// JoinFeedback groups comments and ratings by user. Output order is first-seen
// order, comments before ratings; a later record from the same user overwrites
// the earlier one.
func JoinFeedback(comments []Comment, ratings []Rating) []RecipeFeedback {
	index := make(map[string]int, len(comments)+len(ratings))
	out := make([]RecipeFeedback, 0, len(comments)+len(ratings))

	slot := func(userID string, author *UserSummary) *RecipeFeedback {
		i, ok := index[userID]
		if !ok {
			i = len(out)
			index[userID] = i
			out = append(out, RecipeFeedback{UserID: userID, User: author})
		}
		if out[i].User == nil && author != nil {
			out[i].User = author
		}
		return &out[i]
	}

	for _, c := range comments {
		content := c.Content
		slot(c.UserID, c.Author).Content = &content
	}
	for _, r := range ratings {
		score := r.Score
		slot(r.UserID, r.Author).Rating = &score
	}

	return out
}
