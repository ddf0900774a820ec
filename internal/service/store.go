package service

import (
	"context"
	"time"

	"github.com/recetario/recetario/internal/model"
)

// The interfaces below are the persistence surface each service depends on.
// *repository.Repository satisfies all of them.

// UserStore persists user accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateUser(ctx context.Context, user *model.User) error
}

// PantryStore persists pantries. UpsertPantryItem must apply the increment
// atomically with respect to concurrent calls for the same user and name.
type PantryStore interface {
	UpsertPantryItem(ctx context.Context, userID, name string, delta float64) (*model.Pantry, bool, error)
	GetPantryByUser(ctx context.Context, userID string) (*model.Pantry, error)
	RemovePantryItem(ctx context.Context, userID, name string) error
	DeletePantryByUser(ctx context.Context, userID string) (*model.Pantry, error)
}

// FeedbackStore persists comments and ratings.
type FeedbackStore interface {
	InsertFeedback(ctx context.Context, comments []model.Comment, ratings []model.Rating) error
	ListCommentsByRecipe(ctx context.Context, recipeID string) ([]model.Comment, error)
	ListRatingsByRecipe(ctx context.Context, recipeID string) ([]model.Rating, error)
}

// RecipeStore persists recipes and favorites.
type RecipeStore interface {
	CreateRecipe(ctx context.Context, recipe *model.Recipe) error
	GetRecipeByID(ctx context.Context, id string) (*model.Recipe, error)
	ListRecipes(ctx context.Context, page, pageSize int) ([]*model.Recipe, error)
	ListRecipesByUser(ctx context.Context, userID string) ([]*model.Recipe, error)
	SearchRecipesByName(ctx context.Context, term string) ([]*model.Recipe, error)
	UpdateRecipe(ctx context.Context, recipe *model.Recipe) error
	DeleteRecipe(ctx context.Context, id string) (*model.Recipe, error)
	ToggleFavorite(ctx context.Context, userID, recipeID string) (*model.Favorite, error)
	ListSavedRecipes(ctx context.Context, userID string) ([]*model.Recipe, error)
}

// IngredientStore persists the ingredient catalog.
type IngredientStore interface {
	CreateIngredient(ctx context.Context, ing *model.Ingredient) error
	DeleteIngredient(ctx context.Context, id string) (*model.Ingredient, error)
	SearchIngredientsByName(ctx context.Context, term string) ([]*model.Ingredient, error)
}

// RecipeCache is an optional read-through cache for single recipes.
type RecipeCache interface {
	GetRecipe(ctx context.Context, id string) (*model.Recipe, error)
	SetRecipe(ctx context.Context, recipe *model.Recipe) error
	DeleteRecipe(ctx context.Context, id string) error
}

// TokenIssuer signs access tokens for authenticated users.
type TokenIssuer interface {
	Issue(userID string) (string, time.Time, error)
}
