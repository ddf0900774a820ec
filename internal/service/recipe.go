package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/recetario/recetario/internal/metrics"
	"github.com/recetario/recetario/internal/model"
	"github.com/recetario/recetario/internal/repository"
)

// RecipeService handles recipe business logic and favorites.
type RecipeService struct {
	store   RecipeStore
	cache   RecipeCache
	metrics metrics.Recorder
	now     func() time.Time
}

// NewRecipeService creates a new RecipeService. cache may be nil.
func NewRecipeService(store RecipeStore, cache RecipeCache, recorder metrics.Recorder) *RecipeService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &RecipeService{
		store:   store,
		cache:   cache,
		metrics: recorder,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// RecipeInput defines the fields of a recipe. For updates, nil pointers are
// left unchanged; for creation every field is required.
type RecipeInput struct {
	Name         *string
	Description  *string
	Ingredients  []model.RecipeIngredient
	PrepTime     *string
	Difficulty   *string
	Instructions []string
	Image        *string
	Servings     *int
	Cost         *string
	UserID       string
}

// CreateRecipe validates and stores a new recipe for an existing user.
func (s *RecipeService) CreateRecipe(ctx context.Context, input RecipeInput) (*model.Recipe, error) {
	if err := validateID("user_id", input.UserID); err != nil {
		return nil, err
	}

	recipe := &model.Recipe{UserID: input.UserID}
	if err := applyRecipeInput(recipe, input, true); err != nil {
		return nil, err
	}

	now := s.now()
	recipe.ID = ulid.Make().String()
	recipe.CreatedAt = now
	recipe.UpdatedAt = now

	if err := s.store.CreateRecipe(ctx, recipe); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, storageErr("create recipe", err)
	}

	s.metrics.IncRecipeCreated()

	return recipe, nil
}

// GetRecipe retrieves a recipe, serving from cache when possible.
func (s *RecipeService) GetRecipe(ctx context.Context, id string) (*model.Recipe, error) {
	if err := validateID("id", id); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if cached, err := s.cache.GetRecipe(ctx, id); err == nil {
			s.metrics.IncRecipeCacheHit()
			return cached, nil
		}
		// Any cache error falls through to the database.
		s.metrics.IncRecipeCacheMiss()
	}

	recipe, err := s.store.GetRecipeByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRecipeNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, storageErr("get recipe", err)
	}

	if s.cache != nil {
		_ = s.cache.SetRecipe(ctx, recipe)
	}

	return recipe, nil
}

// ListRecipes returns one page of recipes, newest first. Pages start at 1.
func (s *RecipeService) ListRecipes(ctx context.Context, page int) ([]*model.Recipe, error) {
	if page < 1 {
		return nil, invalid("page", "must be a positive integer")
	}

	recipes, err := s.store.ListRecipes(ctx, page, model.RecipePageSize)
	if err != nil {
		return nil, storageErr("list recipes", err)
	}
	return recipes, nil
}

// ListUserRecipes returns the recipes authored by userID.
func (s *RecipeService) ListUserRecipes(ctx context.Context, userID string) ([]*model.Recipe, error) {
	if err := validateID("user_id", userID); err != nil {
		return nil, err
	}

	recipes, err := s.store.ListRecipesByUser(ctx, userID)
	if err != nil {
		return nil, storageErr("list user recipes", err)
	}
	return recipes, nil
}

// SearchRecipes finds recipes whose name contains term, ignoring case.
func (s *RecipeService) SearchRecipes(ctx context.Context, term string) ([]*model.Recipe, error) {
	term, err := requireText("name", term)
	if err != nil {
		return nil, err
	}

	recipes, err := s.store.SearchRecipesByName(ctx, term)
	if err != nil {
		return nil, storageErr("search recipes", err)
	}
	return recipes, nil
}

// UpdateRecipe applies a partial update and invalidates the cached copy.
func (s *RecipeService) UpdateRecipe(ctx context.Context, id string, input RecipeInput) (*model.Recipe, error) {
	if err := validateID("id", id); err != nil {
		return nil, err
	}

	recipe, err := s.store.GetRecipeByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRecipeNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, storageErr("get recipe", err)
	}

	if err := applyRecipeInput(recipe, input, false); err != nil {
		return nil, err
	}
	recipe.UpdatedAt = s.now()

	if err := s.store.UpdateRecipe(ctx, recipe); err != nil {
		if errors.Is(err, repository.ErrRecipeNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, storageErr("update recipe", err)
	}

	s.metrics.IncRecipeUpdated()
	s.invalidate(ctx, id)

	return recipe, nil
}

// DeleteRecipe removes a recipe and returns it.
func (s *RecipeService) DeleteRecipe(ctx context.Context, id string) (*model.Recipe, error) {
	if err := validateID("id", id); err != nil {
		return nil, err
	}

	recipe, err := s.store.DeleteRecipe(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRecipeNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, storageErr("delete recipe", err)
	}

	s.metrics.IncRecipeDeleted()
	s.invalidate(ctx, id)

	return recipe, nil
}

// ToggleFavorite flips whether userID has saved recipeID.
func (s *RecipeService) ToggleFavorite(ctx context.Context, userID, recipeID string) (*model.Favorite, error) {
	if err := validateID("user_id", userID); err != nil {
		return nil, err
	}
	if err := validateID("id", recipeID); err != nil {
		return nil, err
	}

	fav, err := s.store.ToggleFavorite(ctx, userID, recipeID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecipeNotFound):
			return nil, ErrRecipeNotFound
		case errors.Is(err, repository.ErrUserNotFound):
			return nil, ErrUserNotFound
		default:
			return nil, storageErr("toggle favorite", err)
		}
	}
	return fav, nil
}

// ListSavedRecipes returns the recipes userID currently has saved.
func (s *RecipeService) ListSavedRecipes(ctx context.Context, userID string) ([]*model.Recipe, error) {
	if err := validateID("user_id", userID); err != nil {
		return nil, err
	}

	recipes, err := s.store.ListSavedRecipes(ctx, userID)
	if err != nil {
		return nil, storageErr("list saved recipes", err)
	}
	return recipes, nil
}

func (s *RecipeService) invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	// A stale entry expires with its TTL.
	_ = s.cache.DeleteRecipe(ctx, id)
}

// applyRecipeInput copies set fields of input onto recipe. With required,
// every field must be present.
func applyRecipeInput(recipe *model.Recipe, input RecipeInput, required bool) error {
	text := []struct {
		field string
		src   *string
		dst   *string
	}{
		{"name", input.Name, &recipe.Name},
		{"description", input.Description, &recipe.Description},
		{"prep_time", input.PrepTime, &recipe.PrepTime},
		{"difficulty", input.Difficulty, &recipe.Difficulty},
		{"cost", input.Cost, &recipe.Cost},
	}
	for _, f := range text {
		if f.src == nil {
			if required {
				return invalid(f.field, "is required")
			}
			continue
		}
		v, err := requireText(f.field, *f.src)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	if input.Ingredients != nil || required {
		if len(input.Ingredients) == 0 {
			return invalid("ingredients", "must not be empty")
		}
		ingredients := make([]model.RecipeIngredient, 0, len(input.Ingredients))
		for _, ing := range input.Ingredients {
			name, err := requireText("ingredients.name", ing.Name)
			if err != nil {
				return err
			}
			ingredients = append(ingredients, model.RecipeIngredient{
				Name:     name,
				Quantity: strings.TrimSpace(ing.Quantity),
			})
		}
		recipe.Ingredients = ingredients
	}

	if input.Instructions != nil || required {
		if len(input.Instructions) == 0 {
			return invalid("instructions", "must not be empty")
		}
		steps := make([]string, 0, len(input.Instructions))
		for _, step := range input.Instructions {
			v, err := requireText("instructions", step)
			if err != nil {
				return err
			}
			steps = append(steps, v)
		}
		recipe.Instructions = steps
	}

	if input.Image != nil || required {
		var raw string
		if input.Image != nil {
			raw = *input.Image
		}
		image, err := validateImageURL("image", raw, false)
		if err != nil {
			return err
		}
		recipe.Image = image
	}

	if input.Servings != nil || required {
		if input.Servings == nil || *input.Servings <= 0 {
			return invalid("servings", "must be a positive integer")
		}
		recipe.Servings = *input.Servings
	}

	return nil
}
