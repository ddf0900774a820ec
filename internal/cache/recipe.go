package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/recetario/recetario/internal/model"
)

const (
	recipeKeyPrefix = "recipe:"

	// DefaultRecipeTTL is the TTL for cached recipe documents.
	DefaultRecipeTTL = 10 * time.Minute
)

// Common cache errors.
var (
	ErrCacheMiss = errors.New("cache miss")
)

func recipeKey(id string) string {
	return recipeKeyPrefix + id
}

// GetRecipe retrieves a recipe from cache by id.
// Returns ErrCacheMiss if not found.
func (c *Cache) GetRecipe(ctx context.Context, id string) (*model.Recipe, error) {
	data, err := c.client.Get(ctx, recipeKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var recipe model.Recipe
	if err := json.Unmarshal(data, &recipe); err != nil {
		// A corrupt entry is treated as absent and dropped.
		_ = c.client.Del(ctx, recipeKey(id)).Err()
		return nil, ErrCacheMiss
	}

	return &recipe, nil
}

// SetRecipe stores a recipe in cache.
func (c *Cache) SetRecipe(ctx context.Context, recipe *model.Recipe) error {
	data, err := json.Marshal(recipe)
	if err != nil {
		return fmt.Errorf("failed to encode recipe: %w", err)
	}

	if err := c.client.Set(ctx, recipeKey(recipe.ID), data, c.recipeTTL).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// DeleteRecipe removes a recipe from cache.
func (c *Cache) DeleteRecipe(ctx context.Context, id string) error {
	if err := c.client.Del(ctx, recipeKey(id)).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}
