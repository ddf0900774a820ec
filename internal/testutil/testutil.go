// Package testutil holds helpers shared by integration tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"
	"github.com/redis/go-redis/v9"

	"github.com/recetario/recetario/internal/model"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

const advisoryLockID int64 = 731731

// AcquireDBLock grabs a global advisory lock to serialize DB tests across packages.
func AcquireDBLock(ctx context.Context, pool *pgxpool.Pool) (func() error, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}

	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", advisoryLockID); err != nil {
		conn.Release()
		return nil, fmt.Errorf("acquire advisory lock: %w", err)
	}

	unlock := func() error {
		defer conn.Release()
		if _, err := conn.Exec(ctx, "SELECT pg_advisory_unlock($1)", advisoryLockID); err != nil {
			return fmt.Errorf("release advisory lock: %w", err)
		}
		return nil
	}

	return unlock, nil
}

// FlushRedis clears the current Redis database.
func FlushRedis(ctx context.Context, client *redis.Client) error {
	return client.FlushDB(ctx).Err()
}

// ============================================================================
// Test Data Factories
// ============================================================================

// NewTestUser creates a user with a unique id and email. The credential is a
// placeholder; tests that log in must issue a real one.
func NewTestUser(t testing.TB) *model.User {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Microsecond)
	id := ulid.Make().String()
	return &model.User{
		ID:         id,
		Name:       "Test Cook",
		Email:      UniqueEmail("cook"),
		Credential: model.Credential{Salt: "00", Hash: "00"},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// NewTestRecipe creates a recipe authored by userID.
func NewTestRecipe(t testing.TB, userID, name string) *model.Recipe {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &model.Recipe{
		ID:          ulid.Make().String(),
		Name:        name,
		Description: "A test recipe",
		Ingredients: []model.RecipeIngredient{
			{Name: "egg", Quantity: "2"},
			{Name: "flour", Quantity: "200 g"},
		},
		PrepTime:     "20 min",
		Difficulty:   "easy",
		Instructions: []string{"Mix", "Bake"},
		Image:        "https://img.example/" + strings.ToLower(name) + ".png",
		Servings:     2,
		Cost:         "low",
		UserID:       userID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// UniqueEmail generates a unique email address for tests.
func UniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%s@example.test", prefix, strings.ToLower(ulid.Make().String()))
}
