// Command seed creates (or reuses) a user account and prints an access
// token for it, for local development and smoke tests.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/recetario/recetario/internal/auth"
	"github.com/recetario/recetario/internal/repository"
	"github.com/recetario/recetario/internal/service"
)

type output struct {
	UserID      string    `json:"user_id"`
	Email       string    `json:"email"`
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	Created     bool      `json:"created"`
}

func main() {
	var (
		databaseURL = flag.String("database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
		jwtSecret   = flag.String("jwt-secret", os.Getenv("JWT_SECRET"), "Secret used to sign access tokens")
		ttl         = flag.Duration("ttl", 24*time.Hour, "Access token lifetime")
		name        = flag.String("name", "Cocinero Demo", "User name")
		email       = flag.String("email", "demo@recetario.local", "User email")
		password    = flag.String("password", "demo-password", "User password")
		migrate     = flag.Bool("migrate", true, "Apply migrations before seeding")
		format      = flag.String("format", "plain", "Output format: plain or json")
	)
	flag.Parse()

	if *databaseURL == "" || *jwtSecret == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL and JWT_SECRET are required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	out, err := seed(ctx, *databaseURL, *jwtSecret, *ttl, *migrate, service.RegisterInput{
		Name:     *name,
		Email:    *email,
		Password: *password,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	switch strings.ToLower(*format) {
	case "plain":
		fmt.Println(out.AccessToken)
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(out)
	default:
		fmt.Fprintln(os.Stderr, "invalid format; use plain or json")
		os.Exit(1)
	}
}

func seed(ctx context.Context, databaseURL, secret string, ttl time.Duration, migrate bool, in service.RegisterInput) (*output, error) {
	repo, err := repository.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	defer repo.Close()

	if migrate {
		if _, err := repo.Migrate(ctx); err != nil {
			return nil, err
		}
	}

	users := service.NewUserService(repo, auth.NewTokenIssuer(secret, ttl), nil)

	created := true
	if _, err := users.Register(ctx, in); err != nil {
		if !errors.Is(err, service.ErrEmailTaken) {
			return nil, fmt.Errorf("register user: %w", err)
		}
		created = false
	}

	login, err := users.Login(ctx, in.Email, in.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return nil, fmt.Errorf("user %s exists with a different password", in.Email)
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	return &output{
		UserID:      login.User.ID,
		Email:       login.User.Email,
		AccessToken: login.Token,
		ExpiresAt:   login.ExpiresAt,
		Created:     created,
	}, nil
}
