// Package main is the entrypoint for the Recetario API server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"regexp"
	"strings"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/recetario/recetario/internal/auth"
	"github.com/recetario/recetario/internal/cache"
	"github.com/recetario/recetario/internal/config"
	"github.com/recetario/recetario/internal/handler"
	"github.com/recetario/recetario/internal/metrics"
	"github.com/recetario/recetario/internal/middleware"
	"github.com/recetario/recetario/internal/repository"
	"github.com/recetario/recetario/internal/server"
	"github.com/recetario/recetario/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	if err := run(cfg, logger); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, err := repository.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to connect to database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		return err
	}
	logger.Info("connected to database")

	if cfg.MigrateOnStart {
		applied, err := repo.Migrate(ctx)
		if err != nil {
			repo.Close()
			return err
		}
		logger.Info("migrations applied", "count", applied)
	}

	cacheClient, err := cache.New(ctx, cfg.RedisURL, cache.WithRecipeTTL(cfg.RecipeCacheTTL))
	if err != nil {
		logger.Error("failed to connect to Redis",
			slog.String("error", sanitizeError(err, cfg.RedisURL)),
			slog.String("redis_url", redactURL(cfg.RedisURL)),
		)
		repo.Close()
		return err
	}
	logger.Info("connected to Redis")

	recorder := metrics.NewInMemory()
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.AccessTokenTTL)

	handlers := handler.Handlers{
		Users:       handler.NewUserHandler(service.NewUserService(repo, tokens, recorder), logger),
		Recipes:     handler.NewRecipeHandler(service.NewRecipeService(repo, cacheClient, recorder), logger),
		Ingredients: handler.NewIngredientHandler(service.NewIngredientService(repo), logger),
		Pantry:      handler.NewPantryHandler(service.NewPantryService(repo, recorder), logger),
		Feedback:    handler.NewFeedbackHandler(service.NewFeedbackService(repo, recorder), logger),
	}

	r := setupRouter(cfg, logger, handlers, tokens, repo, cacheClient, recorder)

	srv := server.New(r, server.Options{
		Port:            cfg.AppPort,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, logger)

	// Registered first so it closes last.
	srv.OnShutdown("postgres", func(context.Context) error {
		repo.Close()
		return nil
	})
	srv.OnShutdown("redis", func(context.Context) error {
		return cacheClient.Close()
	})

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
	)

	return srv.Run(ctx)
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLogLevel(cfg.LogLevel)}

	var h slog.Handler
	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h).With("service", "recetario")
	slog.SetDefault(logger)
	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(
	cfg *config.Config,
	logger *slog.Logger,
	handlers handler.Handlers,
	tokens middleware.TokenParser,
	repo *repository.Repository,
	cacheClient *cache.Cache,
	recorder *metrics.InMemoryRecorder,
) *chi.Mux {
	r := chi.NewRouter()

	rateLimitCfg := middleware.RateLimitConfig{
		Logger:    logger,
		Limiter:   cacheClient,
		Metrics:   recorder,
		Enabled:   cfg.RateLimitEnabled,
		IPRate:    cfg.RateLimitRPS,
		IPBurst:   cfg.RateLimitBurst,
		UserRate:  cfg.UserRateLimitRPS,
		UserBurst: cfg.UserRateLimitBurst,
	}

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.Security(cfg.IsDevelopment()))
	r.Use(middleware.CORS(middleware.DefaultCORSConfig(cfg.GetCORSAllowedOrigins())))

	base := handler.New()
	health := handler.NewHealthHandler(repo, cacheClient)

	r.Get("/", base.Hello)
	r.Get("/healthz", health.Healthz)
	r.Get("/readyz", health.Readyz)
	r.Get("/metrics", handler.NewMetricsHandler(recorder).Metrics)

	r.Route("/api/v1/recipes", func(r chi.Router) {
		r.Use(middleware.MaxBodySize(cfg.MaxRequestBodySize))
		r.Use(middleware.RateLimitIP(rateLimitCfg))

		handler.Routes(r, handlers,
			middleware.Authenticate(tokens, logger),
			middleware.RateLimitUser(rateLimitCfg),
		)
	})

	r.NotFound(base.NotFound)
	r.MethodNotAllowed(base.MethodNotAllowed)

	return r
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

// redactURL strips the password from a connection URL.
func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		if name := parsed.User.Username(); name != "" {
			parsed.User = url.User(name)
		} else {
			parsed.User = nil
		}
	}

	return parsed.String()
}

// sanitizeError removes connection secrets from an error message.
func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
