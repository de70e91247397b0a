package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sungwon/mailcheck/internal/api"
	"github.com/sungwon/mailcheck/internal/auth"
	"github.com/sungwon/mailcheck/internal/config"
	"github.com/sungwon/mailcheck/internal/logger"
	"github.com/sungwon/mailcheck/internal/scoring"
	"github.com/sungwon/mailcheck/internal/validator"
)

func main() {
	// Load configuration
	cfg, err := config.Load("config")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewFromConfig(logger.LoggingConfig{
		Level:     cfg.Logging.Level,
		Output:    cfg.Logging.Output,
		FilePath:  cfg.Logging.FilePath,
		MaxSizeMB: cfg.Logging.MaxSizeMB,
		MaxFiles:  cfg.Logging.MaxFiles,
	})
	log.Info().Msg("starting validation API server")

	// Build the validator with the compiled-in trust table. A construction
	// failure is a structural fault in the build itself, never a per-call
	// condition, so it is fatal here.
	scorer := scoring.NewScorer(scoring.DefaultTable())
	v, err := validator.New(scorer)
	if err != nil {
		log.Fatal().Err(err).Msg("validator construction failed")
	}

	// API key auth (optional)
	var keyring *auth.Keyring
	if cfg.Auth.Enabled {
		if len(cfg.Auth.KeyHashes) == 0 {
			log.Fatal().Msg("auth enabled but no API key hashes configured")
		}
		keyring = auth.NewKeyring(cfg.Auth.KeyHashes)
		log.Info().Int("keys", len(cfg.Auth.KeyHashes)).Msg("API key auth enabled")
	}

	// Rate limiting (optional)
	var rateLimiter *auth.RateLimiter
	if cfg.RateLimit.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr: cfg.RateLimit.RedisAddr,
			DB:   cfg.RateLimit.RedisDB,
		})
		rateLimiter = auth.NewRateLimiter(client, auth.RateLimitConfig{
			Window:      cfg.RateLimit.Window,
			MaxRequests: cfg.RateLimit.MaxRequests,
		})
		log.Info().
			Str("redis", cfg.RateLimit.RedisAddr).
			Dur("window", cfg.RateLimit.Window).
			Int("max_requests", cfg.RateLimit.MaxRequests).
			Msg("rate limiter initialized")
	}

	// Build router
	router := api.NewRouter(api.RouterConfig{
		Validator:    v,
		Log:          log,
		Keyring:      keyring,
		RateLimiter:  rateLimiter,
		MaxBodyBytes: cfg.API.MaxBodyBytes,
	})

	// Configure HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.API.ReadTimeout,
		WriteTimeout: cfg.API.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("API server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info().Str("signal", sig.String()).Msg("shutting down server")

	// Graceful shutdown with 30-second timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
