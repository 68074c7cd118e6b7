package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"starwars-catalog/internal/character"
	characterHandlers "starwars-catalog/internal/character/handlers"
	"starwars-catalog/internal/favorite"
	favoriteHandlers "starwars-catalog/internal/favorite/handlers"
	"starwars-catalog/internal/middleware"
	"starwars-catalog/internal/planet"
	planetHandlers "starwars-catalog/internal/planet/handlers"
	"starwars-catalog/internal/server"
	serverHandlers "starwars-catalog/internal/server/handlers"
	"starwars-catalog/internal/shared/config"
	"starwars-catalog/internal/shared/database"
	"starwars-catalog/internal/shared/logger"
	sharedredis "starwars-catalog/internal/shared/redis"
	"starwars-catalog/internal/user"
	userHandlers "starwars-catalog/internal/user/handlers"

	"github.com/redis/go-redis/v9"
)

func main() {
	if err := config.Init(); err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	cfg := config.GlobalConfig

	log := logger.Init(cfg.Logging, cfg.Server.Environment)

	if err := run(cfg, log); err != nil {
		log.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", "error", err)
		}
	}()

	if err := db.RunMigrations(ctx, log); err != nil {
		return err
	}

	cache, err := sharedredis.Connect(ctx, cfg.Redis, log)
	if err != nil {
		log.Warn("Redis unavailable, rate limiting falls back to memory", "error", err)
		cache = nil
	}
	defer func() {
		if err := cache.Close(); err != nil {
			log.Error("Failed to close Redis", "error", err)
		}
	}()

	userService := user.NewService(user.NewRepository(db, log), log)
	planetService := planet.NewService(planet.NewRepository(db, log), log)
	characterService := character.NewService(character.NewRepository(db, log), planetService, log)
	favoriteService := favorite.NewService(favorite.NewRepository(db, log), userService, planetService, characterService, log)

	var (
		rateClient *redis.Client
		cachePing  serverHandlers.Pinger
	)
	if cache != nil {
		rateClient = cache.Client
		cachePing = cache
	}

	routes := server.NewRoutes(
		serverHandlers.NewHealthHandler(db, cachePing, log),
		userHandlers.NewUserHandler(userService, log),
		planetHandlers.NewPlanetHandler(planetService, log),
		characterHandlers.NewCharacterHandler(characterService, log),
		favoriteHandlers.NewFavoriteHandler(favoriteService, log),
		log,
	)

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit, rateClient, log)
	go rateLimiter.Run(ctx)

	cors := middleware.NewCORS(cfg.Frontend, log)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      cors.Middleware(rateLimiter.Middleware(routes.Setup())),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Star Wars catalog server starting",
			"port", cfg.Server.Port,
			"environment", cfg.Server.Environment,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	log.Info("Server stopped")
	return nil
}
