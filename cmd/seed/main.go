package main

import (
	"context"
	"log/slog"
	"os"

	"starwars-catalog/internal/character"
	"starwars-catalog/internal/planet"
	"starwars-catalog/internal/seed"
	"starwars-catalog/internal/shared/config"
	"starwars-catalog/internal/shared/database"
	"starwars-catalog/internal/shared/logger"
)

func main() {
	if err := config.Init(); err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	cfg := config.GlobalConfig

	log := logger.Init(cfg.Logging, cfg.Server.Environment)
	ctx := context.Background()

	db, err := database.Connect(ctx, cfg, log)
	if err != nil {
		log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.RunMigrations(ctx, log); err != nil {
		log.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	catalog, err := seed.Bundled()
	if err != nil {
		log.Error("Failed to load bundled catalog", "error", err)
		os.Exit(1)
	}

	seeder := seed.NewSeeder(db, planet.NewRepository(db, log), character.NewRepository(db, log), log)
	if _, err := seeder.Run(ctx, catalog); err != nil {
		log.Error("Failed to seed catalog", "error", err)
		os.Exit(1)
	}
}
