package main

import (
	"flag"
	"log"

	"go.uber.org/zap"

	"github.com/ShashankMk031/ZenAI-AI-Backend/internal/infrastructure/database"
	"github.com/ShashankMk031/ZenAI-AI-Backend/pkg/config"
)

func main() {
	down := flag.Bool("down", false, "roll back instead of applying migrations")
	limit := flag.Int("max", 0, "maximum number of migrations to run (0 = all)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.NewPostgresDB(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.CloseDB(db)

	n, err := database.Migrate(db, *down, *limit, logger)
	if err != nil {
		logger.Fatal("❌ Migration failed", zap.Error(err))
	}

	direction := "up"
	if *down {
		direction = "down"
	}
	logger.Info("✅ Migrations complete", zap.String("direction", direction), zap.Int("count", n))
}
