package main

import (
	"context"
	"flag"
	"log"
	"os"

	"log/slog"

	dbembed "github.com/webert/crm/db"
	"github.com/webert/crm/internal/config"
	"github.com/webert/crm/internal/db"
	"github.com/webert/crm/internal/repository/sqlite"
	"github.com/webert/crm/internal/seed"
)

func main() {
	var configPath = flag.String("config", "", "Path to config YAML file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	conn, err := db.New(ctx, cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	defer conn.Close()

	if err := db.Migrate(ctx, conn, dbembed.Migrations); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	repo := sqlite.New(conn, logger)

	if err := seed.Run(ctx, repo, logger); err != nil {
		log.Fatalf("Failed to seed: %v", err)
	}

	log.Println("Seed finished")
}
