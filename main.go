package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"fluxgear/adapters/postgres"
	"fluxgear/adapters/report"
	"fluxgear/app"
	"fluxgear/internal/config"
	"fluxgear/internal/errors"
	"fluxgear/internal/testkit"
	"fluxgear/ports"
	"fluxgear/ui"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// initDatabase initializes the PostgreSQL sweep repository when a database
// is configured; otherwise the in-memory repository is used.
func initDatabase(ctx context.Context, appConfig *config.Config) (ports.SweepRepository, func(), error) {
	db, err := sqlx.Connect("postgres", appConfig.Database.URL)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to connect to database")
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, nil, errors.Wrap(err, "failed to ping database")
	}

	repo := postgres.NewSweepRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, nil, errors.Wrap(err, "failed to ensure sweep schema")
	}

	return repo, func() { db.Close() }, nil
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	gin.SetMode(appConfig.Server.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	kit := testkit.NewKit()

	var repo ports.SweepRepository = kit.Repository()
	if appConfig.Database.URL != "" {
		pgRepo, closeDB, err := initDatabase(ctx, appConfig)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer closeDB()
		repo = pgRepo
		log.Println("Using PostgreSQL sweep repository")
	} else {
		log.Println("No DATABASE_URL configured, using in-memory sweep repository")
	}

	sweepService := app.NewSweepService(repo)

	// Run one sweep at startup so the API has data to serve immediately.
	record, err := sweepService.Run(ctx, kit.NewModel(), kit.Gears())
	if err != nil {
		log.Fatalf("Startup sweep failed: %v", err)
	}
	log.Printf("Startup sweep %s recorded %d gears", record.ID.String(), len(record.Results))

	builder := report.NewBuilder(appConfig.Report.Rounding)
	server := ui.NewServer(sweepService, repo, kit.Gears(), kit.NewModel, builder)

	log.Printf("Starting fluxgear server on port %s", appConfig.Server.Port)
	if err := server.Start(ctx, ":"+appConfig.Server.Port); err != nil {
		log.Fatalf("Server exited with error: %v", err)
	}
}
