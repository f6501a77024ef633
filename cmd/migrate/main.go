package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/ad-tracker/ytsummary-go/internal/config"
	"github.com/ad-tracker/ytsummary-go/internal/db"
	"github.com/ad-tracker/ytsummary-go/pkg/logger"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
)

func main() {
	var (
		dbURL          string
		migrationsPath string
		direction      string
		steps          int
	)

	flag.StringVar(&dbURL, "db", "", "Database URL (defaults to the configured database)")
	flag.StringVar(&migrationsPath, "path", "./migrations", "Path to migrations directory")
	flag.StringVar(&direction, "direction", "up", "Migration direction: up, down, or version")
	flag.IntVar(&steps, "steps", 0, "Number of steps to migrate (0 means all)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if dbURL == "" {
		dbURL = os.Getenv("DATABASE_URL")
	}
	if dbURL == "" {
		dbURL = (&db.Config{
			Host:     cfg.Database.Host,
			Port:     cfg.Database.Port,
			User:     cfg.Database.User,
			Password: cfg.Database.Password,
			Database: cfg.Database.Name,
			SSLMode:  cfg.Database.SSLMode,
		}).URL()
	}

	m, err := migrate.New(fmt.Sprintf("file://%s", migrationsPath), dbURL)
	if err != nil {
		logger.Log.Fatal("failed to create migrate instance", zap.Error(err))
	}
	defer m.Close()

	switch direction {
	case "up":
		if steps > 0 {
			err = m.Steps(steps)
		} else {
			err = m.Up()
		}
	case "down":
		if steps > 0 {
			err = m.Steps(-steps)
		} else {
			err = m.Down()
		}
	case "version":
	default:
		logger.Log.Fatal("invalid direction (must be 'up', 'down' or 'version')", zap.String("direction", direction))
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logger.Log.Fatal("migration failed", zap.Error(err))
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		logger.Log.Fatal("failed to get migration version", zap.Error(err))
	}

	if errors.Is(err, migrate.ErrNilVersion) {
		logger.Log.Info("migration completed (no version)")
		return
	}
	logger.Log.Info("migration completed",
		zap.Uint("version", version),
		zap.Bool("dirty", dirty),
	)
}
