package main

import (
	"fmt" // Error wrapping

	"budgetmate/internal/config" // Custom import path (Config)
	"budgetmate/internal/db"     // Custom import path (Database)

	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// run migrates and seeds the configured database, closing it on every path
func run(cfg *config.Config) (err error) {
	if err := cfg.Validate(); err != nil {
		return err
	}
	gormDB, err := db.OpenFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to DB: %w", err)
	}
	defer func() {
		if cerr := db.Close(gormDB); cerr != nil && err == nil {
			err = cerr // Surface close errors when nothing else failed
		}
	}()

	if err := db.Migrate(gormDB); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	if err := db.Seed(gormDB); err != nil {
		return fmt.Errorf("seed failed: %w", err)
	}
	return nil
}

// Main entry point for migration
func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg := config.LoadConfig() // Load configuration
	if err := run(cfg); err != nil {
		logrus.Fatal(err)
	}
	logrus.Info("Migration complete")
}
