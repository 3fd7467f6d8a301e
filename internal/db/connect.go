package db

import (
	"fmt"  // Error formatting
	"time" // Connection pool lifetimes

	"budgetmate/internal/config" // Application configuration

	"github.com/sirupsen/logrus" // Logrus for structured logging
	"gorm.io/driver/mysql"       // MySQL driver for GORM
	"gorm.io/driver/postgres"    // PostgreSQL driver for GORM
	"gorm.io/driver/sqlite"      // SQLite driver for GORM
	"gorm.io/gorm"               // GORM ORM library
	"gorm.io/gorm/logger"        // GORM logger levels
)

// newLogger routes GORM output through w; lookups that find nothing are expected and stay quiet
func newLogger(w logger.Writer, isProd bool) logger.Interface {
	level := logger.Warn
	if isProd {
		level = logger.Error
	}
	return logger.New(w, logger.Config{
		SlowThreshold:             200 * time.Millisecond, // Slow SQL threshold
		LogLevel:                  level,                  // Log level
		IgnoreRecordNotFoundError: true,                   // Misses are reported as domain.ErrNotFound
		Colorful:                  false,                  // Plain text for logrus
	})
}

// Open connects to the database selected by driver
func Open(driver, dsn string, isProd bool) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case config.DriverMySQL:
		dialector = mysql.Open(dsn)
	case config.DriverPostgres:
		dialector = postgres.Open(dsn)
	case config.DriverSQLite:
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         newLogger(logrus.StandardLogger(), isProd),
		NowFunc:        func() time.Time { return time.Now().UTC() }, // Store UTC timestamps everywhere
		TranslateError: true,                                         // Map driver errors to gorm.ErrDuplicatedKey and friends
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get raw DB connection: %w", err)
	}
	if driver == config.DriverSQLite {
		sqlDB.SetMaxOpenConns(1) // SQLite allows a single writer
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	logrus.WithFields(logrus.Fields{"driver": driver}).Info("Database connected")
	return db, nil
}

// OpenFromConfig connects using the configured driver and DSN
func OpenFromConfig(cfg *config.Config) (*gorm.DB, error) {
	return Open(cfg.DBDriver, cfg.DSN(), cfg.IsProd)
}

// Close closes the underlying connection pool
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}
	return nil
}
