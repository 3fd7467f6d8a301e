package db

import (
	"fmt" // Error formatting

	"budgetmate/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus" // Logrus for structured logging
	"gorm.io/gorm"               // GORM ORM library
)

// Models lists every persisted entity in dependency order
func Models() []any {
	return []any{
		&domain.Role{},
		&domain.Pet{},
		&domain.User{},
		&domain.Wallet{},
		&domain.Category{},
		&domain.Transaction{},
		&domain.MembershipPlan{},
		&domain.Subscription{},
		&domain.Question{},
		&domain.Answer{},
		&domain.QuizLog{},
	}
}

// Migrate performs automatic migration for the database schema
func Migrate(db *gorm.DB) error {
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logrus.Info("Migration completed.") // Log successful migration
	return nil
}
