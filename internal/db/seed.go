package db

import (
	"fmt" // Error formatting

	"budgetmate/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus" // Logrus for structured logging
	"gorm.io/gorm"               // GORM ORM library
)

// defaultCategories are created on first run so transactions can be recorded right away
var defaultCategories = []domain.Category{
	{Name: "Salary", Type: domain.CategoryTypeIncome},
	{Name: "Bonus", Type: domain.CategoryTypeIncome},
	{Name: "Food", Type: domain.CategoryTypeExpense},
	{Name: "Transport", Type: domain.CategoryTypeExpense},
	{Name: "Shopping", Type: domain.CategoryTypeExpense},
	{Name: "Bills", Type: domain.CategoryTypeExpense},
}

// Seed inserts the built-in roles and default categories if they are missing
func Seed(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, name := range []string{domain.RoleAdmin, domain.RoleUser} {
			role := domain.Role{Name: name}
			if err := tx.Where("name = ?", name).FirstOrCreate(&role).Error; err != nil {
				return fmt.Errorf("failed to seed role %s: %w", name, err)
			}
		}
		for _, c := range defaultCategories {
			category := c
			if err := tx.Where("name = ?", c.Name).FirstOrCreate(&category).Error; err != nil {
				return fmt.Errorf("failed to seed category %s: %w", c.Name, err)
			}
		}
		logrus.Info("Seed completed.")
		return nil
	})
}
