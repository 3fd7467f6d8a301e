// Package repository persists the budgeting entities with GORM.
// Every write validates the entity and verifies that its foreign keys
// reference existing parents. Cascading deletes are explicit routines
// executed inside a single database transaction.
package repository
