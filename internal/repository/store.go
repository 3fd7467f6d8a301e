package repository

import (
	"context"
	"errors"
	"fmt"

	"budgetmate/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Pagination limits
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Store wraps a GORM handle; inside Transaction it is bound to the open transaction
type Store struct {
	db *gorm.DB
}

// NewStore creates a Store over db
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying handle
func (s *Store) DB() *gorm.DB {
	return s.db
}

func (s *Store) conn(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

// Transaction runs fn atomically; fn must only use the Store it receives
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

// Page selects a window of an ordered listing
type Page struct {
	Number int `json:"page"`      // 1-based page number
	Size   int `json:"page_size"` // Rows per page
}

// NewPage normalizes page parameters to sane bounds
func NewPage(number, size int) Page {
	if number < 1 {
		number = 1
	}
	if size < 1 || size > MaxPageSize {
		size = DefaultPageSize
	}
	return Page{Number: number, Size: size}
}

// Offset returns the number of rows to skip
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// TotalPages returns how many pages total rows span
func (p Page) TotalPages(total int64) int {
	return (int(total) + p.Size - 1) / p.Size
}

type validatable interface {
	Validate() error
}

// notFound translates GORM's missing-row error into the domain error
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}

// translate maps constraint violations reported by the driver to domain errors
func translate(err error) error {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", domain.ErrConflict, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %v", domain.ErrInUse, err)
	}
	return err
}

// Create validates entity, checks its parents and inserts it
func Create[T any](ctx context.Context, s *Store, entity *T) error {
	if v, ok := any(entity).(validatable); ok {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	if err := s.CheckParents(ctx, entity); err != nil {
		return err
	}
	if err := s.conn(ctx).Omit(clause.Associations).Create(entity).Error; err != nil {
		return fmt.Errorf("failed to create %T: %w", entity, translate(err))
	}
	return nil
}

// FindByID loads one entity with optional preloaded associations
func FindByID[T any](ctx context.Context, s *Store, id uint, preloads ...string) (*T, error) {
	var entity T
	q := s.conn(ctx)
	for _, p := range preloads {
		q = q.Preload(p)
	}
	if err := q.First(&entity, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &entity, nil
}

// Exists reports whether a row with id exists
func Exists[T any](ctx context.Context, s *Store, id uint) (bool, error) {
	var count int64
	if err := s.conn(ctx).Model(new(T)).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Update validates entity, checks its parents and writes every column
func Update[T any](ctx context.Context, s *Store, entity *T, id uint) error {
	if v, ok := any(entity).(validatable); ok {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	ok, err := Exists[T](ctx, s, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	if err := s.CheckParents(ctx, entity); err != nil {
		return err
	}
	if err := s.conn(ctx).Omit(clause.Associations).Save(entity).Error; err != nil {
		return fmt.Errorf("failed to update %T: %w", entity, translate(err))
	}
	return nil
}

// DeleteByID removes a row that has no dependents
func DeleteByID[T any](ctx context.Context, s *Store, id uint) error {
	res := s.conn(ctx).Delete(new(T), id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete %T: %w", new(T), translate(res.Error))
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List returns one page of entities ordered by id together with the total count
func List[T any](ctx context.Context, s *Store, page Page, preloads ...string) ([]T, int64, error) {
	var total int64
	if err := s.conn(ctx).Model(new(T)).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var items []T
	q := s.conn(ctx).Order("id").Offset(page.Offset()).Limit(page.Size)
	for _, p := range preloads {
		q = q.Preload(p)
	}
	if err := q.Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// All returns every entity ordered by id
func All[T any](ctx context.Context, s *Store) ([]T, error) {
	var items []T
	if err := s.conn(ctx).Order("id").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
