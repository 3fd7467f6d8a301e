package service

import (
	"context"
	"fmt"

	"budgetmate/internal/domain"
	"budgetmate/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// CatalogService manages the shared reference data: categories and pets
type CatalogService struct {
	store *repository.Store
	cache cache
}

// NewCatalogService creates a CatalogService; rdb may be nil
func NewCatalogService(store *repository.Store, rdb *redis.Client) *CatalogService {
	return &CatalogService{store: store, cache: newCache(rdb, 0)}
}

// ListCategories returns every category
func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return repository.All[domain.Category](ctx, s.store)
}

// CreateCategory adds a category; names are unique
func (s *CatalogService) CreateCategory(ctx context.Context, name string, kind domain.CategoryType) (*domain.Category, error) {
	category := domain.Category{Name: name, Type: kind}
	if err := repository.Create(ctx, s.store, &category); err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{"category_id": category.ID, "name": category.Name}).Info("Category created")
	return &category, nil
}

// DeleteCategory removes a category no transaction uses
func (s *CatalogService) DeleteCategory(ctx context.Context, id uint) error {
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		n, err := tx.CountTransactionsByCategory(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("%w: category %d has %d transactions", domain.ErrInUse, id, n)
		}
		if err := repository.DeleteByID[domain.Category](ctx, tx, id); err != nil {
			return err
		}
		logrus.WithField("category_id", id).Info("Category deleted")
		return nil
	})
	if err != nil {
		return err
	}
	s.cache.delPrefix(ctx, adminTransactionsPrefix) // Admin transaction pages embed categories
	return nil
}

// ListPets returns every pet
func (s *CatalogService) ListPets(ctx context.Context) ([]domain.Pet, error) {
	return repository.All[domain.Pet](ctx, s.store)
}

// CreatePet adds an adoptable pet
func (s *CatalogService) CreatePet(ctx context.Context, name, description string) (*domain.Pet, error) {
	pet := domain.Pet{Name: name, Description: description}
	if err := repository.Create(ctx, s.store, &pet); err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{"pet_id": pet.ID, "name": pet.Name}).Info("Pet created")
	return &pet, nil
}

// DeletePet removes a pet, unlinking the users that adopted it
func (s *CatalogService) DeletePet(ctx context.Context, id uint) error {
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := tx.ClearPet(ctx, id); err != nil {
			return err
		}
		if err := repository.DeleteByID[domain.Pet](ctx, tx, id); err != nil {
			return err
		}
		logrus.WithField("pet_id", id).Info("Pet deleted")
		return nil
	})
	if err != nil {
		return err
	}
	s.cache.delPrefix(ctx, adminUsersPrefix) // Owners lost their pet
	return nil
}

// AdoptPet links a pet to the user, replacing any previous one
func (s *CatalogService) AdoptPet(ctx context.Context, userID, petID uint) (*domain.User, error) {
	var user *domain.User
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		if user, err = repository.FindByID[domain.User](ctx, tx, userID); err != nil {
			return err
		}
		pet, err := repository.FindByID[domain.Pet](ctx, tx, petID)
		if err != nil {
			return err
		}
		user.PetID = &pet.ID
		if err := repository.Update(ctx, tx, user, user.ID); err != nil {
			return err
		}
		user.Pet = pet
		return nil
	})
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{"user_id": userID, "pet_id": petID}).Info("Pet adopted")
	s.cache.delPrefix(ctx, adminUsersPrefix)
	return user, nil
}
