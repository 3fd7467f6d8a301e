package service

import (
	"context" // Request-scoped cancellation
	"errors"  // Sentinel error matching
	"fmt"     // Error wrapping
	"time"    // Timestamps and periods

	"budgetmate/internal/domain"     // Domain models
	"budgetmate/internal/repository" // Data access

	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Structured logging
)

// TransactionInput carries the fields of a new or edited transaction
type TransactionInput struct {
	WalletID        uint
	CategoryID      uint
	Amount          float64
	Description     string
	TransactionTime time.Time // Zero means now
}

// TransactionPage is one page of a wallet's history
type TransactionPage struct {
	Transactions []domain.Transaction `json:"transactions"`
	Page         int                  `json:"page"`
	PageSize     int                  `json:"page_size"`
	Total        int64                `json:"total"`
	TotalPages   int                  `json:"total_pages"`
}

// TransactionService records income and expenses and keeps wallet balances in step
type TransactionService struct {
	store *repository.Store
	cache cache
	clock Clock
}

// NewTransactionService creates a TransactionService; rdb may be nil
func NewTransactionService(store *repository.Store, rdb *redis.Client, ttl time.Duration, clock Clock) *TransactionService {
	return &TransactionService{store: store, cache: newCache(rdb, ttl), clock: clock}
}

func findCategory(ctx context.Context, store *repository.Store, id uint) (*domain.Category, error) {
	category, err := repository.FindByID[domain.Category](ctx, store, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("%w: category %d", domain.ErrParentNotFound, id)
	}
	return category, err
}

// ownedTransaction loads a transaction with its category and checks wallet ownership
func ownedTransaction(ctx context.Context, store *repository.Store, userID, txID uint) (*domain.Transaction, error) {
	t, err := repository.FindByID[domain.Transaction](ctx, store, txID, "Category")
	if err != nil {
		return nil, err
	}
	if _, err := ownedWallet(ctx, store, userID, t.WalletID); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TransactionService) invalidate(ctx context.Context, userID uint, walletIDs ...uint) {
	s.cache.del(ctx, walletsKey(userID))
	s.cache.delPrefix(ctx, adminUsersPrefix)
	s.cache.delPrefix(ctx, adminTransactionsPrefix)
	for _, id := range walletIDs {
		s.cache.delPrefix(ctx, txHistoryPrefix(id))
	}
}

// Create records a transaction and applies it to the wallet balance atomically
func (s *TransactionService) Create(ctx context.Context, userID uint, in TransactionInput) (*domain.Transaction, error) {
	if in.TransactionTime.IsZero() {
		in.TransactionTime = s.clock.now() // Default to the current time
	}
	t := domain.Transaction{
		Amount:          in.Amount,
		Description:     in.Description,
		TransactionTime: in.TransactionTime.UTC(),
		CategoryID:      in.CategoryID,
		WalletID:        in.WalletID,
	}
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		if _, err := ownedWallet(ctx, tx, userID, in.WalletID); err != nil {
			return err
		}
		category, err := findCategory(ctx, tx, in.CategoryID)
		if err != nil {
			return err
		}
		if err := repository.Create(ctx, tx, &t); err != nil {
			return err
		}
		t.Category = category
		return tx.AdjustBalance(ctx, t.WalletID, category.Signed(t.Amount)) // Apply to the balance
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id":   userID,
			"wallet_id": in.WalletID,
			"amount":    in.Amount,
			"error":     err.Error(),
		}).Error("Transaction failed")
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"user_id":   userID,
		"wallet_id": t.WalletID,
		"amount":    t.Amount,
		"type":      t.Category.Type.String(),
	}).Info("Transaction recorded")
	s.invalidate(ctx, userID, t.WalletID)
	return &t, nil
}

// Get returns one of the user's transactions
func (s *TransactionService) Get(ctx context.Context, userID, txID uint) (*domain.Transaction, error) {
	return ownedTransaction(ctx, s.store, userID, txID)
}

// Update reverts the old balance effect and applies the new one
func (s *TransactionService) Update(ctx context.Context, userID, txID uint, in TransactionInput) (*domain.Transaction, error) {
	var t *domain.Transaction
	var oldWalletID uint
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		if t, err = ownedTransaction(ctx, tx, userID, txID); err != nil {
			return err
		}
		if _, err := ownedWallet(ctx, tx, userID, in.WalletID); err != nil {
			return err
		}
		category, err := findCategory(ctx, tx, in.CategoryID)
		if err != nil {
			return err
		}
		oldWalletID = t.WalletID
		// Revert the old effect before applying the new one
		if err := tx.AdjustBalance(ctx, t.WalletID, -t.Category.Signed(t.Amount)); err != nil {
			return err
		}
		t.Amount = in.Amount
		t.Description = in.Description
		if !in.TransactionTime.IsZero() {
			t.TransactionTime = in.TransactionTime.UTC()
		}
		t.CategoryID = category.ID
		t.WalletID = in.WalletID
		t.Category = nil // Skip association saves
		if err := repository.Update(ctx, tx, t, t.ID); err != nil {
			return err
		}
		t.Category = category
		return tx.AdjustBalance(ctx, t.WalletID, category.Signed(t.Amount))
	})
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{"user_id": userID, "transaction_id": txID}).Info("Transaction updated")
	s.invalidate(ctx, userID, oldWalletID, t.WalletID)
	return t, nil
}

// Delete removes a transaction and reverts its balance effect
func (s *TransactionService) Delete(ctx context.Context, userID, txID uint) error {
	var walletID uint
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		t, err := ownedTransaction(ctx, tx, userID, txID)
		if err != nil {
			return err
		}
		walletID = t.WalletID
		if err := tx.AdjustBalance(ctx, t.WalletID, -t.Category.Signed(t.Amount)); err != nil {
			return err
		}
		return repository.DeleteByID[domain.Transaction](ctx, tx, t.ID)
	})
	if err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{"user_id": userID, "transaction_id": txID}).Info("Transaction deleted")
	s.invalidate(ctx, userID, walletID)
	return nil
}

// ListByWallet returns one page of a wallet's history, newest first, and whether it was cached
func (s *TransactionService) ListByWallet(ctx context.Context, userID, walletID uint, page repository.Page) (*TransactionPage, bool, error) {
	if _, err := ownedWallet(ctx, s.store, userID, walletID); err != nil {
		return nil, false, err
	}
	key := txHistoryKey(walletID, page.Number, page.Size)
	var cached TransactionPage
	if s.cache.get(ctx, key, &cached) {
		return &cached, true, nil // Cache hit
	}
	txs, total, err := s.store.ListTransactionsByWallet(ctx, walletID, page)
	if err != nil {
		return nil, false, err
	}
	result := &TransactionPage{
		Transactions: txs,
		Page:         page.Number,
		PageSize:     page.Size,
		Total:        total,
		TotalPages:   page.TotalPages(total),
	}
	s.cache.set(ctx, key, result)
	return result, false, nil
}
