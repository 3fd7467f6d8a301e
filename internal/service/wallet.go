package service

import (
	"context" // Request-scoped cancellation
	"time"    // Timestamps and periods

	"budgetmate/internal/domain"     // Domain models
	"budgetmate/internal/repository" // Data access

	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Structured logging
	"gorm.io/datatypes"            // Date columns
)

// WalletInput carries the user-editable wallet fields
type WalletInput struct {
	Type         domain.WalletType
	Name         string
	Balance      float64 // Opening balance, ignored on update
	TargetAmount float64
	InterestRate float64
	Deadline     *time.Time
}

// WalletSummary is the overview shown for one wallet
type WalletSummary struct {
	WalletID     uint              `json:"wallet_id"`
	Type         domain.WalletType `json:"type"`
	Balance      float64           `json:"balance"`
	TotalIncome  float64           `json:"total_income"`
	TotalExpense float64           `json:"total_expense"`
	Count        int64             `json:"transaction_count"`
	TargetAmount float64           `json:"target_amount"`
	Progress     float64           `json:"progress"` // Savings goal completion in [0, 1]
	Deadline     *datatypes.Date   `json:"deadline,omitempty"`
}

// WalletService manages a user's wallets
type WalletService struct {
	store *repository.Store
	cache cache
}

// NewWalletService creates a WalletService; rdb may be nil
func NewWalletService(store *repository.Store, rdb *redis.Client, ttl time.Duration) *WalletService {
	return &WalletService{store: store, cache: newCache(rdb, ttl)}
}

// ownedWallet loads a wallet and checks that userID owns it
func ownedWallet(ctx context.Context, store *repository.Store, userID, walletID uint) (*domain.Wallet, error) {
	wallet, err := repository.FindByID[domain.Wallet](ctx, store, walletID)
	if err != nil {
		return nil, err
	}
	if wallet.UserID != userID { // Owner only
		return nil, domain.ErrForbidden
	}
	return wallet, nil
}

func toDate(t *time.Time) *datatypes.Date {
	if t == nil {
		return nil
	}
	d := datatypes.Date(domain.TruncateDay(*t))
	return &d
}

func (s *WalletService) invalidate(ctx context.Context, userID uint) {
	s.cache.del(ctx, walletsKey(userID))
	s.cache.delPrefix(ctx, adminUsersPrefix)
}

// Create opens a new wallet for userID
func (s *WalletService) Create(ctx context.Context, userID uint, in WalletInput) (*domain.Wallet, error) {
	wallet := domain.Wallet{
		Type:         in.Type,
		Name:         in.Name,
		Balance:      in.Balance,
		TargetAmount: in.TargetAmount,
		InterestRate: in.InterestRate,
		Deadline:     toDate(in.Deadline),
		UserID:       userID,
	}
	if err := wallet.ValidateOpening(); err != nil { // Savings rules
		return nil, err
	}
	if err := repository.Create(ctx, s.store, &wallet); err != nil {
		logrus.WithFields(logrus.Fields{"user_id": userID, "error": err.Error()}).Error("Failed to create wallet")
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"user_id":   userID,
		"wallet_id": wallet.ID,
		"type":      wallet.Type.String(),
	}).Info("Wallet created")
	s.invalidate(ctx, userID)
	return &wallet, nil
}

// List returns the user's wallets and whether they came from the cache
func (s *WalletService) List(ctx context.Context, userID uint) ([]domain.Wallet, bool, error) {
	var wallets []domain.Wallet
	if s.cache.get(ctx, walletsKey(userID), &wallets) {
		return wallets, true, nil // Cache hit
	}
	wallets, err := s.store.ListWalletsByUser(ctx, userID)
	if err != nil {
		return nil, false, err
	}
	s.cache.set(ctx, walletsKey(userID), wallets) // Cache for next time
	return wallets, false, nil
}

// Get returns one of the user's wallets
func (s *WalletService) Get(ctx context.Context, userID, walletID uint) (*domain.Wallet, error) {
	return ownedWallet(ctx, s.store, userID, walletID)
}

// Update changes the descriptive fields of a wallet; the balance only moves through transactions
func (s *WalletService) Update(ctx context.Context, userID, walletID uint, in WalletInput) (*domain.Wallet, error) {
	var wallet *domain.Wallet
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		if wallet, err = ownedWallet(ctx, tx, userID, walletID); err != nil {
			return err
		}
		wallet.Type = in.Type
		wallet.Name = in.Name
		wallet.TargetAmount = in.TargetAmount
		wallet.InterestRate = in.InterestRate
		wallet.Deadline = toDate(in.Deadline)
		return repository.Update(ctx, tx, wallet, wallet.ID)
	})
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{"user_id": userID, "wallet_id": walletID}).Info("Wallet updated")
	s.invalidate(ctx, userID)
	return wallet, nil
}

// Delete removes a wallet and its transactions
func (s *WalletService) Delete(ctx context.Context, userID, walletID uint) error {
	if _, err := ownedWallet(ctx, s.store, userID, walletID); err != nil {
		return err
	}
	if err := s.store.DeleteWalletCascade(ctx, walletID); err != nil {
		logrus.WithFields(logrus.Fields{"wallet_id": walletID, "error": err.Error()}).Error("Failed to delete wallet")
		return err
	}
	logrus.WithFields(logrus.Fields{"user_id": userID, "wallet_id": walletID}).Info("Wallet deleted")
	s.invalidate(ctx, userID)
	s.cache.delPrefix(ctx, txHistoryPrefix(walletID)) // History pages of the wallet
	s.cache.delPrefix(ctx, adminTransactionsPrefix)
	return nil
}

// Summary totals a wallet's transactions and savings progress
func (s *WalletService) Summary(ctx context.Context, userID, walletID uint) (*WalletSummary, error) {
	wallet, err := ownedWallet(ctx, s.store, userID, walletID)
	if err != nil {
		return nil, err
	}
	totals, err := s.store.SumWalletTransactions(ctx, walletID)
	if err != nil {
		return nil, err
	}
	return &WalletSummary{
		WalletID:     wallet.ID,
		Type:         wallet.Type,
		Balance:      wallet.Balance,
		TotalIncome:  totals.Income,
		TotalExpense: totals.Expense,
		Count:        totals.Count,
		TargetAmount: wallet.TargetAmount,
		Progress:     wallet.Progress(),
		Deadline:     wallet.Deadline,
	}, nil
}
