package repository

import (
	"context"
	"fmt"

	"budgetmate/internal/domain"

	"gorm.io/gorm"
)

// ListWalletsByUser returns a user's wallets ordered by id
func (s *Store) ListWalletsByUser(ctx context.Context, userID uint) ([]domain.Wallet, error) {
	var wallets []domain.Wallet
	if err := s.conn(ctx).Where("user_id = ?", userID).Order("id").Find(&wallets).Error; err != nil {
		return nil, err
	}
	return wallets, nil
}

// ListWalletsByUsers returns the wallets of several users in one query
func (s *Store) ListWalletsByUsers(ctx context.Context, userIDs []uint) ([]domain.Wallet, error) {
	var wallets []domain.Wallet
	if len(userIDs) == 0 {
		return wallets, nil
	}
	if err := s.conn(ctx).Where("user_id IN ?", userIDs).Order("id").Find(&wallets).Error; err != nil {
		return nil, err
	}
	return wallets, nil
}

// AdjustBalance adds delta to a wallet balance in place
func (s *Store) AdjustBalance(ctx context.Context, walletID uint, delta float64) error {
	res := s.conn(ctx).Model(&domain.Wallet{}).Where("id = ?", walletID).
		Update("balance", gorm.Expr("balance + ?", delta)) // Atomic in-place update
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound // No such wallet
	}
	return nil
}

// DeleteWalletCascade removes a wallet and its transactions
func (s *Store) DeleteWalletCascade(ctx context.Context, walletID uint) error {
	return s.Transaction(ctx, func(tx *Store) error {
		ok, err := Exists[domain.Wallet](ctx, tx, walletID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrNotFound
		}
		return tx.deleteWallets(ctx, []uint{walletID})
	})
}

// deleteWallets removes wallets and their transactions; callers must hold a transaction
func (s *Store) deleteWallets(ctx context.Context, walletIDs []uint) error {
	if len(walletIDs) == 0 {
		return nil
	}
	db := s.conn(ctx)
	// Children first
	if err := db.Where("wallet_id IN ?", walletIDs).Delete(&domain.Transaction{}).Error; err != nil {
		return fmt.Errorf("failed to delete transactions: %w", err)
	}
	if err := db.Where("id IN ?", walletIDs).Delete(&domain.Wallet{}).Error; err != nil {
		return fmt.Errorf("failed to delete wallets: %w", err)
	}
	return nil
}
