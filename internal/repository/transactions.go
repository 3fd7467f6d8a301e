package repository

import (
	"context"

	"budgetmate/internal/domain"
)

// ListTransactionsByWallet returns one page of a wallet's transactions, newest first
func (s *Store) ListTransactionsByWallet(ctx context.Context, walletID uint, page Page) ([]domain.Transaction, int64, error) {
	var total int64
	base := s.conn(ctx).Model(&domain.Transaction{}).Where("wallet_id = ?", walletID)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var txs []domain.Transaction
	err := s.conn(ctx).Preload("Category").Where("wallet_id = ?", walletID).
		Order("transaction_time desc").Order("id desc").
		Offset(page.Offset()).Limit(page.Size).
		Find(&txs).Error
	if err != nil {
		return nil, 0, err
	}
	return txs, total, nil
}

// SumWalletTransactions totals a wallet's income and expense
func (s *Store) SumWalletTransactions(ctx context.Context, walletID uint) (domain.WalletTotals, error) {
	var rows []struct {
		Type  domain.CategoryType
		Total float64
		Count int64
	}
	err := s.conn(ctx).Table("transactions").
		Select("categories.type AS type, COALESCE(SUM(transactions.amount), 0) AS total, COUNT(*) AS count").
		Joins("JOIN categories ON categories.id = transactions.category_id").
		Where("transactions.wallet_id = ?", walletID).
		Group("categories.type").
		Scan(&rows).Error
	if err != nil {
		return domain.WalletTotals{}, err
	}
	var totals domain.WalletTotals
	for _, r := range rows {
		switch r.Type {
		case domain.CategoryTypeIncome:
			totals.Income += r.Total
		case domain.CategoryTypeExpense:
			totals.Expense += r.Total
		}
		totals.Count += r.Count
	}
	return totals, nil
}

// CountTransactionsByCategory reports how many transactions use a category
func (s *Store) CountTransactionsByCategory(ctx context.Context, categoryID uint) (int64, error) {
	var count int64
	err := s.conn(ctx).Model(&domain.Transaction{}).Where("category_id = ?", categoryID).Count(&count).Error
	return count, err
}
