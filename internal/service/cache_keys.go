package service

import "fmt"

func walletsKey(userID uint) string {
	return fmt.Sprintf("wallets:user:%d", userID)
}

func txHistoryPrefix(walletID uint) string {
	return fmt.Sprintf("txhistory:wallet:%d:", walletID)
}

func txHistoryKey(walletID uint, page, size int) string {
	return fmt.Sprintf("%spage:%d:size:%d", txHistoryPrefix(walletID), page, size)
}

const (
	membershipsKey          = "memberships:all"
	adminUsersPrefix        = "admin:users:"
	adminTransactionsPrefix = "admin:transactions:"
)

func adminUsersKey(page, size int) string {
	return fmt.Sprintf("%spage=%d:size=%d", adminUsersPrefix, page, size)
}

func adminTransactionsKey(page, size int) string {
	return fmt.Sprintf("%spage=%d:size=%d", adminTransactionsPrefix, page, size)
}
