package api

import (
	"context"

	"budgetmate/internal/domain"
	"budgetmate/internal/repository"
	"budgetmate/internal/service"
)

// AuthManager registers, authenticates and describes users
type AuthManager interface {
	Register(ctx context.Context, in service.RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*service.LoginResult, error)
	Me(ctx context.Context, userID uint) (*domain.User, error)
}

// StreakManager records daily check-ins
type StreakManager interface {
	CheckIn(ctx context.Context, userID uint) (*service.CheckInResult, error)
}

// WalletManager manages a user's wallets
type WalletManager interface {
	Create(ctx context.Context, userID uint, in service.WalletInput) (*domain.Wallet, error)
	List(ctx context.Context, userID uint) ([]domain.Wallet, bool, error)
	Get(ctx context.Context, userID, walletID uint) (*domain.Wallet, error)
	Update(ctx context.Context, userID, walletID uint, in service.WalletInput) (*domain.Wallet, error)
	Delete(ctx context.Context, userID, walletID uint) error
	Summary(ctx context.Context, userID, walletID uint) (*service.WalletSummary, error)
}

// TransactionManager records wallet transactions
type TransactionManager interface {
	Create(ctx context.Context, userID uint, in service.TransactionInput) (*domain.Transaction, error)
	Get(ctx context.Context, userID, txID uint) (*domain.Transaction, error)
	Update(ctx context.Context, userID, txID uint, in service.TransactionInput) (*domain.Transaction, error)
	Delete(ctx context.Context, userID, txID uint) error
	ListByWallet(ctx context.Context, userID, walletID uint, page repository.Page) (*service.TransactionPage, bool, error)
}

// CatalogManager manages categories and pets
type CatalogManager interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	CreateCategory(ctx context.Context, name string, kind domain.CategoryType) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id uint) error
	ListPets(ctx context.Context) ([]domain.Pet, error)
	CreatePet(ctx context.Context, name, description string) (*domain.Pet, error)
	DeletePet(ctx context.Context, id uint) error
	AdoptPet(ctx context.Context, userID, petID uint) (*domain.User, error)
}

// MembershipManager manages membership plans
type MembershipManager interface {
	List(ctx context.Context) ([]domain.MembershipPlan, bool, error)
	Get(ctx context.Context, id uint) (*domain.MembershipPlan, error)
	Create(ctx context.Context, in service.PlanInput) (*domain.MembershipPlan, error)
	Update(ctx context.Context, id uint, in service.PlanInput) (*domain.MembershipPlan, error)
	Delete(ctx context.Context, id uint) error
}

// SubscriptionManager drives the subscription lifecycle
type SubscriptionManager interface {
	Subscribe(ctx context.Context, userID, planID uint, method domain.PaymentMethod) (*domain.Subscription, error)
	ConfirmPayment(ctx context.Context, subID uint, success bool) (*domain.Subscription, error)
	Cancel(ctx context.Context, userID, subID uint) (*domain.Subscription, error)
	Current(ctx context.Context, userID uint) (*domain.Subscription, error)
	History(ctx context.Context, userID uint) ([]domain.Subscription, error)
}

// QuizManager serves quizzes and manages questions
type QuizManager interface {
	CreateQuestion(ctx context.Context, in service.QuestionInput) (*service.QuestionWithAnswers, error)
	UpdateQuestion(ctx context.Context, id uint, in service.QuestionInput) (*service.QuestionWithAnswers, error)
	DeleteQuestion(ctx context.Context, id uint) error
	ListQuestions(ctx context.Context) ([]service.QuestionWithAnswers, error)
	Daily(ctx context.Context, userID uint) ([]service.DailyQuestion, error)
	Status(ctx context.Context, userID uint) (*service.QuizStatus, error)
	Submit(ctx context.Context, userID, questionID, answerID uint) (*service.SubmitResult, error)
}

// AdminManager manages roles and user accounts
type AdminManager interface {
	ListRoles(ctx context.Context) ([]domain.Role, error)
	CreateRole(ctx context.Context, name string) (*domain.Role, error)
	DeleteRole(ctx context.Context, roleID uint) (int, error)
	RemoveUserFromRole(ctx context.Context, roleID, userID uint) error
	ListUsers(ctx context.Context, page repository.Page) (*service.UserPage, bool, error)
	ListTransactions(ctx context.Context, page repository.Page) (*service.TransactionPage, bool, error)
	GetUser(ctx context.Context, userID uint) (*domain.UserGraph, error)
	UpdateUserStatus(ctx context.Context, userID uint, status domain.UserStatus) (*domain.User, error)
	DeleteUser(ctx context.Context, userID uint) error
}
