package api

import (
	"budgetmate/internal/middleware" // Auth middleware

	"github.com/gin-gonic/gin" // Gin web framework
)

// Services bundles the handlers' dependencies
type Services struct {
	Auth          AuthManager
	Streaks       StreakManager
	Wallets       WalletManager
	Transactions  TransactionManager
	Catalog       CatalogManager
	Memberships   MembershipManager
	Subscriptions SubscriptionManager
	Quiz          QuizManager
	Admin         AdminManager
}

// RegisterRoutes mounts every endpoint on r
func RegisterRoutes(r gin.IRouter, svc Services, jwtSecret string) {
	// Public routes
	r.POST("/auth/register", RegisterHandler(svc.Auth))
	r.POST("/auth/login", LoginHandler(svc.Auth))
	r.GET("/memberships", ListPlansHandler(svc.Memberships))
	r.GET("/memberships/:id", GetPlanHandler(svc.Memberships))
	r.GET("/categories", ListCategoriesHandler(svc.Catalog))
	r.GET("/pets", ListPetsHandler(svc.Catalog))

	// Authenticated routes
	auth := r.Group("")
	auth.Use(middleware.JWTAuthMiddleware(jwtSecret))
	auth.GET("/user/me", MeHandler(svc.Auth))
	auth.POST("/streaks/check-in", CheckInHandler(svc.Streaks))
	auth.POST("/pets/:id/adopt", AdoptPetHandler(svc.Catalog))

	wallets := auth.Group("/wallets")
	wallets.GET("", ListWalletsHandler(svc.Wallets))
	wallets.POST("", CreateWalletHandler(svc.Wallets))
	wallets.GET("/:id", GetWalletHandler(svc.Wallets))
	wallets.PUT("/:id", UpdateWalletHandler(svc.Wallets))
	wallets.DELETE("/:id", DeleteWalletHandler(svc.Wallets))
	wallets.GET("/:id/summary", WalletSummaryHandler(svc.Wallets))
	wallets.GET("/:id/transactions", GetTransactionHistoryHandler(svc.Transactions))

	txs := auth.Group("/transactions")
	txs.POST("", CreateTransactionHandler(svc.Transactions))
	txs.GET("/:id", GetTransactionHandler(svc.Transactions))
	txs.PUT("/:id", UpdateTransactionHandler(svc.Transactions))
	txs.DELETE("/:id", DeleteTransactionHandler(svc.Transactions))

	subs := auth.Group("/subscriptions")
	subs.GET("", SubscriptionHistoryHandler(svc.Subscriptions))
	subs.GET("/current", CurrentSubscriptionHandler(svc.Subscriptions))
	subs.POST("/subscribe/:planId", SubscribeHandler(svc.Subscriptions))
	subs.POST("/:id/cancel", CancelSubscriptionHandler(svc.Subscriptions))

	quizzes := auth.Group("/quizzes")
	quizzes.GET("/daily", DailyQuizHandler(svc.Quiz))
	quizzes.GET("/status", QuizStatusHandler(svc.Quiz))
	quizzes.POST("/submit", SubmitAnswerHandler(svc.Quiz))

	// Admin routes (protected, admin only)
	admin := auth.Group("/admin")
	admin.Use(middleware.AdminOnlyMiddleware(svc.Auth))
	admin.GET("/roles", ListRolesHandler(svc.Admin))
	admin.POST("/roles", CreateRoleHandler(svc.Admin))
	admin.DELETE("/roles/:id", DeleteRoleHandler(svc.Admin))
	admin.DELETE("/roles/:id/users/:userId", RemoveUserFromRoleHandler(svc.Admin))
	admin.GET("/users", ListUsersHandler(svc.Admin))
	admin.GET("/users/:id", GetUserHandler(svc.Admin))
	admin.PUT("/users/:id/status", UpdateUserStatusHandler(svc.Admin))
	admin.DELETE("/users/:id", DeleteUserHandler(svc.Admin))
	admin.GET("/transactions", ListAllTransactionsHandler(svc.Admin))
	admin.POST("/categories", CreateCategoryHandler(svc.Catalog))
	admin.DELETE("/categories/:id", DeleteCategoryHandler(svc.Catalog))
	admin.POST("/pets", CreatePetHandler(svc.Catalog))
	admin.DELETE("/pets/:id", DeletePetHandler(svc.Catalog))
	admin.POST("/memberships", CreatePlanHandler(svc.Memberships))
	admin.PUT("/memberships/:id", UpdatePlanHandler(svc.Memberships))
	admin.DELETE("/memberships/:id", DeletePlanHandler(svc.Memberships))
	admin.GET("/questions", ListQuestionsHandler(svc.Quiz))
	admin.POST("/questions", CreateQuestionHandler(svc.Quiz))
	admin.PUT("/questions/:id", UpdateQuestionHandler(svc.Quiz))
	admin.DELETE("/questions/:id", DeleteQuestionHandler(svc.Quiz))
	admin.POST("/subscriptions/:id/confirm", ConfirmPaymentHandler(svc.Subscriptions))
}
