package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"budgetmate/internal/domain"
	"budgetmate/internal/repository"
	"budgetmate/internal/service"
	"budgetmate/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const routesSecret = "routes-test-secret"

type testServer struct {
	t      *testing.T
	router *gin.Engine
	db     *gorm.DB
	cats   map[string]uint
}

func newTestServer(t *testing.T) *testServer {
	gdb := testutil.NewDB(t)
	store := repository.NewStore(gdb)
	streaks := service.NewStreakService(store, 5, nil, nil)
	subscriptions := service.NewSubscriptionService(store, nil)

	r := gin.New()
	RegisterRoutes(r, Services{
		Auth:          service.NewAuthService(store, streaks, nil, routesSecret, time.Hour),
		Streaks:       streaks,
		Wallets:       service.NewWalletService(store, nil, 0),
		Transactions:  service.NewTransactionService(store, nil, 0, nil),
		Catalog:       service.NewCatalogService(store, nil),
		Memberships:   service.NewMembershipService(store, nil, 0),
		Subscriptions: subscriptions,
		Quiz:          service.NewQuizService(store, nil, 3, 10, nil),
		Admin:         service.NewAdminService(store, nil, 0),
	}, routesSecret)

	var cats []domain.Category
	require.NoError(t, gdb.Find(&cats).Error)
	byName := make(map[string]uint, len(cats))
	for _, c := range cats {
		byName[c.Name] = c.ID
	}
	return &testServer{t: t, router: r, db: gdb, cats: byName}
}

// do sends body as JSON and decodes the response into out when it is non-nil
func (s *testServer) do(method, path, token string, body any, out any) int {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	if out != nil {
		require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
	}
	return w.Code
}

func (s *testServer) login(email string) string {
	s.t.Helper()
	code := s.do(http.MethodPost, "/auth/register", "", gin.H{"email": email, "password": "password123", "full_name": "Test"}, nil)
	require.Equal(s.t, http.StatusCreated, code)

	var res service.LoginResult
	code = s.do(http.MethodPost, "/auth/login", "", gin.H{"email": email, "password": "password123"}, &res)
	require.Equal(s.t, http.StatusOK, code)
	require.NotEmpty(s.t, res.Token)
	return res.Token
}

func TestWalletFlow(t *testing.T) {
	s := newTestServer(t)
	token := s.login("flow@example.com")

	var wallet domain.Wallet
	code := s.do(http.MethodPost, "/wallets", token, gin.H{"type": "DEFAULT", "name": "Cash", "balance": 100}, &wallet)
	require.Equal(t, http.StatusCreated, code)

	var tx domain.Transaction
	code = s.do(http.MethodPost, "/transactions", token, gin.H{
		"wallet_id": wallet.ID, "category_id": s.cats["Salary"], "amount": 50,
	}, &tx)
	require.Equal(t, http.StatusCreated, code)
	code = s.do(http.MethodPost, "/transactions", token, gin.H{
		"wallet_id": wallet.ID, "category_id": s.cats["Food"], "amount": 30,
	}, nil)
	require.Equal(t, http.StatusCreated, code)

	var summary service.WalletSummary
	code = s.do(http.MethodGet, "/wallets/"+itoa(wallet.ID)+"/summary", token, nil, &summary)
	require.Equal(t, http.StatusOK, code)
	assert.InDelta(t, 120, summary.Balance, 1e-9)
	assert.InDelta(t, 50, summary.TotalIncome, 1e-9)
	assert.InDelta(t, 30, summary.TotalExpense, 1e-9)
	assert.Equal(t, int64(2), summary.Count)

	code = s.do(http.MethodDelete, "/transactions/"+itoa(tx.ID), token, nil, nil)
	require.Equal(t, http.StatusOK, code)
	var got domain.Wallet
	require.Equal(t, http.StatusOK, s.do(http.MethodGet, "/wallets/"+itoa(wallet.ID), token, nil, &got))
	assert.InDelta(t, 70, got.Balance, 1e-9)
}

func TestWalletsAreIsolatedBetweenUsers(t *testing.T) {
	s := newTestServer(t)
	alice := s.login("alice@example.com")
	bob := s.login("bob@example.com")

	var wallet domain.Wallet
	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/wallets", alice, gin.H{"type": "DEFAULT", "name": "Cash"}, &wallet))

	assert.Equal(t, http.StatusForbidden, s.do(http.MethodGet, "/wallets/"+itoa(wallet.ID), bob, nil, nil))
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodPost, "/transactions", bob, gin.H{
		"wallet_id": wallet.ID, "category_id": s.cats["Food"], "amount": 1,
	}, nil))
}

func TestAuthGuards(t *testing.T) {
	s := newTestServer(t)
	token := s.login("guard@example.com")

	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/wallets", "", nil, nil))
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/wallets", "not-a-token", nil, nil))
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodGet, "/admin/users", token, nil, nil))
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/categories", "", nil, nil))
}

func TestDuplicateRegistration(t *testing.T) {
	s := newTestServer(t)
	s.login("dup@example.com")
	code := s.do(http.MethodPost, "/auth/register", "", gin.H{"email": "dup@example.com", "password": "password123"}, nil)
	assert.Equal(t, http.StatusConflict, code)

	code = s.do(http.MethodPost, "/auth/login", "", gin.H{"email": "dup@example.com", "password": "wrong-password"}, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestAdminRoutes(t *testing.T) {
	s := newTestServer(t)
	token := s.login("boss@example.com")
	var adminRole domain.Role
	require.NoError(t, s.db.Where("name = ?", "ADMIN").First(&adminRole).Error)
	require.NoError(t, s.db.Model(&domain.User{}).Where("email = ?", "boss@example.com").Update("role_id", adminRole.ID).Error)

	var plan domain.MembershipPlan
	code := s.do(http.MethodPost, "/admin/memberships", token, gin.H{
		"name": "Pro", "price": 9.99, "duration": 1, "features": []string{"reports"},
	}, &plan)
	require.Equal(t, http.StatusCreated, code)

	var listing struct {
		Users  []service.UserWithWallets `json:"users"`
		Total  int64                     `json:"total"`
		Cached bool                      `json:"cached"`
	}
	require.Equal(t, http.StatusOK, s.do(http.MethodGet, "/admin/users", token, nil, &listing))
	assert.Equal(t, int64(1), listing.Total)
	assert.False(t, listing.Cached)

	require.Equal(t, http.StatusOK, s.do(http.MethodGet, "/admin/transactions", token, nil, nil))

	var question service.QuestionWithAnswers
	code = s.do(http.MethodPost, "/admin/questions", token, gin.H{
		"question": "Best first step?", "answers": []gin.H{{"answer": "Budget", "is_correct": true}, {"answer": "Spend"}},
	}, &question)
	require.Equal(t, http.StatusCreated, code)
	require.Len(t, question.Answers, 2)
	code = s.do(http.MethodPut, "/admin/questions/"+itoa(question.ID), token, gin.H{
		"question": "Best first step when paid?",
		"answers": []gin.H{
			{"id": question.Answers[0].ID, "answer": "Budget", "is_correct": true},
			{"answer": "Save"},
		},
	}, &question)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Best first step when paid?", question.Text)
	assert.Equal(t, "Save", question.Answers[1].Text)

	user := s.login("member@example.com")
	var sub domain.Subscription
	code = s.do(http.MethodPost, "/subscriptions/subscribe/"+itoa(plan.ID), user, gin.H{"payment_method": "E_WALLET"}, &sub)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, domain.SubscriptionStatusPending, sub.Status)

	code = s.do(http.MethodPost, "/admin/subscriptions/"+itoa(sub.ID)+"/confirm", token, gin.H{"success": true}, &sub)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, domain.SubscriptionStatusActive, sub.Status)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
