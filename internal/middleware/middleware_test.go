package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"budgetmate/internal/domain"
	"budgetmate/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "middleware-test-secret"

type stubUsers map[uint]*domain.User

func (s stubUsers) Me(_ context.Context, userID uint) (*domain.User, error) {
	if u, ok := s[userID]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(users UserLookup) *gin.Engine {
	r := gin.New()
	r.Use(RequestLogger())
	group := r.Group("/", JWTAuthMiddleware(secret))
	group.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetUint(UserIDKey), "role": c.GetString(RoleKey)})
	})
	group.GET("/admin", AdminOnlyMiddleware(users), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func request(t *testing.T, r http.Handler, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func token(t *testing.T, userID uint, role string) string {
	t.Helper()
	tok, err := utils.GenerateJWT(userID, role, secret, time.Hour)
	require.NoError(t, err)
	return tok
}

func TestJWTAuthMiddleware(t *testing.T) {
	r := newRouter(stubUsers{})

	w := request(t, r, "/whoami", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = request(t, r, "/whoami", "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = request(t, r, "/whoami", token(t, 7, domain.RoleUser))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":7,"role":"USER"}`, w.Body.String())
}

func TestAdminOnlyMiddleware(t *testing.T) {
	users := stubUsers{
		1: {ID: 1, Status: domain.UserStatusActive, Role: &domain.Role{Name: domain.RoleAdmin}},
		2: {ID: 2, Status: domain.UserStatusActive, Role: &domain.Role{Name: domain.RoleUser}},
		3: {ID: 3, Status: domain.UserStatusBanned, Role: &domain.Role{Name: domain.RoleAdmin}},
	}
	r := newRouter(users)

	assert.Equal(t, http.StatusNoContent, request(t, r, "/admin", token(t, 1, domain.RoleAdmin)).Code)
	assert.Equal(t, http.StatusForbidden, request(t, r, "/admin", token(t, 2, domain.RoleAdmin)).Code, "stale role claim is ignored")
	assert.Equal(t, http.StatusForbidden, request(t, r, "/admin", token(t, 3, domain.RoleAdmin)).Code)
	assert.Equal(t, http.StatusForbidden, request(t, r, "/admin", token(t, 9, domain.RoleAdmin)).Code)
}
