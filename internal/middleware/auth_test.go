package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lokiverse2468/Ailoitte/internal/auth"
	"github.com/lokiverse2468/Ailoitte/internal/middleware"
	"github.com/lokiverse2468/Ailoitte/internal/mocks"
	"github.com/lokiverse2468/Ailoitte/internal/models"
	"github.com/lokiverse2468/Ailoitte/internal/store"
)

func newProtectedRouter(s store.Store, requireAdmin bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	chain := []gin.HandlerFunc{middleware.Authenticate(s)}
	if requireAdmin {
		chain = append(chain, middleware.RequireAdmin())
	}
	chain = append(chain, func(c *gin.Context) {
		userID, _ := c.Get(middleware.CtxUserID)
		c.JSON(http.StatusOK, gin.H{"success": true, "userId": userID})
	})

	r.GET("/protected", chain...)
	return r
}

func doProtected(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthenticateMissingHeader(t *testing.T) {
	mockStore := new(mocks.MockStore)
	r := newProtectedRouter(mockStore, false)

	w := doProtected(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateBadFormat(t *testing.T) {
	mockStore := new(mocks.MockStore)
	r := newProtectedRouter(mockStore, false)

	w := doProtected(r, "Token abc123")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateInvalidToken(t *testing.T) {
	mockStore := new(mocks.MockStore)
	r := newProtectedRouter(mockStore, false)

	w := doProtected(r, "Bearer not-a-real-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateDeletedUser(t *testing.T) {
	mockStore := new(mocks.MockStore)
	r := newProtectedRouter(mockStore, false)

	token, err := auth.GenerateToken(42)
	require.NoError(t, err)

	mockStore.On("UserByID", mock.Anything, int64(42)).Return(nil, store.ErrNotFound)

	w := doProtected(r, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockStore.AssertExpectations(t)
}

func TestAuthenticateSuccess(t *testing.T) {
	mockStore := new(mocks.MockStore)
	r := newProtectedRouter(mockStore, false)

	token, err := auth.GenerateToken(42)
	require.NoError(t, err)

	user := &models.User{ID: 42, Email: "buyer@example.com", Role: models.RoleCustomer}
	mockStore.On("UserByID", mock.Anything, int64(42)).Return(user, nil)

	w := doProtected(r, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userId":42`)
	mockStore.AssertExpectations(t)
}

func TestRequireAdminRejectsCustomer(t *testing.T) {
	mockStore := new(mocks.MockStore)
	r := newProtectedRouter(mockStore, true)

	token, err := auth.GenerateToken(42)
	require.NoError(t, err)

	user := &models.User{ID: 42, Email: "buyer@example.com", Role: models.RoleCustomer}
	mockStore.On("UserByID", mock.Anything, int64(42)).Return(user, nil)

	w := doProtected(r, "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, w.Code)
	mockStore.AssertExpectations(t)
}

func TestRequireAdminAllowsAdmin(t *testing.T) {
	mockStore := new(mocks.MockStore)
	r := newProtectedRouter(mockStore, true)

	token, err := auth.GenerateToken(7)
	require.NoError(t, err)

	user := &models.User{ID: 7, Email: "admin@example.com", Role: models.RoleAdmin}
	mockStore.On("UserByID", mock.Anything, int64(7)).Return(user, nil)

	w := doProtected(r, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	mockStore.AssertExpectations(t)
}
