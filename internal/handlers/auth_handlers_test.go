package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lokiverse2468/Ailoitte/internal/handlers"
	"github.com/lokiverse2468/Ailoitte/internal/middleware"
	"github.com/lokiverse2468/Ailoitte/internal/mocks"
	"github.com/lokiverse2468/Ailoitte/internal/models"
	"github.com/lokiverse2468/Ailoitte/internal/store"
)

func newAuthRouter(h *handlers.Handlers) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/auth/signup", h.Signup)
	r.POST("/api/auth/login", h.Login)
	r.GET("/api/auth/profile", func(c *gin.Context) {
		c.Set(middleware.CtxUserID, int64(1))
		c.Set(middleware.CtxUserRole, models.RoleCustomer)
	}, h.Profile)
	return r
}

func TestSignupSuccess(t *testing.T) {
	mockStore := new(mocks.MockStore)
	h := &handlers.Handlers{Store: mockStore}
	r := newAuthRouter(h)

	created := &models.User{ID: 1, Email: "buyer@example.com", Role: models.RoleCustomer}
	mockStore.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Email == "buyer@example.com" && u.Role == models.RoleCustomer && u.PasswordHash != ""
	})).Return(created, nil)

	w, body := doJSON(t, r, http.MethodPost, "/api/auth/signup", gin.H{
		"email":    "buyer@example.com",
		"password": "secret123",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "User registered successfully", body["message"])

	data := body["data"].(map[string]any)
	assert.NotEmpty(t, data["token"])
	user := data["user"].(map[string]any)
	assert.Equal(t, "buyer@example.com", user["email"])
	// The hash never leaves the server.
	assert.NotContains(t, user, "passwordHash")
	mockStore.AssertExpectations(t)
}

func TestSignupDuplicateEmail(t *testing.T) {
	mockStore := new(mocks.MockStore)
	h := &handlers.Handlers{Store: mockStore}
	r := newAuthRouter(h)

	mockStore.On("CreateUser", mock.Anything, mock.Anything).Return(nil, store.ErrDuplicateEmail)

	w, body := doJSON(t, r, http.MethodPost, "/api/auth/signup", gin.H{
		"email":    "buyer@example.com",
		"password": "secret123",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "an account with this email already exists", body["message"])
	mockStore.AssertExpectations(t)
}

func TestSignupValidation(t *testing.T) {
	mockStore := new(mocks.MockStore)
	h := &handlers.Handlers{Store: mockStore}
	r := newAuthRouter(h)

	w, body := doJSON(t, r, http.MethodPost, "/api/auth/signup", gin.H{
		"email":    "not-an-email",
		"password": "short",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Validation failed", body["message"])
	require.Len(t, body["errors"], 2)
	mockStore.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
}

func TestSignupRejectsUnknownRole(t *testing.T) {
	mockStore := new(mocks.MockStore)
	h := &handlers.Handlers{Store: mockStore}
	r := newAuthRouter(h)

	w, _ := doJSON(t, r, http.MethodPost, "/api/auth/signup", gin.H{
		"email":    "buyer@example.com",
		"password": "secret123",
		"role":     "superuser",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockStore.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
}

func TestLoginSuccess(t *testing.T) {
	mockStore := new(mocks.MockStore)
	h := &handlers.Handlers{Store: mockStore}
	r := newAuthRouter(h)

	var password models.Password
	require.NoError(t, password.Set("secret123"))

	stored := &models.User{ID: 1, Email: "buyer@example.com", PasswordHash: password.Hash, Role: models.RoleCustomer}
	mockStore.On("UserByEmail", mock.Anything, "buyer@example.com").Return(stored, nil)

	w, body := doJSON(t, r, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "buyer@example.com",
		"password": "secret123",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Login successful", body["message"])
	assert.NotEmpty(t, body["data"].(map[string]any)["token"])
	mockStore.AssertExpectations(t)
}

func TestLoginWrongPassword(t *testing.T) {
	mockStore := new(mocks.MockStore)
	h := &handlers.Handlers{Store: mockStore}
	r := newAuthRouter(h)

	var password models.Password
	require.NoError(t, password.Set("secret123"))

	stored := &models.User{ID: 1, Email: "buyer@example.com", PasswordHash: password.Hash, Role: models.RoleCustomer}
	mockStore.On("UserByEmail", mock.Anything, "buyer@example.com").Return(stored, nil)

	w, body := doJSON(t, r, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "buyer@example.com",
		"password": "wrong-password",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid email or password", body["message"])
	mockStore.AssertExpectations(t)
}

func TestLoginUnknownEmail(t *testing.T) {
	mockStore := new(mocks.MockStore)
	h := &handlers.Handlers{Store: mockStore}
	r := newAuthRouter(h)

	mockStore.On("UserByEmail", mock.Anything, "ghost@example.com").Return(nil, store.ErrNotFound)

	w, body := doJSON(t, r, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "ghost@example.com",
		"password": "whatever1",
	})

	// Same status and message as a bad password.
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid email or password", body["message"])
	mockStore.AssertExpectations(t)
}

func TestProfile(t *testing.T) {
	mockStore := new(mocks.MockStore)
	h := &handlers.Handlers{Store: mockStore}
	r := newAuthRouter(h)

	stored := &models.User{ID: 1, Email: "buyer@example.com", Role: models.RoleCustomer}
	mockStore.On("UserByID", mock.Anything, int64(1)).Return(stored, nil)

	w, body := doJSON(t, r, http.MethodGet, "/api/auth/profile", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	user := body["data"].(map[string]any)["user"].(map[string]any)
	assert.Equal(t, "buyer@example.com", user["email"])
	mockStore.AssertExpectations(t)
}
