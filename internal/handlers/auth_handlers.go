package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lokiverse2468/Ailoitte/internal/auth"
	"github.com/lokiverse2468/Ailoitte/internal/models"
	"github.com/lokiverse2468/Ailoitte/internal/store"
)

// SignupInput is deliberately separate from models.User: clients never get
// to choose an ID or timestamps, and the role is re-validated against the
// closed enum.
type SignupInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"omitempty,oneof=admin customer"`
}

// Signup is the handler for POST /api/auth/signup.
func (h *Handlers) Signup(c *gin.Context) {
	var input SignupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	role := models.RoleCustomer
	if input.Role != "" {
		parsed, ok := models.ParseRole(input.Role)
		if !ok {
			respondError(c, http.StatusBadRequest, "Invalid role")
			return
		}
		role = parsed
	}

	var password models.Password
	if err := password.Set(input.Password); err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	user, err := h.Store.CreateUser(c.Request.Context(), &models.User{
		Email:        input.Email,
		PasswordHash: password.Hash,
		Role:         role,
	})
	if err != nil {
		respondStoreError(c, err, "User not found")
		return
	}

	token, err := auth.GenerateToken(user.ID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	respondOK(c, http.StatusCreated, "User registered successfully", gin.H{
		"user":  user,
		"token": token,
	})
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login is the handler for POST /api/auth/login.
func (h *Handlers) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.Store.UserByEmail(c.Request.Context(), input.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Same message as a bad password: login never reveals whether
			// the account exists.
			respondError(c, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		respondStoreError(c, err, "User not found")
		return
	}

	password := models.Password{Hash: user.PasswordHash}
	matches, err := password.Matches(input.Password)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	if !matches {
		respondError(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := auth.GenerateToken(user.ID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	respondOK(c, http.StatusOK, "Login successful", gin.H{
		"user":  user,
		"token": token,
	})
}

// Profile is the handler for GET /api/auth/profile.
func (h *Handlers) Profile(c *gin.Context) {
	userID, _ := identity(c)

	user, err := h.Store.UserByID(c.Request.Context(), userID)
	if err != nil {
		respondStoreError(c, err, "User not found")
		return
	}

	respondOK(c, http.StatusOK, "", gin.H{"user": user})
}
