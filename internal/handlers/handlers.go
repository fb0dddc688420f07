package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/lokiverse2468/Ailoitte/internal/middleware"
	"github.com/lokiverse2468/Ailoitte/internal/models"
	"github.com/lokiverse2468/Ailoitte/internal/store"
	"github.com/lokiverse2468/Ailoitte/internal/uploader"
)

// Handlers holds all dependencies for the HTTP layer.
type Handlers struct {
	Store    store.Store
	Uploader uploader.Service
}

// --- Response envelope helpers ---
//
// Every response carries {success, message, data}; list endpoints add a
// pagination block.

func respondOK(c *gin.Context, status int, message string, data gin.H) {
	body := gin.H{"success": true}
	if message != "" {
		body["message"] = message
	}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

func respondPage(c *gin.Context, data gin.H, page, limit, total int) {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"pagination": gin.H{
			"page":  page,
			"limit": limit,
			"total": total,
			"pages": pages,
		},
		"data": data,
	})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

// respondBindError turns gin binding failures into the structured
// {field, message} list the API promises for validation errors.
func respondBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fieldErrors := make([]gin.H, 0, len(verrs))
		for _, fe := range verrs {
			fieldErrors = append(fieldErrors, gin.H{
				"field":   fe.Field(),
				"message": validationMessage(fe),
			})
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Validation failed",
			"errors":  fieldErrors,
		})
		return
	}
	respondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return fe.Field() + " must be a valid email address"
	case "min":
		return fe.Field() + " must be at least " + fe.Param() + " characters or more"
	case "gt":
		return fe.Field() + " must be greater than " + fe.Param()
	case "gte":
		return fe.Field() + " must be at least " + fe.Param()
	default:
		return fe.Field() + " is invalid"
	}
}

// respondStoreError maps store errors onto HTTP responses. notFoundMsg names
// the missing resource; everything unexpected becomes a generic 500 so
// internals never leak.
func respondStoreError(c *gin.Context, err error, notFoundMsg string) {
	var stockErr *store.InsufficientStockError
	var goneErr *store.ProductGoneError
	var transErr *store.InvalidTransitionError

	switch {
	case errors.Is(err, store.ErrNotFound):
		respondError(c, http.StatusNotFound, notFoundMsg)
	case errors.Is(err, store.ErrEmptyCart):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrDuplicateEmail),
		errors.Is(err, store.ErrDuplicateCategory):
		respondError(c, http.StatusConflict, err.Error())
	case errors.As(err, &stockErr), errors.As(err, &goneErr), errors.As(err, &transErr):
		respondError(c, http.StatusBadRequest, err.Error())
	default:
		log.Printf("store error: %v", err)
		respondError(c, http.StatusInternalServerError, "Internal server error")
	}
}

// --- Request context helpers ---

func identity(c *gin.Context) (int64, models.Role) {
	userIDRaw, _ := c.Get(middleware.CtxUserID)
	roleRaw, _ := c.Get(middleware.CtxUserRole)

	userID, _ := userIDRaw.(int64)
	role, _ := roleRaw.(models.Role)
	return userID, role
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
