package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lokiverse2468/Ailoitte/internal/models"
)

// Sentinel errors surfaced by store operations. Handlers translate these to
// HTTP responses; anything else is treated as an internal failure.
var (
	ErrNotFound          = errors.New("resource not found")
	ErrDuplicateEmail    = errors.New("an account with this email already exists")
	ErrDuplicateCategory = errors.New("a category with this name already exists")
	ErrEmptyCart         = errors.New("Cart is empty. Add items to cart before placing an order")
)

// InsufficientStockError reports a requested quantity above the live stock.
// ProductName is empty on cart mutations, set on order placement.
type InsufficientStockError struct {
	ProductName string
	Available   int
}

func (e *InsufficientStockError) Error() string {
	if e.ProductName != "" {
		return fmt.Sprintf("Insufficient stock for %s. Only %d items available", e.ProductName, e.Available)
	}
	return fmt.Sprintf("Insufficient stock. Only %d items available", e.Available)
}

// ProductGoneError reports a cart row whose product was deleted after it was
// added.
type ProductGoneError struct {
	ProductID int64
}

func (e *ProductGoneError) Error() string {
	return fmt.Sprintf("Product with ID %d no longer exists", e.ProductID)
}

// InvalidTransitionError reports an in-enum but illegal order status change.
type InvalidTransitionError struct {
	From, To models.OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("Cannot change order status from %s to %s", e.From, e.To)
}

// Store is the persistence capability consumed by the handlers. Reads return
// value structs; mutations return fresh snapshots rather than live handles.
type Store interface {
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	UserByID(ctx context.Context, id int64) (*models.User, error)

	CreateCategory(ctx context.Context, cat *models.Category) (*models.Category, error)
	Categories(ctx context.Context) ([]models.Category, error)
	CategoryByID(ctx context.Context, id int64) (*models.Category, error)
	UpdateCategory(ctx context.Context, cat *models.Category) (*models.Category, error)
	DeleteCategory(ctx context.Context, id int64) error

	CreateProduct(ctx context.Context, p *models.Product) (*models.Product, error)
	Products(ctx context.Context, filter models.ProductFilter) ([]models.Product, int, error)
	ProductByID(ctx context.Context, id int64) (*models.Product, error)
	UpdateProduct(ctx context.Context, p *models.Product) (*models.Product, error)
	DeleteProduct(ctx context.Context, id int64) error

	AddToCart(ctx context.Context, userID, productID int64, quantity int) (*models.CartItemDetail, bool, error)
	CartItems(ctx context.Context, userID int64) ([]models.CartItemDetail, error)
	UpdateCartItem(ctx context.Context, userID, itemID int64, quantity int) (*models.CartItemDetail, error)
	RemoveCartItem(ctx context.Context, userID, itemID int64) error
	ClearCart(ctx context.Context, userID int64) error

	PlaceOrder(ctx context.Context, userID int64) (*models.OrderDetail, error)
	OrdersByUser(ctx context.Context, userID int64, page, limit int) ([]models.OrderDetail, int, error)
	OrderByID(ctx context.Context, orderID, userID int64, isAdmin bool) (*models.OrderDetail, error)
	AllOrders(ctx context.Context, page, limit int, status *models.OrderStatus) ([]models.OrderDetail, int, error)
	UpdateOrderStatus(ctx context.Context, orderID int64, status models.OrderStatus) (*models.OrderDetail, error)
}

// SQLStore implements Store on a MySQL connection pool.
type SQLStore struct {
	db *sql.DB
}

var _ Store = (*SQLStore)(nil)

func New(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

// NormalizePage clamps page/limit to sane values: page >= 1, limit in [1,100]
// defaulting to 10.
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}
