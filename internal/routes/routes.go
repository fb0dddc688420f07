package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lokiverse2468/Ailoitte/internal/handlers"
	"github.com/lokiverse2468/Ailoitte/internal/middleware"
	"github.com/lokiverse2468/Ailoitte/internal/store"
)

// SetupRouter wires every endpoint. Public reads stay open; cart and orders
// need a valid token; writes to catalog data and order status need admin.
func SetupRouter(h *handlers.Handlers, s store.Store) *gin.Engine {
	router := gin.Default()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "message": "Server is running"})
	})

	authed := middleware.Authenticate(s)
	admin := middleware.RequireAdmin()

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/signup", h.Signup)
			auth.POST("/login", h.Login)
			auth.GET("/profile", authed, h.Profile)
		}

		categories := api.Group("/categories")
		{
			categories.GET("", h.GetAllCategories)
			categories.GET("/:id", h.GetCategoryByID)
			categories.POST("", authed, admin, h.CreateCategory)
			categories.PUT("/:id", authed, admin, h.UpdateCategory)
			categories.DELETE("/:id", authed, admin, h.DeleteCategory)
		}

		products := api.Group("/products")
		{
			products.GET("", h.GetAllProducts)
			products.GET("/:id", h.GetProductByID)
			products.POST("", authed, admin, h.CreateProduct)
			products.PUT("/:id", authed, admin, h.UpdateProduct)
			products.DELETE("/:id", authed, admin, h.DeleteProduct)
		}

		cart := api.Group("/cart", authed)
		{
			cart.POST("", h.AddToCart)
			cart.GET("", h.GetCart)
			cart.PUT("/:itemId", h.UpdateCartItem)
			cart.DELETE("/:itemId", h.RemoveFromCart)
			cart.DELETE("", h.ClearCart)
		}

		orders := api.Group("/orders", authed)
		{
			orders.POST("", h.CreateOrder)
			orders.GET("/my-orders", h.GetMyOrders)
			orders.GET("", admin, h.GetAllOrders)
			orders.PUT("/:id/status", admin, h.UpdateOrderStatus)
			orders.GET("/:id", h.GetOrderByID)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Route not found"})
	})

	return router
}
