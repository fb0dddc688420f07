package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lokiverse2468/Ailoitte/internal/handlers"
	"github.com/lokiverse2468/Ailoitte/internal/mocks"
	"github.com/lokiverse2468/Ailoitte/internal/models"
	"github.com/lokiverse2468/Ailoitte/internal/store"
)

func newProductRouter(h *handlers.Handlers) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/products", h.CreateProduct)
	r.GET("/api/products", h.GetAllProducts)
	r.GET("/api/products/:id", h.GetProductByID)
	r.PUT("/api/products/:id", h.UpdateProduct)
	r.DELETE("/api/products/:id", h.DeleteProduct)
	return r
}

func doForm(t *testing.T, r *gin.Engine, method, target string, form url.Values) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	return w, parsed
}

func doMultipart(t *testing.T, r *gin.Engine, method, target string, fields map[string]string, fileField, filename string, fileData []byte) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	if fileField != "" {
		part, err := writer.CreateFormFile(fileField, filename)
		require.NoError(t, err)
		_, err = part.Write(fileData)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(method, target, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	return w, parsed
}

func TestCreateProduct(t *testing.T) {
	mockStore := new(mocks.MockStore)
	h := &handlers.Handlers{Store: mockStore}
	r := newProductRouter(h)

	created := &models.Product{ID: 1, Name: "Widget", Price: 19.99, Stock: 5}
	mockStore.On("CreateProduct", mock.Anything, mock.MatchedBy(func(p *models.Product) bool {
		return p.Name == "Widget" && p.Price == 19.99 && p.Stock == 5 && p.ImageURL == nil
	})).Return(created, nil)

	w, body := doForm(t, r, http.MethodPost, "/api/products", url.Values{
		"name":  {"Widget"},
		"price": {"19.99"},
		"stock": {"5"},
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Product created successfully", body["message"])
	mockStore.AssertExpectations(t)
}

func TestCreateProductUnknownCategory(t *testing.T) {
	mockStore := new(mocks.MockStore)
	h := &handlers.Handlers{Store: mockStore}
	r := newProductRouter(h)

	mockStore.On("CategoryByID", mock.Anything, int64(404)).Return(nil, store.ErrNotFound)

	w, body := doForm(t, r, http.MethodPost, "/api/products", url.Values{
		"name":       {"Widget"},
		"price":      {"19.99"},
		"stock":      {"5"},
		"categoryId": {"404"},
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Category not found", body["message"])
	mockStore.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything)
}

func TestCreateProductValidation(t *testing.T) {
	mockStore := new(mocks.MockStore)
	h := &handlers.Handlers{Store: mockStore}
	r := newProductRouter(h)

	w, body := doForm(t, r, http.MethodPost, "/api/products", url.Values{
		"name": {"Widget"},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Validation failed", body["message"])
	mockStore.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything)
}

func TestCreateProductWithImage(t *testing.T) {
	mockStore := new(mocks.MockStore)
	mockUploader := new(mocks.MockUploader)
	h := &handlers.Handlers{Store: mockStore, Uploader: mockUploader}
	r := newProductRouter(h)

	hosted := "http://images.test/abc.png"
	mockUploader.On("Upload", mock.Anything, []byte("png-bytes"), "widget.png").
		Return(hosted, nil)

	created := &models.Product{ID: 1, Name: "Widget", Price: 19.99, Stock: 5, ImageURL: &hosted}
	mockStore.On("CreateProduct", mock.Anything, mock.MatchedBy(func(p *models.Product) bool {
		return p.ImageURL != nil && *p.ImageURL == hosted
	})).Return(created, nil)

	w, body := doMultipart(t, r, http.MethodPost, "/api/products", map[string]string{
		"name":  "Widget",
		"price": "19.99",
		"stock": "5",
	}, "image", "widget.png", []byte("png-bytes"))

	assert.Equal(t, http.StatusCreated, w.Code)
	product := body["data"].(map[string]any)["product"].(map[string]any)
	assert.Equal(t, hosted, product["imageUrl"])
	mockStore.AssertExpectations(t)
	mockUploader.AssertExpectations(t)
}

func TestCreateProductUploadFailure(t *testing.T) {
	mockStore := new(mocks.MockStore)
	mockUploader := new(mocks.MockUploader)
	h := &handlers.Handlers{Store: mockStore, Uploader: mockUploader}
	r := newProductRouter(h)

	mockUploader.On("Upload", mock.Anything, mock.Anything, "widget.png").
		Return("", errors.New("image host down"))

	w, body := doMultipart(t, r, http.MethodPost, "/api/products", map[string]string{
		"name":  "Widget",
		"price": "19.99",
		"stock": "5",
	}, "image", "widget.png", []byte("png-bytes"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to upload image", body["message"])
	mockStore.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything)
}

func TestGetAllProductsFilters(t *testing.T) {
	mockStore := new(mocks.MockStore)
	h := &handlers.Handlers{Store: mockStore}
	r := newProductRouter(h)

	minPrice, maxPrice, categoryID := 5.0, 50.0, int64(2)
	want := models.ProductFilter{
		MinPrice:   &minPrice,
		MaxPrice:   &maxPrice,
		CategoryID: &categoryID,
		Search:     "widget",
		Page:       2,
		Limit:      5,
	}
	products := []models.Product{{ID: 1, Name: "Widget", Price: 19.99}}
	mockStore.On("Products", mock.Anything, want).Return(products, 11, nil)

	w, body := doJSON(t, r, http.MethodGet,
		"/api/products?minPrice=5&maxPrice=50&categoryId=2&search=widget&page=2&limit=5", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	pagination := body["pagination"].(map[string]any)
	assert.Equal(t, float64(2), pagination["page"])
	assert.Equal(t, float64(11), pagination["total"])
	assert.Equal(t, float64(3), pagination["pages"])
	require.Len(t, body["data"].(map[string]any)["products"], 1)
	mockStore.AssertExpectations(t)
}

func TestGetAllProductsBadPriceFilter(t *testing.T) {
	mockStore := new(mocks.MockStore)
	h := &handlers.Handlers{Store: mockStore}
	r := newProductRouter(h)

	w, _ := doJSON(t, r, http.MethodGet, "/api/products?minPrice=cheap", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockStore.AssertNotCalled(t, "Products", mock.Anything, mock.Anything)
}

func TestGetProductByIDNotFound(t *testing.T) {
	mockStore := new(mocks.MockStore)
	h := &handlers.Handlers{Store: mockStore}
	r := newProductRouter(h)

	mockStore.On("ProductByID", mock.Anything, int64(404)).Return(nil, store.ErrNotFound)

	w, body := doJSON(t, r, http.MethodGet, "/api/products/404", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Product not found", body["message"])
	mockStore.AssertExpectations(t)
}

func TestUpdateProductPartial(t *testing.T) {
	mockStore := new(mocks.MockStore)
	h := &handlers.Handlers{Store: mockStore}
	r := newProductRouter(h)

	existing := &models.Product{ID: 1, Name: "Widget", Price: 19.99, Stock: 5}
	mockStore.On("ProductByID", mock.Anything, int64(1)).Return(existing, nil)

	updated := &models.Product{ID: 1, Name: "Widget", Price: 24.99, Stock: 5}
	mockStore.On("UpdateProduct", mock.Anything, mock.MatchedBy(func(p *models.Product) bool {
		// Only price changes; name and stock survive.
		return p.Price == 24.99 && p.Name == "Widget" && p.Stock == 5
	})).Return(updated, nil)

	w, body := doForm(t, r, http.MethodPut, "/api/products/1", url.Values{
		"price": {"24.99"},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Product updated successfully", body["message"])
	mockStore.AssertExpectations(t)
}

func TestDeleteProductRemovesImage(t *testing.T) {
	mockStore := new(mocks.MockStore)
	mockUploader := new(mocks.MockUploader)
	h := &handlers.Handlers{Store: mockStore, Uploader: mockUploader}
	r := newProductRouter(h)

	hosted := "http://images.test/abc.png"
	existing := &models.Product{ID: 1, Name: "Widget", Price: 19.99, Stock: 5, ImageURL: &hosted}
	mockStore.On("ProductByID", mock.Anything, int64(1)).Return(existing, nil)
	mockUploader.On("Delete", mock.Anything, hosted).Return(nil)
	mockStore.On("DeleteProduct", mock.Anything, int64(1)).Return(nil)

	w, body := doJSON(t, r, http.MethodDelete, "/api/products/1", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Product deleted successfully", body["message"])
	mockStore.AssertExpectations(t)
	mockUploader.AssertExpectations(t)
}

func TestDeleteProductSurvivesImageDeleteFailure(t *testing.T) {
	mockStore := new(mocks.MockStore)
	mockUploader := new(mocks.MockUploader)
	h := &handlers.Handlers{Store: mockStore, Uploader: mockUploader}
	r := newProductRouter(h)

	hosted := "http://images.test/abc.png"
	existing := &models.Product{ID: 1, Name: "Widget", Price: 19.99, Stock: 5, ImageURL: &hosted}
	mockStore.On("ProductByID", mock.Anything, int64(1)).Return(existing, nil)
	mockUploader.On("Delete", mock.Anything, hosted).Return(errors.New("image host down"))
	mockStore.On("DeleteProduct", mock.Anything, int64(1)).Return(nil)

	w, _ := doJSON(t, r, http.MethodDelete, "/api/products/1", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	mockStore.AssertExpectations(t)
	mockUploader.AssertExpectations(t)
}
