package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"order-service/internal/domain"
	"order-service/internal/repository/memory"
	"order-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	repo := memory.NewOrderRepository()
	service := services.NewOrderService(repo, nil)
	handler := NewHandler(service, nil)

	r := gin.New()
	handler.RegisterRoutes(r)
	return r
}

func doRequest(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createTestOrder(t *testing.T, r *gin.Engine, userID string) domain.Order {
	t.Helper()
	w := doRequest(r, http.MethodPost, "/api/orders", gin.H{
		"user_id": userID,
		"items": []gin.H{
			{"product_id": "prod-1", "quantity": 2, "price": 29.99},
		},
		"shipping_address": "123 Main St, City, Country",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var order domain.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))
	return order
}

func TestHealthEndpoint(t *testing.T) {
	r := setupRouter()
	w := doRequest(r, http.MethodGet, "/health", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "order-service", body["service"])
	assert.NotEmpty(t, body["timestamp"])
	assert.Equal(t, "1.0.0", body["version"])
}

func TestReadyEndpoint(t *testing.T) {
	r := setupRouter()
	w := doRequest(r, http.MethodGet, "/ready", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ready", body["status"])
	assert.Equal(t, "order-service", body["service"])
}

func TestCreateOrder(t *testing.T) {
	r := setupRouter()
	order := createTestOrder(t, r, "user-1")

	assert.NotEmpty(t, order.ID)
	assert.Equal(t, "user-1", order.UserID)
	assert.InDelta(t, 59.98, order.TotalAmount, 1e-9)
	assert.Equal(t, domain.StatusPending, order.Status)
	assert.Nil(t, order.UpdatedAt)
	assert.False(t, order.CreatedAt.IsZero())
}

func TestCreateOrder_UpdatedAtIsNull(t *testing.T) {
	r := setupRouter()
	w := doRequest(r, http.MethodPost, "/api/orders", gin.H{
		"user_id":          "user-1",
		"items":            []gin.H{{"product_id": "prod-1", "quantity": 2, "price": 29.99}},
		"shipping_address": "123 Main St",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	assert.Equal(t, "null", string(raw["updated_at"]))
}

func TestCreateOrder_InvalidBody(t *testing.T) {
	r := setupRouter()

	tests := []struct {
		name string
		body gin.H
	}{
		{
			name: "missing user_id",
			body: gin.H{
				"items":            []gin.H{{"product_id": "p", "quantity": 1, "price": 1}},
				"shipping_address": "addr",
			},
		},
		{
			name: "missing items",
			body: gin.H{"user_id": "u", "shipping_address": "addr"},
		},
		{
			name: "empty items",
			body: gin.H{
				"user_id":          "u",
				"items":            []gin.H{},
				"shipping_address": "addr",
			},
		},
		{
			name: "negative quantity",
			body: gin.H{
				"user_id":          "u",
				"items":            []gin.H{{"product_id": "p", "quantity": -1, "price": 1}},
				"shipping_address": "addr",
			},
		},
		{
			name: "negative price",
			body: gin.H{
				"user_id":          "u",
				"items":            []gin.H{{"product_id": "p", "quantity": 1, "price": -0.5}},
				"shipping_address": "addr",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(r, http.MethodPost, "/api/orders", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestGetOrder_RoundTrip(t *testing.T) {
	r := setupRouter()
	created := createTestOrder(t, r, "user-1")

	w := doRequest(r, http.MethodGet, "/api/orders/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var fetched domain.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, created.UserID, fetched.UserID)
	assert.Equal(t, created.Items, fetched.Items)
	assert.Equal(t, created.TotalAmount, fetched.TotalAmount)
	assert.Equal(t, created.Status, fetched.Status)
	assert.Equal(t, created.ShippingAddress, fetched.ShippingAddress)
}

func TestGetOrder_NotFound(t *testing.T) {
	r := setupRouter()
	w := doRequest(r, http.MethodGet, "/api/orders/no-such-id", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListOrders(t *testing.T) {
	r := setupRouter()

	w := doRequest(r, http.MethodGet, "/api/orders", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())

	first := createTestOrder(t, r, "user-1")
	second := createTestOrder(t, r, "user-2")

	w = doRequest(r, http.MethodGet, "/api/orders", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var orders []domain.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &orders))
	require.Len(t, orders, 2)
	assert.Equal(t, first.ID, orders[0].ID)
	assert.Equal(t, second.ID, orders[1].ID)
}

func TestUpdateOrderStatus(t *testing.T) {
	r := setupRouter()
	created := createTestOrder(t, r, "user-1")

	w := doRequest(r, http.MethodPatch, "/api/orders/"+created.ID, gin.H{"status": "shipped"})
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool         `json:"success"`
		Data    domain.Order `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, domain.StatusShipped, body.Data.Status)
	assert.NotNil(t, body.Data.UpdatedAt)
}

func TestUpdateOrderStatus_InvalidLeavesOrderUnchanged(t *testing.T) {
	r := setupRouter()
	created := createTestOrder(t, r, "user-1")

	w := doRequest(r, http.MethodPatch, "/api/orders/"+created.ID, gin.H{"status": "bogus"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(r, http.MethodGet, "/api/orders/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var fetched domain.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	assert.Equal(t, domain.StatusPending, fetched.Status)
	assert.Nil(t, fetched.UpdatedAt)
}

func TestUpdateOrderStatus_NotFound(t *testing.T) {
	r := setupRouter()
	w := doRequest(r, http.MethodPatch, "/api/orders/no-such-id", gin.H{"status": "shipped"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateOrderStatus_NotFoundWinsOverInvalidStatus(t *testing.T) {
	r := setupRouter()
	w := doRequest(r, http.MethodPatch, "/api/orders/no-such-id", gin.H{"status": "bogus"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteOrder(t *testing.T) {
	r := setupRouter()
	created := createTestOrder(t, r, "user-1")

	w := doRequest(r, http.MethodDelete, "/api/orders/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool         `json:"success"`
		Data    domain.Order `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, created.ID, body.Data.ID)

	w = doRequest(r, http.MethodGet, "/api/orders/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteOrder_NotFound(t *testing.T) {
	r := setupRouter()
	w := doRequest(r, http.MethodDelete, "/api/orders/no-such-id", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListUserOrders(t *testing.T) {
	r := setupRouter()
	first := createTestOrder(t, r, "user-1")
	createTestOrder(t, r, "user-2")
	third := createTestOrder(t, r, "user-1")

	w := doRequest(r, http.MethodGet, "/api/users/user-1/orders", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var orders []domain.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &orders))
	require.Len(t, orders, 2)
	assert.Equal(t, first.ID, orders[0].ID)
	assert.Equal(t, third.ID, orders[1].ID)
}

func TestListUserOrders_EmptyIsNotAnError(t *testing.T) {
	r := setupRouter()
	createTestOrder(t, r, "user-1")

	w := doRequest(r, http.MethodGet, "/api/users/nobody/orders", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}
