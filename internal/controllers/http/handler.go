package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"order-service/internal/config"
	"order-service/internal/domain"
	"order-service/internal/middlewares"
	"order-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const userOrdersCacheTTL = 10 * time.Second

type Handler struct {
	service *services.OrderService
	rdb     *redis.Client // nil disables response caching
}

func NewHandler(s *services.OrderService, rdb *redis.Client) *Handler {
	return &Handler{service: s, rdb: rdb}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)
	r.GET("/ready", h.Ready)

	api := r.Group("/api")
	{
		api.GET("/orders", h.ListOrders)
		api.GET("/orders/:id", h.GetOrder)
		api.POST("/orders", h.CreateOrder)
		api.PATCH("/orders/:id", h.UpdateOrderStatus)
		api.DELETE("/orders/:id", h.DeleteOrder)
		api.GET("/users/:user_id/orders", h.ListUserOrders)
	}
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   config.ServiceName,
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   config.Version,
	})
}

func (h *Handler) Ready(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ready",
		"service": config.ServiceName,
	})
}

func (h *Handler) ListOrders(c *gin.Context) {
	defer func() { middlewares.RecordOrderOperation("list", c.Writer.Status() < 400) }()

	orders, err := h.service.ListOrders(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) GetOrder(c *gin.Context) {
	defer func() { middlewares.RecordOrderOperation("get", c.Writer.Status() < 400) }()

	order, err := h.service.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) CreateOrder(c *gin.Context) {
	defer func() { middlewares.RecordOrderOperation("create", c.Writer.Status() < 400) }()

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items := make([]domain.OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, domain.OrderItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}

	order, err := h.service.CreateOrder(c.Request.Context(), req.UserID, items, req.ShippingAddress)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	h.invalidateUserOrdersCache(order.UserID)

	c.JSON(http.StatusCreated, order)
}

func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	defer func() { middlewares.RecordOrderOperation("update_status", c.Writer.Status() < 400) }()

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), domain.OrderStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		case errors.Is(err, services.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	h.invalidateUserOrdersCache(order.UserID)

	c.JSON(http.StatusOK, gin.H{"success": true, "data": order})
}

func (h *Handler) DeleteOrder(c *gin.Context) {
	defer func() { middlewares.RecordOrderOperation("delete", c.Writer.Status() < 400) }()

	removed, err := h.service.DeleteOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	h.invalidateUserOrdersCache(removed.UserID)

	c.JSON(http.StatusOK, gin.H{"success": true, "data": removed})
}

func (h *Handler) ListUserOrders(c *gin.Context) {
	defer func() { middlewares.RecordOrderOperation("list_user", c.Writer.Status() < 400) }()

	userID := c.Param("user_id")
	ctx := c.Request.Context()
	cacheKey := "orders:user:" + userID

	if h.rdb != nil {
		if b, err := h.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var orders []domain.Order
			if err := json.Unmarshal([]byte(b), &orders); err == nil {
				c.JSON(http.StatusOK, orders)
				return
			}
		}
	}

	orders, err := h.service.ListOrdersForUser(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	if h.rdb != nil {
		if data, err := json.Marshal(orders); err == nil {
			h.rdb.Set(ctx, cacheKey, data, userOrdersCacheTTL)
		}
	}

	c.JSON(http.StatusOK, orders)
}

func (h *Handler) invalidateUserOrdersCache(userID string) {
	if h.rdb == nil {
		return
	}
	h.rdb.Del(context.Background(), "orders:user:"+userID)
}
