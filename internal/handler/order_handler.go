package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mikiyeme205-creator/MEKELLE-BREAD-MAKING/internal/domain"
	"github.com/mikiyeme205-creator/MEKELLE-BREAD-MAKING/internal/repository"
	"github.com/mikiyeme205-creator/MEKELLE-BREAD-MAKING/internal/service"
)

type OrderHandler struct {
	orderService *service.OrderService
	logger       *zap.Logger
}

func NewOrderHandler(orderService *service.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		logger:       logger,
	}
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req domain.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request format",
			"details": err.Error(),
		})
		return
	}

	userID := callerID(c)
	requestID := c.GetString("request_id")

	order, err := h.orderService.CreateOrder(c.Request.Context(), userID, req, requestID)
	if err != nil {
		h.respondOrderError(c, requestID, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Order created successfully",
		"order":   order,
	})
}

func (h *OrderHandler) ListMyOrders(c *gin.Context) {
	orders, err := h.orderService.ListOrders(c.Request.Context(), callerID(c))
	if err != nil {
		h.respondOrderError(c, c.GetString("request_id"), err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"orders":  orders,
	})
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.orderService.GetOrder(c.Request.Context(), callerID(c), c.Param("orderId"))
	if err != nil {
		h.respondOrderError(c, c.GetString("request_id"), err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"order":   order,
	})
}

func (h *OrderHandler) CancelOrder(c *gin.Context) {
	requestID := c.GetString("request_id")

	order, err := h.orderService.CancelOrder(c.Request.Context(), callerID(c), c.Param("orderId"), requestID)
	if err != nil {
		h.respondOrderError(c, requestID, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Order cancelled successfully",
		"order":   order,
	})
}

func (h *OrderHandler) TrackOrder(c *gin.Context) {
	order, err := h.orderService.GetOrder(c.Request.Context(), callerID(c), c.Param("orderId"))
	if err != nil {
		h.respondOrderError(c, c.GetString("request_id"), err)
		return
	}

	tracking := domain.TrackingFor(order.OrderStatus)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"tracking": gin.H{
			"progress":          tracking.Progress,
			"message":           tracking.Message,
			"estimatedDelivery": order.EstimatedDelivery,
			"deliveredAt":       order.DeliveredAt,
			"assignedTo":        order.AssignedTo,
		},
	})
}

func (h *OrderHandler) respondOrderError(c *gin.Context, requestID string, err error) {
	switch {
	case errors.Is(err, repository.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
	case errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrProductUnavailable),
		errors.Is(err, service.ErrInvalidProductID),
		errors.Is(err, service.ErrUnknownPaymentMethod):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
	default:
		h.logger.Error("Order operation failed",
			zap.String("request_id", requestID),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"success":    false,
			"message":    err.Error(),
			"request_id": requestID,
		})
	}
}
