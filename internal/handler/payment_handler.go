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

type PaymentHandler struct {
	paymentService *service.PaymentService
	logger         *zap.Logger
}

func NewPaymentHandler(paymentService *service.PaymentService, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		logger:         logger,
	}
}

func (h *PaymentHandler) GetMethods(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"methods": h.paymentService.Methods(),
	})
}

func (h *PaymentHandler) ProcessPayment(c *gin.Context) {
	var req domain.ProcessPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request format",
			"details": err.Error(),
		})
		return
	}

	requestID := c.GetString("request_id")

	order, instructions, err := h.paymentService.ProcessPayment(c.Request.Context(), callerID(c), req, requestID)
	if err != nil {
		h.respondPaymentError(c, requestID, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":             true,
		"message":             "Payment processed successfully",
		"order":               order,
		"paymentInstructions": instructions,
	})
}

func (h *PaymentHandler) VerifyPayment(c *gin.Context) {
	order, verified, err := h.paymentService.VerifyPayment(c.Request.Context(), callerID(c), c.Param("orderId"))
	if err != nil {
		h.respondPaymentError(c, c.GetString("request_id"), err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"verified": verified,
		"order":    order,
	})
}

func (h *PaymentHandler) respondPaymentError(c *gin.Context, requestID string, err error) {
	switch {
	case errors.Is(err, repository.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
	case errors.Is(err, service.ErrUnknownPaymentMethod):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
	default:
		h.logger.Error("Payment operation failed",
			zap.String("request_id", requestID),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"success":    false,
			"message":    err.Error(),
			"request_id": requestID,
		})
	}
}
