package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mikiyeme205-creator/MEKELLE-BREAD-MAKING/internal/repository"
	"github.com/mikiyeme205-creator/MEKELLE-BREAD-MAKING/internal/service"
)

// AdminHandler serves the dashboard's payment surface.
type AdminHandler struct {
	paymentService *service.PaymentService
	logger         *zap.Logger
}

func NewAdminHandler(paymentService *service.PaymentService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		paymentService: paymentService,
		logger:         logger,
	}
}

func (h *AdminHandler) ListPayments(c *gin.Context) {
	payments, err := h.paymentService.ListPayments(c.Request.Context())
	if err != nil {
		h.respondAdminError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"payments": payments,
	})
}

func (h *AdminHandler) PaymentStats(c *gin.Context) {
	stats, err := h.paymentService.PaymentStats(c.Request.Context())
	if err != nil {
		h.respondAdminError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stats":   stats,
	})
}

func (h *AdminHandler) VerifyPayment(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid payment id"})
		return
	}

	order, err := h.paymentService.AdminVerify(c.Request.Context(), id, c.GetString("request_id"))
	if err != nil {
		h.respondAdminError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Payment verified successfully",
		"order":   order,
	})
}

func (h *AdminHandler) respondAdminError(c *gin.Context, err error) {
	if errors.Is(err, repository.ErrOrderNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
		return
	}
	h.logger.Error("Admin operation failed",
		zap.String("request_id", c.GetString("request_id")),
		zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"message": err.Error(),
	})
}
