package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mikiyeme205-creator/MEKELLE-BREAD-MAKING/internal/domain"
	"github.com/mikiyeme205-creator/MEKELLE-BREAD-MAKING/internal/repository"
	"github.com/mikiyeme205-creator/MEKELLE-BREAD-MAKING/internal/service"
)

func (m *memStore) RecordPayment(_ context.Context, order *domain.Order) error {
	stored, ok := m.orders[order.OrderID]
	if !ok {
		return repository.ErrOrderNotFound
	}
	*stored = *order
	return nil
}

func (m *memStore) ListPayments(_ context.Context) ([]domain.PaymentRecord, error) {
	out := []domain.PaymentRecord{}
	for _, o := range m.orders {
		out = append(out, domain.PaymentRecord{
			ID:            o.ID,
			OrderID:       o.OrderID,
			PaymentMethod: o.PaymentMethod,
			PaymentStatus: o.PaymentStatus,
			TotalAmount:   o.TotalAmount,
			CreatedAt:     o.CreatedAt,
		})
	}
	return out, nil
}

func (m *memStore) PaymentStats(_ context.Context) (*domain.PaymentStats, error) {
	stats := &domain.PaymentStats{}
	for _, o := range m.orders {
		stats.TotalPayments++
		if o.PaymentStatus == domain.PaymentStatusPaid {
			stats.Verified++
			stats.TotalAmount += o.TotalAmount
		} else if o.PaymentStatus == domain.PaymentStatusPending {
			stats.Pending++
		}
	}
	return stats, nil
}

func (m *memStore) MarkPaid(_ context.Context, id primitive.ObjectID) (*domain.Order, error) {
	for _, o := range m.orders {
		if o.ID == id {
			now := time.Now()
			o.PaymentStatus = domain.PaymentStatusPaid
			o.OrderStatus = domain.OrderStatusConfirmed
			o.PaymentDetails.PaidAt = &now
			cp := *o
			return &cp, nil
		}
	}
	return nil, repository.ErrOrderNotFound
}

func newPaymentTestRouter(store *memStore, userID primitive.ObjectID, admin bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	paySvc := service.NewPaymentService(store, nopPublisher{}, logger)
	h := NewPaymentHandler(paySvc, logger)
	ah := NewAdminHandler(paySvc, logger)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user_id", userID.Hex())
		c.Set("request_id", "test-request")
		if admin {
			c.Set("is_admin", true)
		}
	})
	router.GET("/payments/methods", h.GetMethods)
	router.POST("/payments/process", h.ProcessPayment)
	router.POST("/payments/verify/:orderId", h.VerifyPayment)
	router.GET("/admin/payments", ah.ListPayments)
	router.GET("/admin/payments/stats", ah.PaymentStats)
	router.POST("/admin/payments/:id/verify", ah.VerifyPayment)
	return router
}

func seedOrder(store *memStore, userID primitive.ObjectID) *domain.Order {
	order := &domain.Order{
		ID:            primitive.NewObjectID(),
		OrderID:       domain.NewOrderID(time.Now()),
		UserID:        userID,
		Subtotal:      30,
		DeliveryFee:   20,
		TotalAmount:   50,
		PaymentMethod: domain.PaymentMethodCash,
		PaymentStatus: domain.PaymentStatusPending,
		OrderStatus:   domain.OrderStatusPending,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	store.orders[order.OrderID] = order
	return order
}

func TestGetMethodsEndpoint(t *testing.T) {
	store := newMemStore()
	router := newPaymentTestRouter(store, primitive.NewObjectID(), false)

	w := doJSON(router, http.MethodGet, "/payments/methods", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool                              `json:"success"`
		Methods map[string]map[string]interface{} `json:"methods"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Len(t, resp.Methods, 8)
	assert.Equal(t, "Telebirr", resp.Methods["telebirr"]["name"])
}

func TestProcessPaymentEndpoint(t *testing.T) {
	store := newMemStore()
	userID := primitive.NewObjectID()
	router := newPaymentTestRouter(store, userID, false)
	order := seedOrder(store, userID)

	w := doJSON(router, http.MethodPost, "/payments/process", gin.H{
		"orderId":       order.OrderID,
		"paymentMethod": "telebirr",
		"transactionId": "TX1",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success             bool         `json:"success"`
		Order               domain.Order `json:"order"`
		PaymentInstructions string       `json:"paymentInstructions"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, domain.PaymentStatusPaid, resp.Order.PaymentStatus)
	assert.Equal(t, domain.OrderStatusConfirmed, resp.Order.OrderStatus)
	assert.Equal(t, "Send payment to Telebirr 0969377085", resp.PaymentInstructions)
}

func TestProcessPaymentEndpoint_UnknownMethod(t *testing.T) {
	store := newMemStore()
	userID := primitive.NewObjectID()
	router := newPaymentTestRouter(store, userID, false)
	order := seedOrder(store, userID)

	w := doJSON(router, http.MethodPost, "/payments/process", gin.H{
		"orderId":       order.OrderID,
		"paymentMethod": "visa",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProcessPaymentEndpoint_OrderNotFound(t *testing.T) {
	store := newMemStore()
	router := newPaymentTestRouter(store, primitive.NewObjectID(), false)

	w := doJSON(router, http.MethodPost, "/payments/process", gin.H{
		"orderId":       "ORD-1-missing",
		"paymentMethod": "telebirr",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestVerifyPaymentEndpoint(t *testing.T) {
	store := newMemStore()
	userID := primitive.NewObjectID()
	router := newPaymentTestRouter(store, userID, false)
	order := seedOrder(store, userID)

	w := doJSON(router, http.MethodPost, "/payments/verify/"+order.OrderID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success  bool `json:"success"`
		Verified bool `json:"verified"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.False(t, resp.Verified)
}

func TestAdminVerifyEndpoint(t *testing.T) {
	store := newMemStore()
	userID := primitive.NewObjectID()
	router := newPaymentTestRouter(store, userID, true)
	order := seedOrder(store, userID)

	w := doJSON(router, http.MethodPost, "/admin/payments/"+order.ID.Hex()+"/verify", nil)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, domain.PaymentStatusPaid, store.orders[order.OrderID].PaymentStatus)
	assert.Equal(t, domain.OrderStatusConfirmed, store.orders[order.OrderID].OrderStatus)
}

func TestAdminVerifyEndpoint_BadID(t *testing.T) {
	store := newMemStore()
	router := newPaymentTestRouter(store, primitive.NewObjectID(), true)

	w := doJSON(router, http.MethodPost, "/admin/payments/not-hex/verify", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminStatsEndpoint(t *testing.T) {
	store := newMemStore()
	userID := primitive.NewObjectID()
	router := newPaymentTestRouter(store, userID, true)
	seedOrder(store, userID)

	w := doJSON(router, http.MethodGet, "/admin/payments/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool                `json:"success"`
		Stats   domain.PaymentStats `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.Stats.TotalPayments)
	assert.Equal(t, int64(1), resp.Stats.Pending)
}
