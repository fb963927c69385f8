package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mikiyeme205-creator/MEKELLE-BREAD-MAKING/internal/domain"
	"github.com/mikiyeme205-creator/MEKELLE-BREAD-MAKING/internal/events"
)

type PaymentStore interface {
	GetOrder(ctx context.Context, orderID string, userID primitive.ObjectID) (*domain.Order, error)
	RecordPayment(ctx context.Context, order *domain.Order) error
	ListPayments(ctx context.Context) ([]domain.PaymentRecord, error)
	PaymentStats(ctx context.Context) (*domain.PaymentStats, error)
	MarkPaid(ctx context.Context, id primitive.ObjectID) (*domain.Order, error)
}

// PaymentService records buyer-supplied payment proof against orders. There
// is no gateway: selecting any non-cash method is itself treated as proof of
// payment, and admin verification is a manual override on top of that.
type PaymentService struct {
	orders   PaymentStore
	producer events.Publisher
	logger   *zap.Logger
}

func NewPaymentService(orders PaymentStore, producer events.Publisher, logger *zap.Logger) *PaymentService {
	return &PaymentService{
		orders:   orders,
		producer: producer,
		logger:   logger,
	}
}

// Methods returns the static payment method table.
func (s *PaymentService) Methods() map[domain.PaymentMethod]domain.MethodInfo {
	return domain.AllPaymentMethods()
}

// ProcessPayment overwrites the order's payment method with the buyer's
// choice and records whatever proof was supplied. Non-cash methods mark the
// order paid and confirmed unconditionally, with no check that a transaction
// id was given; cash leaves both statuses exactly as they were. Returns the
// updated order and the instruction string for the chosen method.
func (s *PaymentService) ProcessPayment(ctx context.Context, userID primitive.ObjectID, req domain.ProcessPaymentRequest, requestID string) (*domain.Order, string, error) {
	info, ok := domain.MethodInfoFor(req.PaymentMethod)
	if !ok {
		return nil, "", fmt.Errorf("%w: %s", ErrUnknownPaymentMethod, req.PaymentMethod)
	}

	order, err := s.orders.GetOrder(ctx, req.OrderID, userID)
	if err != nil {
		return nil, "", err
	}

	now := time.Now()
	order.PaymentMethod = req.PaymentMethod
	order.PaymentDetails = domain.PaymentDetails{
		TransactionID: req.TransactionID,
		PhoneNumber:   req.PhoneNumber,
		AccountNumber: info.Account,
		BankName:      info.Name,
		PaidAt:        &now,
	}
	if req.PaymentMethod != domain.PaymentMethodCash {
		order.PaymentStatus = domain.PaymentStatusPaid
		order.OrderStatus = domain.OrderStatusConfirmed
	}
	order.UpdatedAt = now

	if err := s.orders.RecordPayment(ctx, order); err != nil {
		s.logger.Error("Failed to record payment",
			zap.String("order_id", order.OrderID),
			zap.Error(err))
		return nil, "", err
	}

	event := events.PaymentRecordedEvent{
		EventID:       uuid.New().String(),
		Type:          events.TypePaymentRecorded,
		OrderID:       order.OrderID,
		UserID:        order.UserID.Hex(),
		PaymentMethod: string(order.PaymentMethod),
		PaymentStatus: string(order.PaymentStatus),
		TotalAmount:   order.TotalAmount,
		Timestamp:     time.Now(),
		RequestID:     requestID,
	}
	if err := s.producer.PublishPaymentRecorded(event); err != nil {
		s.logger.Error("Failed to publish event",
			zap.String("order_id", order.OrderID),
			zap.Error(err))
	}

	s.logger.Info("Payment recorded",
		zap.String("order_id", order.OrderID),
		zap.String("payment_method", string(order.PaymentMethod)),
		zap.String("payment_status", string(order.PaymentStatus)))

	return order, info.Instructions, nil
}

// VerifyPayment reports whether the stored payment status is already paid.
// It never transitions anything; pending cash orders stay pending.
func (s *PaymentService) VerifyPayment(ctx context.Context, userID primitive.ObjectID, orderID string) (*domain.Order, bool, error) {
	order, err := s.orders.GetOrder(ctx, orderID, userID)
	if err != nil {
		return nil, false, err
	}
	return order, order.PaymentStatus == domain.PaymentStatusPaid, nil
}

// ListPayments returns every order as a payment row for the dashboard.
func (s *PaymentService) ListPayments(ctx context.Context) ([]domain.PaymentRecord, error) {
	return s.orders.ListPayments(ctx)
}

// PaymentStats returns the dashboard's aggregate counters.
func (s *PaymentService) PaymentStats(ctx context.Context) (*domain.PaymentStats, error) {
	return s.orders.PaymentStats(ctx)
}

// AdminVerify is the manual override that flips a pending payment to paid
// and the order to confirmed, keyed by document id as the dashboard posts it.
func (s *PaymentService) AdminVerify(ctx context.Context, id primitive.ObjectID, requestID string) (*domain.Order, error) {
	order, err := s.orders.MarkPaid(ctx, id)
	if err != nil {
		return nil, err
	}

	event := events.PaymentVerifiedEvent{
		EventID:   uuid.New().String(),
		Type:      events.TypePaymentVerified,
		OrderID:   order.OrderID,
		Timestamp: time.Now(),
		RequestID: requestID,
	}
	if err := s.producer.PublishPaymentVerified(event); err != nil {
		s.logger.Error("Failed to publish event",
			zap.String("order_id", order.OrderID),
			zap.Error(err))
	}

	s.logger.Info("Payment verified by admin",
		zap.String("order_id", order.OrderID))

	return order, nil
}
