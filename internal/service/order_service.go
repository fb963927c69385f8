package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mikiyeme205-creator/MEKELLE-BREAD-MAKING/internal/domain"
	"github.com/mikiyeme205-creator/MEKELLE-BREAD-MAKING/internal/events"
	"github.com/mikiyeme205-creator/MEKELLE-BREAD-MAKING/internal/repository"
)

type ProductStore interface {
	GetProduct(ctx context.Context, id primitive.ObjectID) (*domain.Product, error)
}

type OrderStore interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
	GetOrder(ctx context.Context, orderID string, userID primitive.ObjectID) (*domain.Order, error)
	ListOrders(ctx context.Context, userID primitive.ObjectID) ([]domain.Order, error)
	CancelOrder(ctx context.Context, order *domain.Order) error
}

// Pricing carries the delivery fee rule: a flat fee waived when the subtotal
// is strictly above the threshold.
type Pricing struct {
	DeliveryFee           float64
	FreeDeliveryThreshold float64
}

type OrderService struct {
	orders   OrderStore
	products ProductStore
	producer events.Publisher
	pricing  Pricing
	logger   *zap.Logger
}

func NewOrderService(orders OrderStore, products ProductStore, producer events.Publisher, pricing Pricing, logger *zap.Logger) *OrderService {
	return &OrderService{
		orders:   orders,
		products: products,
		producer: producer,
		pricing:  pricing,
		logger:   logger,
	}
}

// CreateOrder validates every requested item before any write: a missing or
// disabled product fails the whole operation and no order or stock change is
// persisted. Prices come from the product's current price, never from the
// request. The order starts pending on both axes regardless of payment
// method; cash is not special at creation time.
func (s *OrderService) CreateOrder(ctx context.Context, userID primitive.ObjectID, req domain.CreateOrderRequest, requestID string) (*domain.Order, error) {
	if _, ok := domain.MethodInfoFor(req.PaymentMethod); !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPaymentMethod, req.PaymentMethod)
	}

	items := make([]domain.OrderItem, 0, len(req.Items))
	var subtotal float64
	for _, item := range req.Items {
		productID, err := primitive.ObjectIDFromHex(item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidProductID, item.ProductID)
		}

		product, err := s.products.GetProduct(ctx, productID)
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, fmt.Errorf("product %s: %w", item.ProductID, ErrProductUnavailable)
		}
		if err != nil {
			return nil, err
		}
		if !product.IsAvailable {
			return nil, fmt.Errorf("product %s: %w", item.ProductID, ErrProductUnavailable)
		}

		subtotal += product.Price * float64(item.Quantity)
		items = append(items, domain.OrderItem{
			Product:  product.ID,
			Quantity: item.Quantity,
			Price:    product.Price,
			Size:     product.Size,
		})
	}

	deliveryFee := domain.DeliveryFeeFor(subtotal, s.pricing.DeliveryFee, s.pricing.FreeDeliveryThreshold)
	now := time.Now()
	order := &domain.Order{
		OrderID:         domain.NewOrderID(now),
		UserID:          userID,
		Items:           items,
		Subtotal:        subtotal,
		DeliveryFee:     deliveryFee,
		TotalAmount:     subtotal + deliveryFee,
		DeliveryAddress: req.DeliveryAddress,
		PaymentMethod:   req.PaymentMethod,
		PaymentStatus:   domain.PaymentStatusPending,
		OrderStatus:     domain.OrderStatusPending,
		Notes:           req.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.orders.CreateOrder(ctx, order); err != nil {
		s.logger.Error("Failed to save order",
			zap.String("order_id", order.OrderID),
			zap.Error(err))
		return nil, err
	}

	event := events.OrderCreatedEvent{
		EventID:     uuid.New().String(),
		Type:        events.TypeOrderCreated,
		OrderID:     order.OrderID,
		UserID:      order.UserID.Hex(),
		TotalAmount: order.TotalAmount,
		Items:       order.Items,
		OrderStatus: string(order.OrderStatus),
		Timestamp:   time.Now(),
		RequestID:   requestID,
	}
	if err := s.producer.PublishOrderCreated(event); err != nil {
		// Publish failures never fail the request; the order is already
		// persisted and consumers catch up eventually.
		s.logger.Error("Failed to publish event",
			zap.String("order_id", order.OrderID),
			zap.Error(err))
	}

	s.logger.Info("Order created",
		zap.String("order_id", order.OrderID),
		zap.String("user_id", order.UserID.Hex()),
		zap.Float64("total_amount", order.TotalAmount))

	return order, nil
}

// GetOrder returns a single order owned by the caller.
func (s *OrderService) GetOrder(ctx context.Context, userID primitive.ObjectID, orderID string) (*domain.Order, error) {
	return s.orders.GetOrder(ctx, orderID, userID)
}

// ListOrders returns the caller's orders newest-first.
func (s *OrderService) ListOrders(ctx context.Context, userID primitive.ObjectID) ([]domain.Order, error) {
	return s.orders.ListOrders(ctx, userID)
}

// CancelOrder is the one guarded transition of the lifecycle: only pending
// and confirmed orders may be cancelled, and each line item's quantity goes
// back onto the product's stock. Payment status is deliberately untouched;
// cancelling does not imply a refund.
func (s *OrderService) CancelOrder(ctx context.Context, userID primitive.ObjectID, orderID, requestID string) (*domain.Order, error) {
	order, err := s.orders.GetOrder(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}

	if !domain.CanCancel(order.OrderStatus) {
		return nil, ErrInvalidTransition
	}

	if err := s.orders.CancelOrder(ctx, order); err != nil {
		if errors.Is(err, repository.ErrOrderNotCancellable) {
			// Lost the race against a concurrent status change.
			return nil, ErrInvalidTransition
		}
		s.logger.Error("Failed to cancel order",
			zap.String("order_id", orderID),
			zap.Error(err))
		return nil, err
	}

	event := events.OrderCancelledEvent{
		EventID:   uuid.New().String(),
		Type:      events.TypeOrderCancelled,
		OrderID:   order.OrderID,
		UserID:    order.UserID.Hex(),
		Items:     order.Items,
		Timestamp: time.Now(),
		RequestID: requestID,
	}
	if err := s.producer.PublishOrderCancelled(event); err != nil {
		s.logger.Error("Failed to publish event",
			zap.String("order_id", order.OrderID),
			zap.Error(err))
	}

	s.logger.Info("Order cancelled",
		zap.String("order_id", order.OrderID),
		zap.String("user_id", order.UserID.Hex()))

	return order, nil
}
