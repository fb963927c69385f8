package events

import (
	"time"

	"github.com/mikiyeme205-creator/MEKELLE-BREAD-MAKING/internal/domain"
)

const (
	TypeOrderCreated    = "order.created"
	TypeOrderCancelled  = "order.cancelled"
	TypePaymentRecorded = "payment.recorded"
	TypePaymentVerified = "payment.verified"
)

type OrderCreatedEvent struct {
	EventID     string             `json:"event_id"`
	Type        string             `json:"type"`
	OrderID     string             `json:"order_id"`
	UserID      string             `json:"user_id"`
	TotalAmount float64            `json:"total_amount"`
	Items       []domain.OrderItem `json:"items"`
	OrderStatus string             `json:"order_status"`
	Timestamp   time.Time          `json:"timestamp"`
	RequestID   string             `json:"request_id"`
}

type OrderCancelledEvent struct {
	EventID   string             `json:"event_id"`
	Type      string             `json:"type"`
	OrderID   string             `json:"order_id"`
	UserID    string             `json:"user_id"`
	Items     []domain.OrderItem `json:"items"`
	Timestamp time.Time          `json:"timestamp"`
	RequestID string             `json:"request_id"`
}

type PaymentRecordedEvent struct {
	EventID       string    `json:"event_id"`
	Type          string    `json:"type"`
	OrderID       string    `json:"order_id"`
	UserID        string    `json:"user_id"`
	PaymentMethod string    `json:"payment_method"`
	PaymentStatus string    `json:"payment_status"`
	TotalAmount   float64   `json:"total_amount"`
	Timestamp     time.Time `json:"timestamp"`
	RequestID     string    `json:"request_id"`
}

type PaymentVerifiedEvent struct {
	EventID   string    `json:"event_id"`
	Type      string    `json:"type"`
	OrderID   string    `json:"order_id"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id"`
}
