package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "pending"
	OrderStatusConfirmed      OrderStatus = "confirmed"
	OrderStatusPreparing      OrderStatus = "preparing"
	OrderStatusReady          OrderStatus = "ready"
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// Order is the aggregate written by order creation, payment processing,
// cancellation and admin verification. OrderStatus and PaymentStatus are
// independent axes; this service itself only produces the combinations
//
//	pending..delivered + pending    cash order awaiting verification
//	confirmed + paid                after non-cash processing or admin verify
//	cancelled + pending|paid        cancellation never touches paymentStatus
//
// failed and refunded exist for wire compatibility with admin tooling.
type Order struct {
	ID                primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	OrderID           string              `bson:"orderId" json:"orderId"`
	UserID            primitive.ObjectID  `bson:"user" json:"user"`
	Items             []OrderItem         `bson:"items" json:"items"`
	Subtotal          float64             `bson:"subtotal" json:"subtotal"`
	DeliveryFee       float64             `bson:"deliveryFee" json:"deliveryFee"`
	TotalAmount       float64             `bson:"totalAmount" json:"totalAmount"`
	DeliveryAddress   Address             `bson:"deliveryAddress" json:"deliveryAddress"`
	PaymentMethod     PaymentMethod       `bson:"paymentMethod" json:"paymentMethod"`
	PaymentStatus     PaymentStatus       `bson:"paymentStatus" json:"paymentStatus"`
	PaymentDetails    PaymentDetails      `bson:"paymentDetails,omitempty" json:"paymentDetails"`
	OrderStatus       OrderStatus         `bson:"orderStatus" json:"orderStatus"`
	AssignedTo        *primitive.ObjectID `bson:"assignedTo,omitempty" json:"assignedTo,omitempty"`
	EstimatedDelivery *time.Time          `bson:"estimatedDelivery,omitempty" json:"estimatedDelivery,omitempty"`
	DeliveredAt       *time.Time          `bson:"deliveredAt,omitempty" json:"deliveredAt,omitempty"`
	Notes             string              `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt         time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// OrderItem captures product, quantity and the unit price and size label at
// order time. Items are immutable after creation; totals are never recomputed.
type OrderItem struct {
	Product  primitive.ObjectID `bson:"product" json:"product"`
	Quantity int                `bson:"quantity" json:"quantity"`
	Price    float64            `bson:"price" json:"price"`
	Size     ProductSize        `bson:"size,omitempty" json:"size,omitempty"`
}

type Address struct {
	Street       string       `bson:"street,omitempty" json:"street,omitempty"`
	City         string       `bson:"city,omitempty" json:"city,omitempty"`
	State        string       `bson:"state,omitempty" json:"state,omitempty"`
	ZipCode      string       `bson:"zipCode,omitempty" json:"zipCode,omitempty"`
	Coordinates  *Coordinates `bson:"coordinates,omitempty" json:"coordinates,omitempty"`
	Instructions string       `bson:"instructions,omitempty" json:"instructions,omitempty"`
}

type Coordinates struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}

// PaymentDetails is populated progressively: buyer-supplied proof when the
// payment is processed, paidAt on processing or admin verification.
type PaymentDetails struct {
	TransactionID string     `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	AccountNumber string     `bson:"accountNumber,omitempty" json:"accountNumber,omitempty"`
	PhoneNumber   string     `bson:"phoneNumber,omitempty" json:"phoneNumber,omitempty"`
	BankName      string     `bson:"bankName,omitempty" json:"bankName,omitempty"`
	ReceiptURL    string     `bson:"receiptUrl,omitempty" json:"receiptUrl,omitempty"`
	PaidAt        *time.Time `bson:"paidAt,omitempty" json:"paidAt,omitempty"`
}

// NewOrderID keeps the display convention ORD-<millis>-<suffix> while using a
// uuid fragment for the suffix so ids stay unique under concurrent creation.
func NewOrderID(now time.Time) string {
	return fmt.Sprintf("ORD-%d-%s", now.UnixMilli(), uuid.NewString()[:8])
}

// DeliveryFeeFor returns 0 when the subtotal is strictly above the free
// delivery threshold, otherwise the flat fee.
func DeliveryFeeFor(subtotal, fee, freeOver float64) float64 {
	if subtotal > freeOver {
		return 0
	}
	return fee
}

type CreateOrderRequest struct {
	Items           []CreateOrderItem `json:"items" binding:"required,min=1,dive"`
	DeliveryAddress Address           `json:"deliveryAddress" binding:"required"`
	PaymentMethod   PaymentMethod     `json:"paymentMethod" binding:"required"`
	Notes           string            `json:"notes"`
}

type CreateOrderItem struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

type ProcessPaymentRequest struct {
	OrderID       string        `json:"orderId" binding:"required"`
	PaymentMethod PaymentMethod `json:"paymentMethod" binding:"required"`
	TransactionID string        `json:"transactionId"`
	PhoneNumber   string        `json:"phoneNumber"`
}
