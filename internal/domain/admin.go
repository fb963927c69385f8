package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PaymentRecord is the admin dashboard's row: an order projected down to its
// payment fields with the owning user's contact details joined in.
type PaymentRecord struct {
	ID             primitive.ObjectID `bson:"_id" json:"_id"`
	OrderID        string             `bson:"orderId" json:"orderId"`
	User           *UserContact       `bson:"user,omitempty" json:"user"`
	PaymentMethod  PaymentMethod      `bson:"paymentMethod" json:"paymentMethod"`
	PaymentStatus  PaymentStatus      `bson:"paymentStatus" json:"paymentStatus"`
	PaymentDetails PaymentDetails     `bson:"paymentDetails,omitempty" json:"paymentDetails"`
	TotalAmount    float64            `bson:"totalAmount" json:"totalAmount"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}

type UserContact struct {
	ID       primitive.ObjectID `bson:"_id" json:"_id"`
	FullName string             `bson:"fullName,omitempty" json:"fullName,omitempty"`
	Phone    string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Email    string             `bson:"email,omitempty" json:"email,omitempty"`
}

// PaymentStats are the dashboard's headline counters. Verified counts paid
// orders; TotalAmount sums only those.
type PaymentStats struct {
	TotalPayments int64   `bson:"totalPayments" json:"totalPayments"`
	Pending       int64   `bson:"pending" json:"pending"`
	Verified      int64   `bson:"verified" json:"verified"`
	TotalAmount   float64 `bson:"totalAmount" json:"totalAmount"`
}
