package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProductCategory string

const (
	CategoryBread  ProductCategory = "bread"
	CategoryPastry ProductCategory = "pastry"
	CategoryCake   ProductCategory = "cake"
	CategoryDrink  ProductCategory = "drink"
)

type ProductSize string

const (
	SizeSmall  ProductSize = "small"
	SizeMedium ProductSize = "medium"
	SizeLarge  ProductSize = "large"
)

// Product is read by order creation for validation and pricing. Stock is
// decremented on creation and restored on cancellation; there is no floor
// check, so outstanding orders can drive it negative.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Category    ProductCategory    `bson:"category" json:"category"`
	Size        ProductSize        `bson:"size" json:"size"`
	Price       float64            `bson:"price" json:"price"`
	Images      []string           `bson:"images,omitempty" json:"images,omitempty"`
	IsAvailable bool               `bson:"isAvailable" json:"isAvailable"`
	Stock       int                `bson:"stock" json:"stock"`
	Rating      float64            `bson:"rating" json:"rating"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
