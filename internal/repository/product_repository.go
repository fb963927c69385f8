package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mikiyeme205-creator/MEKELLE-BREAD-MAKING/internal/domain"
)

var ErrProductNotFound = errors.New("product not found")

type ProductRepository struct {
	products *mongo.Collection
}

func NewProductRepository(client *mongo.Client, database string) *ProductRepository {
	return &ProductRepository{
		products: client.Database(database).Collection(productsCollection),
	}
}

func (r *ProductRepository) GetProduct(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	var product domain.Product
	err := r.products.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}
