package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mikiyeme205-creator/MEKELLE-BREAD-MAKING/internal/domain"
)

var (
	ErrOrderNotFound = errors.New("order not found")

	// ErrOrderNotCancellable is returned when the guarded cancel update
	// matches no document: the order moved past pending/confirmed between
	// the caller's read and the write.
	ErrOrderNotCancellable = errors.New("order not in a cancellable state")
)

type OrderRepository struct {
	client   *mongo.Client
	orders   *mongo.Collection
	products *mongo.Collection
	users    *mongo.Collection
}

func NewOrderRepository(client *mongo.Client, database string) *OrderRepository {
	db := client.Database(database)
	return &OrderRepository{
		client:   client,
		orders:   db.Collection(ordersCollection),
		products: db.Collection(productsCollection),
		users:    db.Collection(usersCollection),
	}
}

// CreateOrder inserts the order and decrements stock for every line item in
// one transaction, so a failed insert never leaves a stock delta behind and
// concurrent creations cannot interleave between the two writes. Stock is
// allowed to go negative.
func (r *OrderRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	sess, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		res, err := r.orders.InsertOne(sc, order)
		if err != nil {
			return nil, fmt.Errorf("failed to insert order: %w", err)
		}
		if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
			order.ID = oid
		}
		for _, item := range order.Items {
			_, err := r.products.UpdateOne(sc,
				bson.M{"_id": item.Product},
				bson.M{"$inc": bson.M{"stock": -item.Quantity}},
			)
			if err != nil {
				return nil, fmt.Errorf("failed to decrement stock for %s: %w", item.Product.Hex(), err)
			}
		}
		return nil, nil
	})
	return err
}

// GetOrder resolves an order by its display id, scoped to the owning user so
// callers can never read someone else's order.
func (r *OrderRepository) GetOrder(ctx context.Context, orderID string, userID primitive.ObjectID) (*domain.Order, error) {
	var order domain.Order
	err := r.orders.FindOne(ctx, bson.M{"orderId": orderID, "user": userID}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ListOrders returns the user's orders newest-first.
func (r *OrderRepository) ListOrders(ctx context.Context, userID primitive.ObjectID) ([]domain.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.orders.Find(ctx, bson.M{"user": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	orders := []domain.Order{}
	if err := cur.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// CancelOrder flips the order to cancelled and restores stock for every line
// item in one transaction. The status guard lives in the update filter, so a
// concurrent writer that already moved the order past confirmed makes this a
// no-op and the caller gets ErrOrderNotCancellable instead of a lost update.
func (r *OrderRepository) CancelOrder(ctx context.Context, order *domain.Order) error {
	sess, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer sess.EndSession(ctx)

	now := time.Now()
	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		res, err := r.orders.UpdateOne(sc,
			bson.M{
				"orderId":     order.OrderID,
				"user":        order.UserID,
				"orderStatus": bson.M{"$in": []domain.OrderStatus{domain.OrderStatusPending, domain.OrderStatusConfirmed}},
			},
			bson.M{"$set": bson.M{
				"orderStatus": domain.OrderStatusCancelled,
				"updatedAt":   now,
			}},
		)
		if err != nil {
			return nil, fmt.Errorf("failed to cancel order: %w", err)
		}
		if res.MatchedCount == 0 {
			return nil, ErrOrderNotCancellable
		}
		for _, item := range order.Items {
			_, err := r.products.UpdateOne(sc,
				bson.M{"_id": item.Product},
				bson.M{"$inc": bson.M{"stock": item.Quantity}},
			)
			if err != nil {
				return nil, fmt.Errorf("failed to restore stock for %s: %w", item.Product.Hex(), err)
			}
		}
		return nil, nil
	})
	if err != nil {
		return err
	}

	order.OrderStatus = domain.OrderStatusCancelled
	order.UpdatedAt = now
	return nil
}

// RecordPayment persists the payment fields already set on the order.
func (r *OrderRepository) RecordPayment(ctx context.Context, order *domain.Order) error {
	res, err := r.orders.UpdateOne(ctx,
		bson.M{"orderId": order.OrderID, "user": order.UserID},
		bson.M{"$set": bson.M{
			"paymentMethod":  order.PaymentMethod,
			"paymentDetails": order.PaymentDetails,
			"paymentStatus":  order.PaymentStatus,
			"orderStatus":    order.OrderStatus,
			"updatedAt":      order.UpdatedAt,
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to record payment: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// ListPayments projects every order down to its payment fields with the
// owning user's contact details joined in, newest-first.
func (r *OrderRepository) ListPayments(ctx context.Context) ([]domain.PaymentRecord, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: usersCollection},
			{Key: "localField", Value: "user"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "user"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$user"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "orderId", Value: 1},
			{Key: "paymentMethod", Value: 1},
			{Key: "paymentStatus", Value: 1},
			{Key: "paymentDetails", Value: 1},
			{Key: "totalAmount", Value: 1},
			{Key: "createdAt", Value: 1},
			{Key: "user._id", Value: 1},
			{Key: "user.fullName", Value: 1},
			{Key: "user.phone", Value: 1},
			{Key: "user.email", Value: 1},
		}}},
	}

	cur, err := r.orders.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	payments := []domain.PaymentRecord{}
	if err := cur.All(ctx, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

// PaymentStats aggregates the dashboard counters in a single group stage.
func (r *OrderRepository) PaymentStats(ctx context.Context) (*domain.PaymentStats, error) {
	paidCond := bson.A{bson.D{{Key: "$eq", Value: bson.A{"$paymentStatus", domain.PaymentStatusPaid}}}, 1, 0}
	pendingCond := bson.A{bson.D{{Key: "$eq", Value: bson.A{"$paymentStatus", domain.PaymentStatusPending}}}, 1, 0}
	paidAmountCond := bson.A{bson.D{{Key: "$eq", Value: bson.A{"$paymentStatus", domain.PaymentStatusPaid}}}, "$totalAmount", 0}

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "totalPayments", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "pending", Value: bson.D{{Key: "$sum", Value: bson.D{{Key: "$cond", Value: pendingCond}}}}},
			{Key: "verified", Value: bson.D{{Key: "$sum", Value: bson.D{{Key: "$cond", Value: paidCond}}}}},
			{Key: "totalAmount", Value: bson.D{{Key: "$sum", Value: bson.D{{Key: "$cond", Value: paidAmountCond}}}}},
		}}},
	}

	cur, err := r.orders.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var stats []domain.PaymentStats
	if err := cur.All(ctx, &stats); err != nil {
		return nil, err
	}
	if len(stats) == 0 {
		return &domain.PaymentStats{}, nil
	}
	return &stats[0], nil
}

// MarkPaid is the admin verification write: paid + confirmed, by mongo _id
// (the dashboard posts the document id, not the display orderId).
func (r *OrderRepository) MarkPaid(ctx context.Context, id primitive.ObjectID) (*domain.Order, error) {
	now := time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var order domain.Order
	err := r.orders.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"paymentStatus":         domain.PaymentStatusPaid,
			"orderStatus":           domain.OrderStatusConfirmed,
			"paymentDetails.paidAt": now,
			"updatedAt":             now,
		}},
		opts,
	).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}
