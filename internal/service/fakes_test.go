package service

import (
	"context"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mikiyeme205-creator/MEKELLE-BREAD-MAKING/internal/domain"
	"github.com/mikiyeme205-creator/MEKELLE-BREAD-MAKING/internal/events"
	"github.com/mikiyeme205-creator/MEKELLE-BREAD-MAKING/internal/repository"
)

// fakeStore mirrors the repository's observable behavior in memory,
// including the stock side effects and the guarded cancel update.
type fakeStore struct {
	products map[primitive.ObjectID]*domain.Product
	orders   map[string]*domain.Order
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products: make(map[primitive.ObjectID]*domain.Product),
		orders:   make(map[string]*domain.Order),
	}
}

func (f *fakeStore) addProduct(p domain.Product) primitive.ObjectID {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	f.products[p.ID] = &p
	return p.ID
}

func (f *fakeStore) GetProduct(_ context.Context, id primitive.ObjectID) (*domain.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeStore) CreateOrder(_ context.Context, order *domain.Order) error {
	order.ID = primitive.NewObjectID()
	cp := *order
	f.orders[order.OrderID] = &cp
	for _, item := range order.Items {
		f.products[item.Product].Stock -= item.Quantity
	}
	return nil
}

func (f *fakeStore) GetOrder(_ context.Context, orderID string, userID primitive.ObjectID) (*domain.Order, error) {
	o, ok := f.orders[orderID]
	if !ok || o.UserID != userID {
		return nil, repository.ErrOrderNotFound
	}
	cp := *o
	return &cp, nil
}

func (f *fakeStore) ListOrders(_ context.Context, userID primitive.ObjectID) ([]domain.Order, error) {
	out := []domain.Order{}
	for _, o := range f.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeStore) CancelOrder(_ context.Context, order *domain.Order) error {
	stored, ok := f.orders[order.OrderID]
	if !ok || !domain.CanCancel(stored.OrderStatus) {
		return repository.ErrOrderNotCancellable
	}
	now := time.Now()
	stored.OrderStatus = domain.OrderStatusCancelled
	stored.UpdatedAt = now
	for _, item := range stored.Items {
		f.products[item.Product].Stock += item.Quantity
	}
	order.OrderStatus = domain.OrderStatusCancelled
	order.UpdatedAt = now
	return nil
}

func (f *fakeStore) RecordPayment(_ context.Context, order *domain.Order) error {
	stored, ok := f.orders[order.OrderID]
	if !ok {
		return repository.ErrOrderNotFound
	}
	stored.PaymentMethod = order.PaymentMethod
	stored.PaymentDetails = order.PaymentDetails
	stored.PaymentStatus = order.PaymentStatus
	stored.OrderStatus = order.OrderStatus
	stored.UpdatedAt = order.UpdatedAt
	return nil
}

func (f *fakeStore) ListPayments(_ context.Context) ([]domain.PaymentRecord, error) {
	out := []domain.PaymentRecord{}
	for _, o := range f.orders {
		out = append(out, domain.PaymentRecord{
			ID:             o.ID,
			OrderID:        o.OrderID,
			PaymentMethod:  o.PaymentMethod,
			PaymentStatus:  o.PaymentStatus,
			PaymentDetails: o.PaymentDetails,
			TotalAmount:    o.TotalAmount,
			CreatedAt:      o.CreatedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeStore) PaymentStats(_ context.Context) (*domain.PaymentStats, error) {
	stats := &domain.PaymentStats{}
	for _, o := range f.orders {
		stats.TotalPayments++
		switch o.PaymentStatus {
		case domain.PaymentStatusPending:
			stats.Pending++
		case domain.PaymentStatusPaid:
			stats.Verified++
			stats.TotalAmount += o.TotalAmount
		}
	}
	return stats, nil
}

func (f *fakeStore) MarkPaid(_ context.Context, id primitive.ObjectID) (*domain.Order, error) {
	for _, o := range f.orders {
		if o.ID == id {
			now := time.Now()
			o.PaymentStatus = domain.PaymentStatusPaid
			o.OrderStatus = domain.OrderStatusConfirmed
			o.PaymentDetails.PaidAt = &now
			o.UpdatedAt = now
			cp := *o
			return &cp, nil
		}
	}
	return nil, repository.ErrOrderNotFound
}

// fakePublisher records published events instead of writing to kafka.
type fakePublisher struct {
	created   []events.OrderCreatedEvent
	cancelled []events.OrderCancelledEvent
	recorded  []events.PaymentRecordedEvent
	verified  []events.PaymentVerifiedEvent
}

func (p *fakePublisher) PublishOrderCreated(e events.OrderCreatedEvent) error {
	p.created = append(p.created, e)
	return nil
}

func (p *fakePublisher) PublishOrderCancelled(e events.OrderCancelledEvent) error {
	p.cancelled = append(p.cancelled, e)
	return nil
}

func (p *fakePublisher) PublishPaymentRecorded(e events.PaymentRecordedEvent) error {
	p.recorded = append(p.recorded, e)
	return nil
}

func (p *fakePublisher) PublishPaymentVerified(e events.PaymentVerifiedEvent) error {
	p.verified = append(p.verified, e)
	return nil
}
