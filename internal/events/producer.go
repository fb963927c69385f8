package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Publisher is what the services depend on; the kafka producer implements it
// and tests substitute a recorder.
type Publisher interface {
	PublishOrderCreated(event OrderCreatedEvent) error
	PublishOrderCancelled(event OrderCancelledEvent) error
	PublishPaymentRecorded(event PaymentRecordedEvent) error
	PublishPaymentVerified(event PaymentVerifiedEvent) error
}

type KafkaProducer struct {
	writer *kafka.Writer
	logger *zap.Logger
}

func NewKafkaProducer(brokers, topic string, logger *zap.Logger) *KafkaProducer {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}

	return &KafkaProducer{
		writer: writer,
		logger: logger,
	}
}

func (p *KafkaProducer) PublishOrderCreated(event OrderCreatedEvent) error {
	return p.publish(event.OrderID, event.EventID, event)
}

func (p *KafkaProducer) PublishOrderCancelled(event OrderCancelledEvent) error {
	return p.publish(event.OrderID, event.EventID, event)
}

func (p *KafkaProducer) PublishPaymentRecorded(event PaymentRecordedEvent) error {
	return p.publish(event.OrderID, event.EventID, event)
}

func (p *KafkaProducer) PublishPaymentVerified(event PaymentVerifiedEvent) error {
	return p.publish(event.OrderID, event.EventID, event)
}

// publish keys messages by order id so every event for one order lands on the
// same partition, in order.
func (p *KafkaProducer) publish(orderID, eventID string, event interface{}) error {
	eventBytes, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("Failed to marshal event", zap.Error(err))
		return err
	}

	msg := kafka.Message{
		Key:   []byte(orderID),
		Value: eventBytes,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to publish event",
			zap.String("event_id", eventID),
			zap.String("order_id", orderID),
			zap.Error(err))
		return err
	}

	p.logger.Info("Event published",
		zap.String("event_id", eventID),
		zap.String("order_id", orderID))

	return nil
}

func (p *KafkaProducer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}
