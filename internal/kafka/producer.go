package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"salsa-storefront/internal/config"
	"salsa-storefront/internal/models"
)

// Producer streams order lifecycle events to Kafka. Publishing is
// best-effort from the store's point of view; callers log failures and
// move on.
type Producer struct {
	Writer *kafka.Writer
	Topics config.Topics
}

func NewProducer(brokers []string, topics config.Topics) *Producer {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Balancer: &kafka.LeastBytes{},
	}
	return &Producer{Writer: writer, Topics: topics}
}

type orderEvent struct {
	EventID   string       `json:"event_id"`
	Type      string       `json:"type"`
	OrderID   string       `json:"order_id"`
	Order     *models.Order `json:"order,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

func (p *Producer) publish(topic, eventType, orderID string, order *models.Order) error {
	msgBytes, err := json.Marshal(orderEvent{
		EventID:   uuid.NewString(),
		Type:      eventType,
		OrderID:   orderID,
		Order:     order,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return p.Writer.WriteMessages(context.Background(),
		kafka.Message{
			Topic: topic,
			Key:   []byte(orderID),
			Value: msgBytes,
		},
	)
}

// PublishOrderPlaced streams a newly placed order.
func (p *Producer) PublishOrderPlaced(order models.Order) error {
	return p.publish(p.Topics.OrderPlaced, "order_placed", order.ID, &order)
}

// PublishOrderStatus streams an order status change.
func (p *Producer) PublishOrderStatus(order models.Order) error {
	return p.publish(p.Topics.OrderStatus, "order_status", order.ID, &order)
}

// PublishOrderDeleted streams an order deletion.
func (p *Producer) PublishOrderDeleted(orderID string) error {
	return p.publish(p.Topics.OrderDeleted, "order_deleted", orderID, nil)
}

func (p *Producer) Close() error {
	return p.Writer.Close()
}

// NoopPublisher satisfies the cart service's publisher interface when
// Kafka is disabled.
type NoopPublisher struct{}

func (NoopPublisher) PublishOrderPlaced(models.Order) error { return nil }
func (NoopPublisher) PublishOrderStatus(models.Order) error { return nil }
func (NoopPublisher) PublishOrderDeleted(string) error      { return nil }
