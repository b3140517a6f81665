package service

import (
	"context"
	"time"

	"shopfront/internal/domain/entity"
)

// OrderEvent is published whenever an order changes state. Consumers use it
// to fan out push notifications and back-office updates.
type OrderEvent struct {
	OrderID    string             `json:"order_id"`
	UserID     string             `json:"user_id"`
	Status     entity.OrderStatus `json:"status"`
	Total      float64            `json:"total"`
	OccurredAt time.Time          `json:"occurred_at"`
}

// EventPublisher publishes order lifecycle events to the message broker.
type EventPublisher interface {
	// PublishOrderEvent enqueues an event for asynchronous delivery.
	PublishOrderEvent(ctx context.Context, event *OrderEvent) error

	// Close releases broker resources.
	Close() error
}
