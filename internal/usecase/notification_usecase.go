package usecase

import (
	"context"

	"shopfront/internal/domain/service"
)

// NotificationUsecase consumes order events and fans them out as pushes
type NotificationUsecase interface {
	// HandleOrderEvent resolves the user's push token and sends the
	// notification describing the order state change.
	HandleOrderEvent(ctx context.Context, event *service.OrderEvent) error
}
