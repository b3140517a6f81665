package impl

import (
	"context"
	"fmt"
	"log/slog"

	"shopfront/internal/domain/entity"
	"shopfront/internal/domain/repository"
	"shopfront/internal/domain/service"
	"shopfront/internal/errors"
	"shopfront/internal/usecase"
)

type notificationService struct {
	userRepo repository.UserRepository
	notifier service.NotificationService
	logger   *slog.Logger
}

// NewNotificationService creates a new notification fan-out service instance
func NewNotificationService(
	userRepo repository.UserRepository,
	notifier service.NotificationService,
	logger *slog.Logger,
) usecase.NotificationUsecase {
	return &notificationService{
		userRepo: userRepo,
		notifier: notifier,
		logger:   logger,
	}
}

// HandleOrderEvent resolves the user's push token and sends the
// notification describing the order state change.
func (s *notificationService) HandleOrderEvent(ctx context.Context, event *service.OrderEvent) error {
	user, err := s.userRepo.GetUser(ctx, event.UserID)
	if err != nil {
		return errors.Wrap(err, "failed to resolve user for order event")
	}

	if user.FCMToken == "" {
		s.logger.Info("user has no push token, skipping notification",
			slog.String("user_id", event.UserID),
			slog.String("order_id", event.OrderID),
		)

		return nil
	}

	title, body := orderMessage(event)
	data := map[string]string{
		"type":     "order_update",
		"order_id": event.OrderID,
		"status":   string(event.Status),
	}

	if err := s.notifier.Send(ctx, user.FCMToken, title, body, data); err != nil {
		return errors.Wrap(err, "failed to send order notification")
	}

	s.logger.Info("order notification sent",
		slog.String("order_id", event.OrderID),
		slog.String("status", string(event.Status)),
	)

	return nil
}

// orderMessage renders the push title and body for an order state change.
func orderMessage(event *service.OrderEvent) (title, body string) {
	switch event.Status {
	case entity.OrderStatusPending:
		return "Order received", fmt.Sprintf("Your order for $%.2f has been received.", event.Total)
	case entity.OrderStatusConfirmed:
		return "Order confirmed", "Your order has been confirmed and is being prepared."
	case entity.OrderStatusShipped:
		return "Order shipped", "Your order is on its way."
	case entity.OrderStatusDelivered:
		return "Order delivered", "Your order has been delivered. Enjoy!"
	case entity.OrderStatusCancelled:
		return "Order cancelled", "Your order has been cancelled."
	default:
		return "Order update", fmt.Sprintf("Your order is now %s.", event.Status)
	}
}
