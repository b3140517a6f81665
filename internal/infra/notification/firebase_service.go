// Package notification implements push delivery through Firebase Cloud Messaging.
package notification

import (
	"context"
	"fmt"

	"shopfront/internal/domain/service"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

type firebaseService struct {
	client *messaging.Client
}

// NewFirebaseService creates a new Firebase notification service instance
func NewFirebaseService(ctx context.Context, credentialsPath string) (service.NotificationService, error) {
	var opts []option.ClientOption
	if credentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsPath))
	}

	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get messaging client: %w", err)
	}

	return &firebaseService{
		client: client,
	}, nil
}

// Send delivers a push notification to a single device token
func (s *firebaseService) Send(ctx context.Context, token, title, body string, data map[string]string) error {
	message := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	if _, err := s.client.Send(ctx, message); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}

	return nil
}
