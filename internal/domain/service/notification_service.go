package service

import "context"

// NotificationService defines the interface for sending push notifications to devices.
type NotificationService interface {
	// Send delivers a notification with a title and body to a device token.
	// The data payload is attached for client-side routing.
	Send(ctx context.Context, token, title, body string, data map[string]string) error
}
