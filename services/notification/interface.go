package notification

import "context"

// NotificationService fans a client-facing event out to every channel: an
// in-app notification record, an FCM push when the client has a device token,
// and a transactional email when the event warrants one.
type NotificationService interface {
	// Notify records an in-app notification and attempts an FCM push.
	Notify(ctx context.Context, clientID, kind, title, message string, data map[string]string) error
	// SendEmail delivers a transactional email to the client's address.
	SendEmail(ctx context.Context, clientID, subject, htmlBody, textBody string) error
}
