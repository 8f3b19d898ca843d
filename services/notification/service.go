package notification

import (
	"context"
	"fmt"
	"time"

	"wrenchworks/config"
	clientRepo "wrenchworks/database/repository/client"
	"wrenchworks/models"
	"wrenchworks/utils"

	"firebase.google.com/go/v4/messaging"
	"github.com/google/uuid"
	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"
)

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Clients clientRepo.ClientRepository
	Resend  *resend.Client
}

// NewDefaultNotificationService wires the notification channels together.
func NewDefaultNotificationService(clients clientRepo.ClientRepository) (*DefaultNotificationService, error) {
	if clients == nil {
		return nil, fmt.Errorf("notification service initialization error: client repository is nil")
	}
	var resendClient *resend.Client
	if config.AppConfig.ResendAPIKey != "" {
		resendClient = resend.NewClient(config.AppConfig.ResendAPIKey)
	}
	return &DefaultNotificationService{
		Clients: clients,
		Resend:  resendClient,
	}, nil
}

// Notify records an in-app notification on the client document and attempts an
// FCM push. A missing device token is not an error; the in-app record is the
// channel of record.
func (s *DefaultNotificationService) Notify(ctx context.Context, clientID, kind, title, message string, data map[string]string) error {
	logger := utils.GetLogger()

	record := models.Notification{
		ID:        uuid.New().String(),
		Type:      kind,
		Title:     title,
		Message:   message,
		Data:      toAnyMap(data),
		Read:      false,
		CreatedAt: time.Now(),
	}
	if err := s.Clients.AppendNotification(clientID, record); err != nil {
		return fmt.Errorf("Notify: failed to record notification for client %s: %w", clientID, err)
	}

	client, err := s.Clients.GetByID(clientID)
	if err != nil {
		return fmt.Errorf("Notify: could not find client %s: %w", clientID, err)
	}
	if client.FCMToken == "" {
		logger.Debug("Notify: client has no FCM token, in-app only", zap.String("clientID", clientID))
		return nil
	}

	msg := &messaging.Message{
		Token: client.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  message,
		},
		Data: data,
	}
	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		// Push is best-effort; the in-app record already landed.
		logger.Warn("Notify: FCM push failed", zap.String("clientID", clientID), zap.Error(err))
	}
	return nil
}

// SendEmail delivers a transactional email to the client's address via Resend.
func (s *DefaultNotificationService) SendEmail(ctx context.Context, clientID, subject, htmlBody, textBody string) error {
	if s.Resend == nil {
		utils.GetLogger().Warn("SendEmail: resend client not configured, skipping", zap.String("clientID", clientID))
		return nil
	}

	client, err := s.Clients.GetByID(clientID)
	if err != nil {
		return fmt.Errorf("SendEmail: could not find client %s: %w", clientID, err)
	}

	params := &resend.SendEmailRequest{
		From:    config.AppConfig.EmailFrom,
		To:      []string{client.Email},
		Subject: subject,
	}
	if htmlBody != "" {
		params.Html = htmlBody
	}
	if textBody != "" {
		params.Text = textBody
	}
	if params.Html == "" && params.Text == "" {
		return fmt.Errorf("SendEmail: empty body for subject %q", subject)
	}

	if _, err := s.Resend.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("SendEmail: failed to send email to %s: %w", client.Email, err)
	}
	return nil
}

func toAnyMap(in map[string]string) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
