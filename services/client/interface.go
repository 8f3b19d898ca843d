package client

import (
	"context"

	"wrenchworks/models"
)

// ClientService manages customer accounts and sessions.
type ClientService interface {
	// Register creates a new client account. Fails when the email is taken.
	Register(ctx context.Context, req models.ClientRegistrationRequest) (*models.Client, error)
	// Authenticate verifies credentials and issues a session token.
	Authenticate(ctx context.Context, req models.AuthRequest) (*models.AuthResponse, error)
	// Logout invalidates the client's current session.
	Logout(ctx context.Context, clientID string) error

	// GetClientByID retrieves a client profile.
	GetClientByID(id string) (*models.Client, error)
	// GetClientByEmail retrieves a client by email. Returns (nil, nil) when absent.
	GetClientByEmail(email string) (*models.Client, error)
	// GetAllClients lists every client account.
	GetAllClients() ([]models.Client, error)
	// UpdateClient applies profile changes (name, phone, vehicles).
	UpdateClient(client *models.Client) (*models.Client, error)
	// DeleteClient removes a client account.
	DeleteClient(id string) error

	// ChangePassword rotates the password after checking the current one.
	ChangePassword(ctx context.Context, clientID, current, next string) error
	// UpdateFCMToken stores the device token used for push delivery.
	UpdateFCMToken(clientID, token string) error

	// GetNotifications returns the client's in-app notification feed.
	GetNotifications(clientID string) ([]models.Notification, error)
	// MarkNotificationsRead flags the whole feed as read.
	MarkNotificationsRead(clientID string) error
}
