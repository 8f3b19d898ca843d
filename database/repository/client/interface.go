package clientRepo

import (
	"wrenchworks/models"

	"go.mongodb.org/mongo-driver/bson"
)

// ClientRepository defines methods for client data access.
type ClientRepository interface {
	// GetByID retrieves a client by its unique ID.
	GetByID(id string) (*models.Client, error)
	// GetByEmail retrieves a client by its email address. Returns (nil, nil)
	// when no client matches.
	GetByEmail(email string) (*models.Client, error)
	// GetByTokenHash retrieves the client holding the given session token hash.
	GetByTokenHash(tokenHash string) (*models.Client, error)
	// GetAll retrieves all clients.
	GetAll() ([]models.Client, error)
	// Create inserts a new client record.
	Create(client *models.Client) error
	// Update modifies an existing client record.
	Update(client *models.Client) error
	// Delete removes a client record by its ID.
	Delete(id string) error
	// AppendNotification pushes an in-app notification onto the client document.
	AppendNotification(clientID string, n models.Notification) error
	// MarkNotificationsRead flags all of a client's notifications as read.
	MarkNotificationsRead(clientID string) error
	// GetByIDWithProjection retrieves a client by ID with a projection.
	GetByIDWithProjection(id string, projection bson.M) (*models.Client, error)
}
