package client

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	clientRepo "wrenchworks/database/repository/client"
	"wrenchworks/models"
	"wrenchworks/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Session tokens live for a week, matching the mobile app's refresh cadence.
const sessionDuration = 7 * 24 * time.Hour

var (
	// ErrEmailTaken is returned when registering with an email already in use.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials is returned on a failed login or password check.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// DefaultClientService is the production ClientService.
type DefaultClientService struct {
	Repo clientRepo.ClientRepository
}

// Register creates a new client account with a bcrypt password hash.
func (s *DefaultClientService) Register(ctx context.Context, req models.ClientRegistrationRequest) (*models.Client, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.Repo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	c := &models.Client{
		ID:           uuid.New().String(),
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        email,
		Phone:        strings.TrimSpace(req.Phone),
		PasswordHash: string(hash),
		Role:         "client",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Create(c); err != nil {
		return nil, err
	}

	utils.GetLogger().Info("client registered", zap.String("client", c.ID))
	return c, nil
}

// Authenticate checks credentials and issues a JWT, storing its hash on the
// client document so tokens can be revoked server-side.
func (s *DefaultClientService) Authenticate(ctx context.Context, req models.AuthRequest) (*models.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	c, err := s.Repo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(c.ID, c.Email, c.Role, sessionDuration)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	c.TokenHash = utils.HashToken(token)
	c.UpdatedAt = time.Now()
	if err := s.Repo.Update(c); err != nil {
		return nil, err
	}

	return &models.AuthResponse{Token: token, Client: c}, nil
}

// Logout clears the stored token hash, invalidating the active session.
func (s *DefaultClientService) Logout(ctx context.Context, clientID string) error {
	c, err := s.Repo.GetByID(clientID)
	if err != nil {
		return err
	}
	c.TokenHash = ""
	c.UpdatedAt = time.Now()
	return s.Repo.Update(c)
}

// GetClientByID retrieves a client profile.
func (s *DefaultClientService) GetClientByID(id string) (*models.Client, error) {
	return s.Repo.GetByID(id)
}

// GetClientByEmail retrieves a client by email.
func (s *DefaultClientService) GetClientByEmail(email string) (*models.Client, error) {
	return s.Repo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
}

// GetAllClients lists every client account.
func (s *DefaultClientService) GetAllClients() ([]models.Client, error) {
	return s.Repo.GetAll()
}

// UpdateClient applies profile changes while preserving credentials and role.
func (s *DefaultClientService) UpdateClient(client *models.Client) (*models.Client, error) {
	existing, err := s.Repo.GetByID(client.ID)
	if err != nil {
		return nil, err
	}

	existing.FirstName = client.FirstName
	existing.LastName = client.LastName
	existing.Phone = client.Phone
	existing.Vehicles = client.Vehicles
	for i := range existing.Vehicles {
		if existing.Vehicles[i].ID == "" {
			existing.Vehicles[i].ID = uuid.New().String()
		}
	}
	existing.UpdatedAt = time.Now()

	if err := s.Repo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// DeleteClient removes a client account.
func (s *DefaultClientService) DeleteClient(id string) error {
	return s.Repo.Delete(id)
}

// ChangePassword rotates the password and revokes the current session.
func (s *DefaultClientService) ChangePassword(ctx context.Context, clientID, current, next string) error {
	c, err := s.Repo.GetByID(clientID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(current)); err != nil {
		return ErrInvalidCredentials
	}
	if len(next) < 8 {
		return errors.New("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	c.PasswordHash = string(hash)
	c.TokenHash = ""
	c.UpdatedAt = time.Now()
	return s.Repo.Update(c)
}

// UpdateFCMToken stores the device token used for push delivery.
func (s *DefaultClientService) UpdateFCMToken(clientID, token string) error {
	c, err := s.Repo.GetByID(clientID)
	if err != nil {
		return err
	}
	c.FCMToken = token
	c.UpdatedAt = time.Now()
	return s.Repo.Update(c)
}

// GetNotifications returns the client's in-app feed, unread first is the
// caller's concern; records come back in insertion order.
func (s *DefaultClientService) GetNotifications(clientID string) ([]models.Notification, error) {
	c, err := s.Repo.GetByID(clientID)
	if err != nil {
		return nil, err
	}
	return c.Notifications, nil
}

// MarkNotificationsRead flags the whole feed as read.
func (s *DefaultClientService) MarkNotificationsRead(clientID string) error {
	return s.Repo.MarkNotificationsRead(clientID)
}
