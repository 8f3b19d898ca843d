package client

import (
	"context"
	"fmt"
	"testing"

	"wrenchworks/models"
	"wrenchworks/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

type fakeClientRepo struct {
	clients map[string]*models.Client
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{clients: make(map[string]*models.Client)}
}

func (r *fakeClientRepo) GetByID(id string) (*models.Client, error) {
	c, ok := r.clients[id]
	if !ok {
		return nil, fmt.Errorf("client %s not found", id)
	}
	cp := *c
	return &cp, nil
}

func (r *fakeClientRepo) GetByEmail(email string) (*models.Client, error) {
	for _, c := range r.clients {
		if c.Email == email {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeClientRepo) GetByTokenHash(tokenHash string) (*models.Client, error) {
	for _, c := range r.clients {
		if c.TokenHash == tokenHash {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeClientRepo) GetAll() ([]models.Client, error) {
	var out []models.Client
	for _, c := range r.clients {
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeClientRepo) Create(c *models.Client) error {
	cp := *c
	r.clients[c.ID] = &cp
	return nil
}

func (r *fakeClientRepo) Update(c *models.Client) error {
	if _, ok := r.clients[c.ID]; !ok {
		return fmt.Errorf("client %s not found", c.ID)
	}
	cp := *c
	r.clients[c.ID] = &cp
	return nil
}

func (r *fakeClientRepo) Delete(id string) error {
	delete(r.clients, id)
	return nil
}

func (r *fakeClientRepo) AppendNotification(clientID string, n models.Notification) error {
	c, ok := r.clients[clientID]
	if !ok {
		return fmt.Errorf("client %s not found", clientID)
	}
	c.Notifications = append(c.Notifications, n)
	return nil
}

func (r *fakeClientRepo) MarkNotificationsRead(clientID string) error {
	c, ok := r.clients[clientID]
	if !ok {
		return fmt.Errorf("client %s not found", clientID)
	}
	for i := range c.Notifications {
		c.Notifications[i].Read = true
	}
	return nil
}

func (r *fakeClientRepo) GetByIDWithProjection(id string, projection bson.M) (*models.Client, error) {
	return r.GetByID(id)
}

func registration() models.ClientRegistrationRequest {
	return models.ClientRegistrationRequest{
		FirstName: "Maria",
		LastName:  "Silva",
		Email:     "Maria@Example.com",
		Phone:     "555 0100",
		Password:  "hunter2hunter2",
	}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the account with a hashed password", func(t *testing.T) {
		svc := &DefaultClientService{Repo: newFakeClientRepo()}

		c, err := svc.Register(ctx, registration())
		require.NoError(t, err)
		assert.Equal(t, "maria@example.com", c.Email)
		assert.Equal(t, "client", c.Role)
		assert.NotEmpty(t, c.ID)
		assert.NotEmpty(t, c.PasswordHash)
		assert.NotEqual(t, "hunter2hunter2", c.PasswordHash)
	})

	t.Run("rejects a taken email regardless of case", func(t *testing.T) {
		svc := &DefaultClientService{Repo: newFakeClientRepo()}

		_, err := svc.Register(ctx, registration())
		require.NoError(t, err)

		req := registration()
		req.Email = "MARIA@example.com"
		_, err = svc.Register(ctx, req)
		assert.ErrorIs(t, err, ErrEmailTaken)
	})
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()

	t.Run("issues a token and stores its hash", func(t *testing.T) {
		repo := newFakeClientRepo()
		svc := &DefaultClientService{Repo: repo}
		created, err := svc.Register(ctx, registration())
		require.NoError(t, err)

		resp, err := svc.Authenticate(ctx, models.AuthRequest{
			Email:    "maria@example.com",
			Password: "hunter2hunter2",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)

		stored, err := repo.GetByID(created.ID)
		require.NoError(t, err)
		assert.Equal(t, utils.HashToken(resp.Token), stored.TokenHash)
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		svc := &DefaultClientService{Repo: newFakeClientRepo()}
		_, err := svc.Register(ctx, registration())
		require.NoError(t, err)

		_, err = svc.Authenticate(ctx, models.AuthRequest{
			Email:    "maria@example.com",
			Password: "wrong",
		})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("rejects an unknown email", func(t *testing.T) {
		svc := &DefaultClientService{Repo: newFakeClientRepo()}

		_, err := svc.Authenticate(ctx, models.AuthRequest{
			Email:    "nobody@example.com",
			Password: "whatever",
		})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("rotates the hash and revokes the session", func(t *testing.T) {
		repo := newFakeClientRepo()
		svc := &DefaultClientService{Repo: repo}
		created, err := svc.Register(ctx, registration())
		require.NoError(t, err)
		_, err = svc.Authenticate(ctx, models.AuthRequest{
			Email: "maria@example.com", Password: "hunter2hunter2",
		})
		require.NoError(t, err)

		err = svc.ChangePassword(ctx, created.ID, "hunter2hunter2", "correcthorsebattery")
		require.NoError(t, err)

		stored, _ := repo.GetByID(created.ID)
		assert.Empty(t, stored.TokenHash)

		_, err = svc.Authenticate(ctx, models.AuthRequest{
			Email: "maria@example.com", Password: "correcthorsebattery",
		})
		assert.NoError(t, err)
	})

	t.Run("requires the current password", func(t *testing.T) {
		svc := &DefaultClientService{Repo: newFakeClientRepo()}
		created, err := svc.Register(ctx, registration())
		require.NoError(t, err)

		err = svc.ChangePassword(ctx, created.ID, "wrong", "correcthorsebattery")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestUpdateClientPreservesCredentials(t *testing.T) {
	ctx := context.Background()
	repo := newFakeClientRepo()
	svc := &DefaultClientService{Repo: repo}
	created, err := svc.Register(ctx, registration())
	require.NoError(t, err)

	updated, err := svc.UpdateClient(&models.Client{
		ID:        created.ID,
		FirstName: "Maria Clara",
		LastName:  "Silva",
		Phone:     "555 0200",
		Vehicles: []models.Vehicle{
			{Make: "Fiat", Model: "Uno", Year: 2015, Plate: "ABC1234"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Maria Clara", updated.FirstName)
	assert.Equal(t, created.PasswordHash, updated.PasswordHash)
	assert.Equal(t, "client", updated.Role)
	require.Len(t, updated.Vehicles, 1)
	assert.NotEmpty(t, updated.Vehicles[0].ID)
}
