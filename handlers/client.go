package handlers

import (
	"net/http"

	"wrenchworks/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetProfileHandler handles GET /api/clients/me.
func (h *ClientHandler) GetProfileHandler(c *gin.Context) {
	logger := getLogger(c)
	clientID := c.GetString("clientID")

	cl, err := h.Service.GetClientByID(clientID)
	if err != nil {
		logger.Error("Client not found", zap.String("id", clientID), zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": "client not found"})
		return
	}
	c.JSON(http.StatusOK, cl)
}

// UpdateProfileHandler handles PUT /api/clients/me. Accepts name, phone and
// vehicle changes; credentials and role are never writable here.
func (h *ClientHandler) UpdateProfileHandler(c *gin.Context) {
	logger := getLogger(c)
	clientID := c.GetString("clientID")

	var req models.Client
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.ID = clientID

	updated, err := h.Service.UpdateClient(&req)
	if err != nil {
		logger.Error("Failed to update client", zap.String("id", clientID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update profile"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteAccountHandler handles DELETE /api/clients/me.
func (h *ClientHandler) DeleteAccountHandler(c *gin.Context) {
	logger := getLogger(c)
	clientID := c.GetString("clientID")

	if err := h.Service.DeleteClient(clientID); err != nil {
		logger.Error("Failed to delete client", zap.String("id", clientID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete account"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "account deleted"})
}

// ListClientsHandler handles GET /api/clients (staff only).
func (h *ClientHandler) ListClientsHandler(c *gin.Context) {
	logger := getLogger(c)

	clients, err := h.Service.GetAllClients()
	if err != nil {
		logger.Error("Failed to list clients", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list clients"})
		return
	}
	c.JSON(http.StatusOK, clients)
}

// GetClientHandler handles GET /api/clients/:id (staff only).
func (h *ClientHandler) GetClientHandler(c *gin.Context) {
	logger := getLogger(c)
	id := c.Param("id")

	cl, err := h.Service.GetClientByID(id)
	if err != nil {
		logger.Error("Client not found", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": "client not found"})
		return
	}
	c.JSON(http.StatusOK, cl)
}

// UpdateFCMTokenHandler handles PUT /api/clients/me/fcm-token.
func (h *ClientHandler) UpdateFCMTokenHandler(c *gin.Context) {
	logger := getLogger(c)
	clientID := c.GetString("clientID")

	var req struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Service.UpdateFCMToken(clientID, req.Token); err != nil {
		logger.Error("Failed to store FCM token", zap.String("client", clientID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store device token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "device token updated"})
}

// GetNotificationsHandler handles GET /api/clients/me/notifications.
func (h *ClientHandler) GetNotificationsHandler(c *gin.Context) {
	logger := getLogger(c)
	clientID := c.GetString("clientID")

	feed, err := h.Service.GetNotifications(clientID)
	if err != nil {
		logger.Error("Failed to load notifications", zap.String("client", clientID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load notifications"})
		return
	}
	if feed == nil {
		feed = []models.Notification{}
	}
	c.JSON(http.StatusOK, feed)
}

// MarkNotificationsReadHandler handles PUT /api/clients/me/notifications/read.
func (h *ClientHandler) MarkNotificationsReadHandler(c *gin.Context) {
	logger := getLogger(c)
	clientID := c.GetString("clientID")

	if err := h.Service.MarkNotificationsRead(clientID); err != nil {
		logger.Error("Failed to mark notifications read", zap.String("client", clientID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update notifications"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "notifications marked read"})
}
