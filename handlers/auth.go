package handlers

import (
	"errors"
	"net/http"

	"wrenchworks/middleware"
	"wrenchworks/models"
	clientSvc "wrenchworks/services/client"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ClientHandler serves account and session endpoints.
type ClientHandler struct {
	Service clientSvc.ClientService
}

// RegisterClientHandler handles POST /api/auth/register.
func (h *ClientHandler) RegisterClientHandler(c *gin.Context) {
	logger := getLogger(c)

	var req models.ClientRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.Service.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, clientSvc.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
			return
		}
		logger.Error("Failed to register client", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// AuthenticateClientHandler handles POST /api/auth/login.
func (h *ClientHandler) AuthenticateClientHandler(c *gin.Context) {
	logger := getLogger(c)

	var req models.AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.Service.Authenticate(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, clientSvc.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
			return
		}
		logger.Error("Failed to authenticate client", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to authenticate"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// LogoutClientHandler handles POST /api/auth/logout.
func (h *ClientHandler) LogoutClientHandler(c *gin.Context) {
	logger := getLogger(c)

	clientID := c.GetString("clientID")
	if err := h.Service.Logout(c.Request.Context(), clientID); err != nil {
		logger.Error("Failed to log out client", zap.String("client", clientID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to log out"})
		return
	}
	middleware.InvalidateAuthCache(c.Request.Context(), clientID)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// ChangePasswordHandler handles PUT /api/clients/me/password.
func (h *ClientHandler) ChangePasswordHandler(c *gin.Context) {
	logger := getLogger(c)
	clientID := c.GetString("clientID")

	var req struct {
		CurrentPassword string `json:"currentPassword" binding:"required"`
		NewPassword     string `json:"newPassword" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Service.ChangePassword(c.Request.Context(), clientID, req.CurrentPassword, req.NewPassword); err != nil {
		if errors.Is(err, clientSvc.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "current password is incorrect"})
			return
		}
		logger.Error("Failed to change password", zap.String("client", clientID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to change password"})
		return
	}
	middleware.InvalidateAuthCache(c.Request.Context(), clientID)
	c.JSON(http.StatusOK, gin.H{"message": "password changed, please log in again"})
}
