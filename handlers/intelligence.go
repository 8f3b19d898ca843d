package handlers

import (
	"net/http"

	"wrenchworks/models"
	ai "wrenchworks/services/intelligence"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AIHandler serves the workshop assistant endpoints.
type AIHandler struct {
	Service ai.AIService
}

// ChatHandler handles POST /api/ai/chat.
func (h *AIHandler) ChatHandler(c *gin.Context) {
	logger := getLogger(c)

	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	// The assistant only ever answers about the logged-in client's own data.
	req.ClientID = c.GetString("clientID")

	resp, err := h.Service.ProcessUserInput(c.Request.Context(), req)
	if err != nil {
		logger.Error("Assistant turn failed", zap.String("client", req.ClientID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "assistant is unavailable right now"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ResetChatHandler handles DELETE /api/ai/chat.
func (h *AIHandler) ResetChatHandler(c *gin.Context) {
	logger := getLogger(c)
	clientID := c.GetString("clientID")

	if err := h.Service.ResetConversation(c.Request.Context(), clientID); err != nil {
		logger.Error("Failed to reset conversation", zap.String("client", clientID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reset conversation"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "conversation reset"})
}
