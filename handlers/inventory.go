package handlers

import (
	"errors"
	"net/http"

	partRepo "wrenchworks/database/repository/part"
	"wrenchworks/models"
	inventorySvc "wrenchworks/services/inventory"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// InventoryHandler serves the parts catalogue endpoints (staff only).
type InventoryHandler struct {
	Service inventorySvc.InventoryService
}

// ListPartsHandler handles GET /api/parts.
func (h *InventoryHandler) ListPartsHandler(c *gin.Context) {
	logger := getLogger(c)

	parts, err := h.Service.GetAllParts()
	if err != nil {
		logger.Error("Failed to list parts", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list parts"})
		return
	}
	c.JSON(http.StatusOK, parts)
}

// ListLowStockPartsHandler handles GET /api/parts/low-stock.
func (h *InventoryHandler) ListLowStockPartsHandler(c *gin.Context) {
	logger := getLogger(c)

	parts, err := h.Service.GetLowStockParts()
	if err != nil {
		logger.Error("Failed to list low stock parts", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list low stock parts"})
		return
	}
	if parts == nil {
		parts = []models.Part{}
	}
	c.JSON(http.StatusOK, parts)
}

// GetPartHandler handles GET /api/parts/:id.
func (h *InventoryHandler) GetPartHandler(c *gin.Context) {
	logger := getLogger(c)
	id := c.Param("id")

	part, err := h.Service.GetPartByID(id)
	if err != nil {
		logger.Error("Part not found", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": "part not found"})
		return
	}
	c.JSON(http.StatusOK, part)
}

// CreatePartHandler handles POST /api/parts.
func (h *InventoryHandler) CreatePartHandler(c *gin.Context) {
	logger := getLogger(c)

	var req models.Part
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.Service.CreatePart(req)
	if err != nil {
		logger.Error("Failed to create part", zap.Error(err))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdatePartHandler handles PUT /api/parts/:id.
func (h *InventoryHandler) UpdatePartHandler(c *gin.Context) {
	logger := getLogger(c)

	var req models.Part
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.ID = c.Param("id")

	updated, err := h.Service.UpdatePart(req)
	if err != nil {
		logger.Error("Failed to update part", zap.String("id", req.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update part"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeletePartHandler handles DELETE /api/parts/:id.
func (h *InventoryHandler) DeletePartHandler(c *gin.Context) {
	logger := getLogger(c)
	id := c.Param("id")

	if err := h.Service.DeletePart(id); err != nil {
		logger.Error("Failed to delete part", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete part"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "part deleted"})
}

// AdjustStockHandler handles POST /api/parts/:id/stock.
func (h *InventoryHandler) AdjustStockHandler(c *gin.Context) {
	logger := getLogger(c)
	id := c.Param("id")

	var req models.StockAdjustment
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	part, err := h.Service.AdjustStock(id, req)
	if err != nil {
		if errors.Is(err, partRepo.ErrInsufficientStock) {
			c.JSON(http.StatusConflict, gin.H{"error": "insufficient stock"})
			return
		}
		logger.Error("Failed to adjust stock", zap.String("id", id), zap.Int("delta", req.Delta), zap.Error(err))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, part)
}
