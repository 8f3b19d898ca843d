package handlers

import (
	"errors"
	"net/http"

	partRepo "wrenchworks/database/repository/part"
	"wrenchworks/models"
	repairSvc "wrenchworks/services/repair"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RepairHandler serves repair order endpoints (staff, plus client reads).
type RepairHandler struct {
	Service repairSvc.RepairService
}

// OpenRepairHandler handles POST /api/repairs.
func (h *RepairHandler) OpenRepairHandler(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		AppointmentID string `json:"appointmentId" binding:"required"`
		Description   string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	repair, err := h.Service.OpenRepair(c.Request.Context(), req.AppointmentID, req.Description)
	if err != nil {
		logger.Error("Failed to open repair", zap.String("appointment", req.AppointmentID), zap.Error(err))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, repair)
}

// GetRepairHandler handles GET /api/repairs/:id.
func (h *RepairHandler) GetRepairHandler(c *gin.Context) {
	logger := getLogger(c)
	id := c.Param("id")

	repair, err := h.Service.GetRepairByID(id)
	if err != nil {
		logger.Error("Repair not found", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": "repair not found"})
		return
	}
	c.JSON(http.StatusOK, repair)
}

// ListMyRepairsHandler handles GET /api/repairs for the logged-in client.
func (h *RepairHandler) ListMyRepairsHandler(c *gin.Context) {
	logger := getLogger(c)
	clientID := c.GetString("clientID")

	repairs, err := h.Service.GetClientRepairs(clientID)
	if err != nil {
		logger.Error("Failed to list repairs", zap.String("client", clientID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list repairs"})
		return
	}
	if repairs == nil {
		repairs = []models.RepairOrder{}
	}
	c.JSON(http.StatusOK, repairs)
}

// UpdateRepairHandler handles PUT /api/repairs/:id.
func (h *RepairHandler) UpdateRepairHandler(c *gin.Context) {
	logger := getLogger(c)
	id := c.Param("id")

	var req models.UpdateRepairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	repair, err := h.Service.UpdateRepair(c.Request.Context(), id, req)
	if err != nil {
		if writeRepairError(c, err) {
			return
		}
		logger.Error("Failed to update repair", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update repair"})
		return
	}
	c.JSON(http.StatusOK, repair)
}

// AddRepairPartHandler handles POST /api/repairs/:id/parts. Stock comes out of
// inventory and the invoice recalculates in the same request.
func (h *RepairHandler) AddRepairPartHandler(c *gin.Context) {
	logger := getLogger(c)
	id := c.Param("id")

	var req models.AddRepairPartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	repair, err := h.Service.AddPart(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, partRepo.ErrInsufficientStock) {
			c.JSON(http.StatusConflict, gin.H{"error": "insufficient stock for part"})
			return
		}
		if writeRepairError(c, err) {
			return
		}
		logger.Error("Failed to add part", zap.String("repair", id), zap.String("part", req.PartID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add part"})
		return
	}
	c.JSON(http.StatusOK, repair)
}

// RemoveRepairPartHandler handles DELETE /api/repairs/:id/parts/:partId.
func (h *RepairHandler) RemoveRepairPartHandler(c *gin.Context) {
	logger := getLogger(c)
	id := c.Param("id")
	partID := c.Param("partId")

	repair, err := h.Service.RemovePart(c.Request.Context(), id, partID)
	if err != nil {
		if writeRepairError(c, err) {
			return
		}
		logger.Error("Failed to remove part", zap.String("repair", id), zap.String("part", partID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove part"})
		return
	}
	c.JSON(http.StatusOK, repair)
}

// CompleteRepairHandler handles PUT /api/repairs/:id/complete.
func (h *RepairHandler) CompleteRepairHandler(c *gin.Context) {
	logger := getLogger(c)
	id := c.Param("id")

	repair, err := h.Service.CompleteRepair(c.Request.Context(), id)
	if err != nil {
		if writeRepairError(c, err) {
			return
		}
		logger.Error("Failed to complete repair", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to complete repair"})
		return
	}
	c.JSON(http.StatusOK, repair)
}

// writeRepairError maps repair state violations to 409 responses and reports
// whether it handled the error.
func writeRepairError(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, repairSvc.ErrRepairClosed):
		c.JSON(http.StatusConflict, gin.H{"error": "repair order is closed"})
		return true
	case errors.Is(err, repairSvc.ErrInvoicePaid):
		c.JSON(http.StatusConflict, gin.H{"error": "invoice is already paid"})
		return true
	}
	return false
}
