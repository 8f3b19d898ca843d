package handlers

import (
	"errors"
	"net/http"

	"wrenchworks/models"
	mechanicSvc "wrenchworks/services/mechanic"
	"wrenchworks/services/schedule"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MechanicHandler serves mechanic and schedule endpoints (staff only).
type MechanicHandler struct {
	Service mechanicSvc.MechanicService
}

// ListMechanicsHandler handles GET /api/mechanics.
func (h *MechanicHandler) ListMechanicsHandler(c *gin.Context) {
	logger := getLogger(c)

	mechanics, err := h.Service.GetAllMechanics()
	if err != nil {
		logger.Error("Failed to list mechanics", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list mechanics"})
		return
	}
	c.JSON(http.StatusOK, mechanics)
}

// GetMechanicHandler handles GET /api/mechanics/:id.
func (h *MechanicHandler) GetMechanicHandler(c *gin.Context) {
	logger := getLogger(c)
	id := c.Param("id")

	m, err := h.Service.GetMechanicByID(id)
	if err != nil {
		logger.Error("Mechanic not found", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": "mechanic not found"})
		return
	}
	c.JSON(http.StatusOK, m)
}

// CreateMechanicHandler handles POST /api/mechanics.
func (h *MechanicHandler) CreateMechanicHandler(c *gin.Context) {
	logger := getLogger(c)

	var req models.Mechanic
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.Service.CreateMechanic(req)
	if err != nil {
		if writeScheduleError(c, err) {
			return
		}
		logger.Error("Failed to create mechanic", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create mechanic"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateMechanicHandler handles PUT /api/mechanics/:id.
func (h *MechanicHandler) UpdateMechanicHandler(c *gin.Context) {
	logger := getLogger(c)

	var req models.Mechanic
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.ID = c.Param("id")

	updated, err := h.Service.UpdateMechanic(req)
	if err != nil {
		logger.Error("Failed to update mechanic", zap.String("id", req.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update mechanic"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteMechanicHandler handles DELETE /api/mechanics/:id. Removing a mechanic
// removes all of their schedule blocks with them.
func (h *MechanicHandler) DeleteMechanicHandler(c *gin.Context) {
	logger := getLogger(c)
	id := c.Param("id")

	if err := h.Service.DeleteMechanic(id); err != nil {
		logger.Error("Failed to delete mechanic", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete mechanic"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "mechanic deleted"})
}

// ReplaceScheduleHandler handles PUT /api/mechanics/:id/schedule. The whole
// weekly block set is validated and swapped in one write; a single bad block
// rejects the entire request.
func (h *MechanicHandler) ReplaceScheduleHandler(c *gin.Context) {
	logger := getLogger(c)
	id := c.Param("id")

	var req models.ReplaceScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.Service.ReplaceSchedule(id, req.Blocks)
	if err != nil {
		if writeScheduleError(c, err) {
			return
		}
		logger.Error("Failed to replace schedule", zap.String("mechanic", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to replace schedule"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// writeScheduleError maps schedule validation failures to 422 responses and
// reports whether it handled the error.
func writeScheduleError(c *gin.Context, err error) bool {
	var inverted *schedule.InvertedIntervalError
	if errors.As(err, &inverted) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": inverted.Error()})
		return true
	}
	var overlap *schedule.OverlapError
	if errors.As(err, &overlap) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": overlap.Error()})
		return true
	}
	return false
}
