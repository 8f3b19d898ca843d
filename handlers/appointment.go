package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"wrenchworks/models"
	appointmentSvc "wrenchworks/services/appointment"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AppointmentHandler serves booking, availability and calendar endpoints.
type AppointmentHandler struct {
	Service appointmentSvc.AppointmentService
}

// AvailableMechanicsHandler handles GET /api/appointments/availability?at=RFC3339.
// The response is the ordered list of (id, displayName) options for the
// booking form's mechanic selector.
func (h *AppointmentHandler) AvailableMechanicsHandler(c *gin.Context) {
	logger := getLogger(c)

	at, err := time.Parse(time.RFC3339, c.Query("at"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or missing 'at' timestamp, expected RFC3339"})
		return
	}

	options, err := h.Service.AvailableMechanics(at)
	if err != nil {
		logger.Error("Failed to resolve availability", zap.Time("at", at), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve availability"})
		return
	}
	if options == nil {
		options = []models.MechanicOption{}
	}
	c.JSON(http.StatusOK, options)
}

// UnavailableDaysHandler handles GET /api/appointments/unavailable-days?year=&month=.
// The returned "yyyy-MM-dd" strings are the days the booking calendar greys out.
func (h *AppointmentHandler) UnavailableDaysHandler(c *gin.Context) {
	logger := getLogger(c)

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or missing 'year'"})
		return
	}
	monthNum, err := strconv.Atoi(c.Query("month"))
	if err != nil || monthNum < 1 || monthNum > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or missing 'month', expected 1-12"})
		return
	}

	days, err := h.Service.UnavailableDays(year, time.Month(monthNum))
	if err != nil {
		logger.Error("Failed to resolve unavailable days",
			zap.Int("year", year), zap.Int("month", monthNum), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve unavailable days"})
		return
	}
	if days == nil {
		days = []string{}
	}
	c.JSON(http.StatusOK, days)
}

// CreateAppointmentHandler handles POST /api/appointments.
func (h *AppointmentHandler) CreateAppointmentHandler(c *gin.Context) {
	logger := getLogger(c)

	var req models.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	// Clients book for themselves; staff may book on a client's behalf.
	if c.GetString("role") != "staff" {
		req.ClientID = c.GetString("clientID")
	}

	appt, err := h.Service.CreateAppointment(c.Request.Context(), req)
	if err != nil {
		if writeAppointmentError(c, err) {
			return
		}
		logger.Error("Failed to create appointment", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create appointment"})
		return
	}
	c.JSON(http.StatusCreated, appt)
}

// UpdateAppointmentHandler handles PUT /api/appointments/:id.
func (h *AppointmentHandler) UpdateAppointmentHandler(c *gin.Context) {
	logger := getLogger(c)
	id := c.Param("id")

	var req models.UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	appt, err := h.Service.UpdateAppointment(c.Request.Context(), id, req)
	if err != nil {
		if writeAppointmentError(c, err) {
			return
		}
		logger.Error("Failed to update appointment", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update appointment"})
		return
	}
	c.JSON(http.StatusOK, appt)
}

// CompleteAppointmentHandler handles PUT /api/appointments/:id/complete.
func (h *AppointmentHandler) CompleteAppointmentHandler(c *gin.Context) {
	h.transition(c, h.Service.CompleteAppointment)
}

// CancelAppointmentHandler handles PUT /api/appointments/:id/cancel.
func (h *AppointmentHandler) CancelAppointmentHandler(c *gin.Context) {
	h.transition(c, h.Service.CancelAppointment)
}

func (h *AppointmentHandler) transition(c *gin.Context, fn func(ctx context.Context, id string) (*models.Appointment, error)) {
	logger := getLogger(c)
	id := c.Param("id")

	appt, err := fn(c.Request.Context(), id)
	if err != nil {
		if writeAppointmentError(c, err) {
			return
		}
		logger.Error("Failed to transition appointment", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update appointment"})
		return
	}
	c.JSON(http.StatusOK, appt)
}

// GetAppointmentHandler handles GET /api/appointments/:id.
func (h *AppointmentHandler) GetAppointmentHandler(c *gin.Context) {
	logger := getLogger(c)
	id := c.Param("id")

	appt, err := h.Service.GetAppointmentByID(id)
	if err != nil {
		logger.Error("Appointment not found", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": "appointment not found"})
		return
	}
	c.JSON(http.StatusOK, appt)
}

// ListMyAppointmentsHandler handles GET /api/appointments for the logged-in client.
func (h *AppointmentHandler) ListMyAppointmentsHandler(c *gin.Context) {
	logger := getLogger(c)
	clientID := c.GetString("clientID")

	appts, err := h.Service.GetClientAppointments(clientID)
	if err != nil {
		logger.Error("Failed to list appointments", zap.String("client", clientID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list appointments"})
		return
	}
	if appts == nil {
		appts = []models.Appointment{}
	}
	c.JSON(http.StatusOK, appts)
}

// ListAppointmentsByDateHandler handles GET /api/appointments/day?date=yyyy-MM-dd
// (staff schedule board).
func (h *AppointmentHandler) ListAppointmentsByDateHandler(c *gin.Context) {
	logger := getLogger(c)

	day, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or missing 'date', expected yyyy-MM-dd"})
		return
	}

	appts, err := h.Service.GetAppointmentsByDate(day)
	if err != nil {
		logger.Error("Failed to list appointments for day", zap.Time("day", day), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list appointments"})
		return
	}
	if appts == nil {
		appts = []models.Appointment{}
	}
	c.JSON(http.StatusOK, appts)
}

// writeAppointmentError maps booking failures onto client-facing statuses and
// reports whether it handled the error.
func writeAppointmentError(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, appointmentSvc.ErrPastDate):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "appointment date is in the past"})
		return true
	case errors.Is(err, appointmentSvc.ErrMechanicUnavailable):
		c.JSON(http.StatusConflict, gin.H{"error": "mechanic is not available at that time"})
		return true
	}
	var transition *appointmentSvc.InvalidTransitionError
	if errors.As(err, &transition) {
		c.JSON(http.StatusConflict, gin.H{"error": transition.Error()})
		return true
	}
	return false
}
