package handlers

import (
	"MediTrack/middlewares"
	"MediTrack/services"
	"MediTrack/utils"
	"MediTrack/workflow"
	"net/http"

	"github.com/gin-gonic/gin"
)

type AppointmentHandler struct {
	service services.AppointmentService
}

func NewAppointmentHandler(service services.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{service: service}
}

// identity pulls the caller's id and role out of the request context.
func identity(c *gin.Context) (string, workflow.Role, bool) {
	userID, err := middlewares.ExtractUserIDFromContext(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "caller identity missing"})
		return "", "", false
	}
	role, err := middlewares.ExtractUserRoleFromContext(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "caller identity missing"})
		return "", "", false
	}
	return userID, workflow.Role(role), true
}

// BookAppointment creates a pending appointment for the calling patient.
func (h *AppointmentHandler) BookAppointment(c *gin.Context) {
	userID, role, ok := identity(c)
	if !ok {
		return
	}
	if role != workflow.RolePatient {
		c.JSON(http.StatusForbidden, gin.H{"error": "only patients can book appointments"})
		return
	}

	var in utils.BookingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	appointment, err := h.service.Book(c.Request.Context(), userID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, appointment)
}

// GetAppointments lists the records visible to the caller, role-scoped.
func (h *AppointmentHandler) GetAppointments(c *gin.Context) {
	userID, role, ok := identity(c)
	if !ok {
		return
	}

	appointments, err := h.service.List(c.Request.Context(), userID, role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appointments)
}

// GetStats returns per-status counts for the caller's appointments.
func (h *AppointmentHandler) GetStats(c *gin.Context) {
	userID, role, ok := identity(c)
	if !ok {
		return
	}

	stats, err := h.service.Stats(c.Request.Context(), userID, role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// UpdateStatus applies a workflow transition: body {status} names the target.
func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	userID, role, ok := identity(c)
	if !ok {
		return
	}

	var body struct {
		Status workflow.Status `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	appointment, err := h.service.Transition(c.Request.Context(), c.Param("id"), body.Status, userID, role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appointment)
}

// Reschedule replaces date and time slot on a non-terminal appointment.
func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	userID, role, ok := identity(c)
	if !ok {
		return
	}

	var in utils.RescheduleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	appointment, err := h.service.Reschedule(c.Request.Context(), c.Param("id"), in, userID, role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appointment)
}

// RecordTreatment writes the clinical outcome and completes the appointment.
func (h *AppointmentHandler) RecordTreatment(c *gin.Context) {
	userID, role, ok := identity(c)
	if !ok {
		return
	}

	var in utils.TreatmentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	appointment, err := h.service.RecordTreatment(c.Request.Context(), c.Param("id"), in, userID, role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appointment)
}

// DeleteAppointment removes a record. Housekeeping only; not a workflow edge.
func (h *AppointmentHandler) DeleteAppointment(c *gin.Context) {
	userID, role, ok := identity(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), c.Param("id"), userID, role); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Appointment deleted"})
}
