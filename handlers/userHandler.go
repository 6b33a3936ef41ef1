package handlers

import (
	"MediTrack/models"
	"MediTrack/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	service services.UserService
}

func NewUserHandler(service services.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// GetDoctors lists registered doctors, optionally filtered by specialization.
func (h *UserHandler) GetDoctors(c *gin.Context) {
	specialization := c.Query("specialization")

	doctors, err := h.service.ListDoctors(c.Request.Context(), specialization)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	profiles := make([]models.Profile, 0, len(doctors))
	for i := range doctors {
		profiles = append(profiles, doctors[i].Sanitize())
	}
	c.JSON(http.StatusOK, profiles)
}
