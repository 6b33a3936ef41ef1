package handlers

import (
	"MediTrack/workflow"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// respondError maps workflow errors onto HTTP status codes so every failure
// reaches the client with a distinguishing kind.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, workflow.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, workflow.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, workflow.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, workflow.ErrInvalidTransition), errors.Is(err, workflow.ErrInvalidState):
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
