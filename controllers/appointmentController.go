package controllers

import (
	"MediTrack/handlers"
	"MediTrack/middlewares"

	"github.com/gin-gonic/gin"
)

// SetupAppointmentRoutes registers the appointment workflow surface. All
// routes require an authenticated caller; the caller's id and role scope
// visibility and gate transitions.
func SetupAppointmentRoutes(router *gin.Engine, appointmentHandler *handlers.AppointmentHandler) {
	appointments := router.Group("/appointments").Use(middlewares.TokenAuthMiddleware())
	{
		appointments.POST("", appointmentHandler.BookAppointment)
		appointments.GET("", appointmentHandler.GetAppointments)
		appointments.GET("/stats", appointmentHandler.GetStats)
		appointments.PUT("/:id", appointmentHandler.UpdateStatus)
		appointments.PUT("/:id/reschedule", appointmentHandler.Reschedule)
		appointments.PUT("/:id/treatment", appointmentHandler.RecordTreatment)
		appointments.DELETE("/:id", appointmentHandler.DeleteAppointment)
	}
}
