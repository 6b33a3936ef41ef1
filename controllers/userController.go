package controllers

import (
	"MediTrack/handlers"
	"MediTrack/middlewares"

	"github.com/gin-gonic/gin"
)

// SetupUserRoutes registers the user directory surface.
func SetupUserRoutes(router *gin.Engine, userHandler *handlers.UserHandler) {
	users := router.Group("/users").Use(middlewares.TokenAuthMiddleware())
	{
		users.GET("/doctors", userHandler.GetDoctors)
	}
}
