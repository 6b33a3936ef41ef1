package routes

import (
	"MediTrack/cache"
	"MediTrack/config"
	"MediTrack/controllers"
	"MediTrack/handlers"
	"MediTrack/middlewares"
	"MediTrack/repositories"
	"MediTrack/services"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes initializes the routes and middleware for the server
func SetupRoutes(cache *cache.Cache, config *config.AppConfig, db *gorm.DB) http.Handler {
	// Set Gin to release mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.Default()

	corsConfig := &middlewares.CorsConfig{
		AllowedOrigins:   config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}
	router.Use(middlewares.CorsMiddleware(corsConfig))

	router.Use(middlewares.NewRateLimiterMiddleware(middlewares.RateLimiterConfig{
		RequestsPerSecond: 15,
		Burst:             30,
	}))

	router.Use(middlewares.LoggingMiddleware())

	// Initialize repositories, services, and handlers
	userRepo := repositories.NewUserRepository(db, cache)
	appointmentRepo := repositories.NewAppointmentRepository(cache)

	userService := services.NewUserService(userRepo)
	appointmentService := services.NewAppointmentService(appointmentRepo, userRepo, cache)

	authHandler := handlers.NewAuthHandler(userService)
	userHandler := handlers.NewUserHandler(userService)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentService)

	// Register routes
	authController := controllers.NewAuthController(authHandler)
	authController.RegisterRoutes(router)

	controllers.SetupUserRoutes(router, userHandler)
	controllers.SetupAppointmentRoutes(router, appointmentHandler)
	controllers.SetupRootRoute(router)

	return router
}
