package routes

import (
	"net/http"
	"time"

	"resortbook/controllers"
	_ "resortbook/docs"
	"resortbook/middleware"
	"resortbook/models"
	"resortbook/services"
	"resortbook/services/logger"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Dependencies is everything the HTTP layer needs. Melody may be nil, in
// which case the websocket route is not registered.
type Dependencies struct {
	Auth           *services.AuthService
	Users          *services.UserService
	Accommodations *services.AccommodationService
	Bookings       *services.BookingService
	Melody         *melody.Melody
	Logger         logger.Logger
	RequestTimeout time.Duration
}

func SetupRoutes(router *gin.Engine, deps Dependencies) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop{}
	}

	router.Use(middleware.RequestID(), middleware.RequestLogger(log))

	authController := controllers.NewAuthController(deps.Auth)
	userController := controllers.NewUserController(deps.Users)
	accommodationController := controllers.NewAccommodationController(deps.Accommodations)
	bookingController := controllers.NewBookingController(deps.Bookings)

	api := router.Group("/api")
	if deps.RequestTimeout > 0 {
		api.Use(middleware.Timeout(deps.RequestTimeout))
	}

	api.POST("/register", authController.Register)
	api.POST("/login", authController.Login)

	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(deps.Auth))
	{
		authed.POST("/logout", authController.Logout)

		authed.GET("/users", userController.Index)
		authed.GET("/users/:id", userController.Show)
		authed.PUT("/users/:id", userController.Update)
		authed.DELETE("/users/:id", userController.Destroy)

		authed.GET("/accommodations/available", accommodationController.Available)

		authed.GET("/bookings", bookingController.Index)
		authed.POST("/bookings", bookingController.Store)
		authed.GET("/bookings/:id", bookingController.Show)
		authed.PUT("/bookings/:id", bookingController.Update)
		authed.DELETE("/bookings/:id", bookingController.Destroy)
	}

	admin := authed.Group("")
	admin.Use(middleware.RoleMiddleware(models.RoleAdmin))
	{
		admin.PATCH("/bookings/:id/status", bookingController.UpdateStatus)
		admin.GET("/admin/dashboard/bookings", bookingController.Dashboard)
		admin.GET("/admin/dashboard/bookings/:status", bookingController.Dashboard)

		admin.GET("/accommodations", accommodationController.Index)
		admin.POST("/accommodations", accommodationController.Store)
		admin.GET("/accommodations/:id", accommodationController.Show)
		admin.PUT("/accommodations/:id", accommodationController.Update)
		admin.DELETE("/accommodations/:id", accommodationController.Destroy)
		admin.PATCH("/accommodations/:id/toggle-active", accommodationController.ToggleActive)
	}

	if deps.Melody != nil {
		notificationController := controllers.NewNotificationController(controllers.NotificationControllerOptions{Logger: log}, deps.Melody)
		// Outside the api group so the request timeout does not apply.
		router.GET("/api/ws", middleware.WebsocketAuthMiddleware(deps.Auth, models.RoleAdmin), notificationController.Connect)
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
}
