package routes

import (
	"lostfound/controllers"
	"lostfound/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterNotificationRoutes(rg *gin.RouterGroup, container *ServiceContainer) {
	notificationController := controllers.NewNotificationController(container.NotificationService)

	notifications := rg.Group("/notifications")
	notifications.Use(middleware.AuthMiddleware(container.JWTSecret))
	{
		notifications.GET("/unread-count", notificationController.UnreadCount)
		notifications.DELETE("/:id", notificationController.Dismiss)
	}
}
