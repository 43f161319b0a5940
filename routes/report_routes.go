package routes

import (
	"lostfound/controllers"
	"lostfound/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterReportRoutes(rg *gin.RouterGroup, container *ServiceContainer) {
	reportController := controllers.NewReportController(container.ReportService)
	notificationController := controllers.NewNotificationController(container.NotificationService)

	reports := rg.Group("/reports")
	reports.Use(middleware.AuthMiddleware(container.JWTSecret))
	{
		reports.POST("", reportController.Create)
		reports.GET("", reportController.List) // ?type=lost|found
		reports.PATCH("/:id/status", reportController.ToggleStatus)
		reports.POST("/:id/image", reportController.AttachImage)

		reports.GET("/:id/notifications", notificationController.ListForItem)
	}

	stats := rg.Group("/stats")
	stats.Use(middleware.AuthMiddleware(container.JWTSecret))
	{
		stats.GET("", reportController.Stats)
	}
}
