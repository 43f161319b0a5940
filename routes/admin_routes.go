package routes

import (
	"lostfound/controllers"
	"lostfound/middleware"
	"lostfound/utils"

	"github.com/gin-gonic/gin"
)

func RegisterAdminRoutes(rg *gin.RouterGroup, container *ServiceContainer) {
	messageController := controllers.NewAdminMessageController(container.MessageService)
	matchController := controllers.NewMatchController(container.MatchService)

	admin := rg.Group("/admin")
	admin.Use(middleware.AuthMiddleware(container.JWTSecret))
	admin.Use(middleware.RequireRole(utils.RoleAdmin))
	{
		admin.GET("/messages", messageController.List)
		admin.POST("/messages", messageController.Create)
		admin.DELETE("/messages/:id", messageController.Delete)

		admin.GET("/matches", matchController.List)
		admin.GET("/matches/ai", matchController.ListAI)
		admin.POST("/matches/:index/notify", matchController.Notify)
		admin.GET("/reports", matchController.Reports)
	}

	// Read-only message feed for the student dashboard
	messages := rg.Group("/messages")
	messages.Use(middleware.AuthMiddleware(container.JWTSecret))
	{
		messages.GET("", messageController.List)
	}
}
