package routes

import (
	"lostfound/controllers"
	"lostfound/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterAuthRoutes(rg *gin.RouterGroup, container *ServiceContainer) {
	authController := controllers.NewAuthController(container.AuthService)

	auth := rg.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/admin-login", authController.AdminLogin)

		protected := auth.Group("")
		protected.Use(middleware.AuthMiddleware(container.JWTSecret))
		{
			protected.GET("/me", authController.Me)
		}
	}
}
