package routes

import (
	"lostfound/controllers"
	"lostfound/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRewardRoutes(rg *gin.RouterGroup, container *ServiceContainer) {
	rewardController := controllers.NewRewardController(container.RewardService)

	rewards := rg.Group("/rewards")
	rewards.Use(middleware.AuthMiddleware(container.JWTSecret))
	{
		rewards.POST("/check", rewardController.Check)
		rewards.POST("/give", rewardController.Give)
		rewards.GET("/mine", rewardController.Mine)
	}
}
