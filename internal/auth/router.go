package auth

import (
	"github.com/gin-gonic/gin"

	"voyago/internal/shared/config"
	"voyago/internal/shared/middleware"
)

func RegisterRoutes(rg *gin.RouterGroup, controller Controller, cfg *config.Config) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/register", controller.Register)
		authGroup.POST("/login", controller.Login)
		authGroup.POST("/refresh", controller.RefreshToken)

		protected := authGroup.Group("")
		protected.Use(middleware.JWTAuthWithConfig(cfg))
		{
			protected.POST("/change-password", controller.ChangePassword)
			protected.GET("/me", controller.Me)
		}
	}
}
