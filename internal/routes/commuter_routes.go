package routes

import (
	"mrt_fare/internal/controllers"
	"mrt_fare/internal/middleware"

	"github.com/gin-gonic/gin"
)

func CommuterRoutes(r *gin.Engine) {
	commuter := r.Group("/commuter")
	commuter.Use(middleware.RequireAuthWithRole("commuter"))
	{
		commuter.GET("/cards/:number", controllers.GetCard)
		commuter.POST("/taps/in", controllers.TapIn)
		commuter.POST("/taps/out", controllers.TapOut)
	}
}
