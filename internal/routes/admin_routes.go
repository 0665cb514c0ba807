package routes

import (
	"mrt_fare/internal/controllers"
	"mrt_fare/internal/middleware"

	"github.com/gin-gonic/gin"
)

func AdminRoutes(r *gin.Engine) {
	admin := r.Group("/admin")
	admin.Use(middleware.RequireAuthWithRole("admin"))
	{
		admin.POST("/stations", controllers.CreateStation)
		admin.PATCH("/stations/:id", controllers.UpdateStation)
		admin.DELETE("/stations/:id", controllers.DeleteStation)
		admin.POST("/stations/connect", controllers.ConnectStations)
		admin.POST("/stations/disconnect", controllers.DisconnectStations)

		admin.PUT("/fares/:type", controllers.UpsertFare)

		admin.POST("/cards", controllers.IssueCard)
		admin.GET("/cards", controllers.ListCards)
		admin.GET("/cards/:number", controllers.GetCard)
		admin.PATCH("/cards/:number/balance", controllers.AdjustBalance)
		admin.GET("/cards/:number/transactions", controllers.ListCardTransactions)

		admin.GET("/commuters", controllers.ListCommuters)

		admin.GET("/maintenance", controllers.GetMaintenance)
		admin.PUT("/maintenance", controllers.SetMaintenance)
	}
}
