package routes

import (
	"mrt_fare/internal/controllers"

	"github.com/gin-gonic/gin"
)

// NetworkRoutes exposes the read-only network and fare schedule
// surface. No auth: rider apps and kiosks poll these.
func NetworkRoutes(r *gin.Engine) {
	r.GET("/network", controllers.ListStations)
	r.GET("/network/geojson", controllers.NetworkGeoJSON)
	r.GET("/fares", controllers.ListFares)
}
