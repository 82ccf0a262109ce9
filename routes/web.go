package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/pcvolkmer/ags-example/app/controllers"
)

// SetupWebRoutes registers the lookup page and the data it loads.
func SetupWebRoutes(router *gin.Engine, searchController *controllers.SearchController) {
	router.GET("/", searchController.Negotiate)
	router.GET("/geojson", searchController.GeoJSON)
	router.GET("/counties_mu_zip", searchController.CountiesMultipleAssignedZip)
	router.GET("/assets/*path", searchController.Assets)
}
