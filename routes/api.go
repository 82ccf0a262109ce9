package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/pcvolkmer/ags-example/app/controllers"
)

// SetupAPIRoutes registers the JSON API and the admin routes.
func SetupAPIRoutes(router *gin.Engine, searchController *controllers.SearchController, adminController *controllers.AdminController) {
	api := router.Group("/api")
	{
		api.GET("", searchController.APISearch)
		api.GET("/suggest", searchController.Suggest)
	}

	v1 := router.Group("/v1")
	{
		admin := v1.Group("/admin")
		{
			admin.GET("/stats", adminController.GetStats)
			admin.POST("/cache/invalidate", adminController.InvalidateCache)
		}

		v1.GET("/health", searchController.HealthCheck)
	}
}

// SetupHealthRoutes registers the probe routes.
func SetupHealthRoutes(router *gin.Engine, searchController *controllers.SearchController) {
	router.GET("/health", searchController.HealthCheck)
	router.GET("/ready", searchController.HealthCheck)
	router.GET("/live", searchController.HealthCheck)
}
