// Package routes wires controllers to gin routes.
//
//   - web.go: lookup page, assets, map data
//   - api.go: JSON API, admin and health routes
//   - middleware.go: request id and access log
package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pcvolkmer/ags-example/app/controllers"
	"go.uber.org/zap"
)

// SetupAllRoutes registers middleware and every route.
func SetupAllRoutes(router *gin.Engine, searchController *controllers.SearchController, adminController *controllers.AdminController, logger *zap.Logger) {
	setupMiddleware(router, logger)

	SetupWebRoutes(router, searchController)
	SetupHealthRoutes(router, searchController)
	SetupAPIRoutes(router, searchController, adminController)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":      "Route not found",
			"path":       c.Request.URL.Path,
			"method":     c.Request.Method,
			"request_id": c.GetString(controllers.RequestIDKey),
		})
	})
}

func setupMiddleware(router *gin.Engine, logger *zap.Logger) {
	router.Use(gin.Recovery())
	router.Use(RequestID())
	router.Use(AccessLog(logger))
}
