package controllers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pcvolkmer/ags-example/app/requests"
	"github.com/pcvolkmer/ags-example/app/responses"
	"github.com/pcvolkmer/ags-example/app/services"
	"go.uber.org/zap"
)

// AdminController serves the admin endpoints.
type AdminController struct {
	adminService *services.AdminService
	logger       *zap.Logger
}

// NewAdminController creates an AdminController.
func NewAdminController(adminService *services.AdminService, logger *zap.Logger) *AdminController {
	return &AdminController{
		adminService: adminService,
		logger:       logger,
	}
}

// InvalidateCache drops one cached query, or all of them when none is given.
func (ac *AdminController) InvalidateCache(c *gin.Context) {
	var req requests.InvalidateCacheRequest
	// an empty body clears everything
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, errorResponse(c, "INVALID_REQUEST", "invalid request: "+err.Error()))
		return
	}

	startTime := time.Now()
	if err := ac.adminService.InvalidateCache(c.Request.Context(), req.Query); err != nil {
		ac.logger.Error("Cache invalidation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorResponse(c, "INVALIDATE_ERROR", "cache invalidation failed: "+err.Error()))
		return
	}

	ac.logger.Info("Cache invalidated",
		zap.String("query", req.Query),
		zap.Duration("duration", time.Since(startTime)))

	c.JSON(http.StatusOK, responses.SuccessResponse{
		Success: true,
		Message: "cache invalidated",
		Data: map[string]interface{}{
			"query": req.Query,
		},
	})
}

// GetStats returns dataset, cache and runtime statistics.
func (ac *AdminController) GetStats(c *gin.Context) {
	stats, err := ac.adminService.GetSystemStats(c.Request.Context())
	if err != nil {
		ac.logger.Error("Reading stats failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorResponse(c, "STATS_ERROR", "reading stats failed: "+err.Error()))
		return
	}
	c.JSON(http.StatusOK, stats)
}

func errorResponse(c *gin.Context, code, message string) responses.ErrorResponse {
	return responses.ErrorResponse{
		Error:     code,
		Message:   message,
		Timestamp: time.Now().Format(time.RFC3339),
		RequestID: c.GetString(RequestIDKey),
	}
}

// RequestIDKey is the gin context key of the request id.
const RequestIDKey = "request_id"
