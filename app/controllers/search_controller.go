package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pcvolkmer/ags-example/app/requests"
	"github.com/pcvolkmer/ags-example/app/responses"
	"github.com/pcvolkmer/ags-example/app/services"
	"github.com/pcvolkmer/ags-example/internal/geojson"
	"github.com/pcvolkmer/ags-example/internal/matcher"
	"github.com/pcvolkmer/ags-example/web"
	"go.uber.org/zap"
)

// Version is reported by the health endpoints.
const Version = "1.0.0"

// SearchController serves the lookup page and its JSON endpoints.
type SearchController struct {
	searchService *services.SearchService
	boundaries    *geojson.FeatureCollection
	logger        *zap.Logger
}

// NewSearchController creates a SearchController.
func NewSearchController(searchService *services.SearchService, boundaries *geojson.FeatureCollection, logger *zap.Logger) *SearchController {
	return &SearchController{
		searchService: searchService,
		boundaries:    boundaries,
		logger:        logger,
	}
}

// Negotiate answers GET / with JSON for an Accept header of exactly
// "application/json" or format=json, and with the HTML page otherwise.
func (sc *SearchController) Negotiate(c *gin.Context) {
	req, ok := sc.bindQuery(c)
	if !ok {
		return
	}

	if req.WantsJSON() || c.GetHeader("Accept") == gin.MIMEJSON {
		sc.apiSearch(c, req)
		return
	}
	sc.index(c, req)
}

// APISearch answers GET /api.
func (sc *SearchController) APISearch(c *gin.Context) {
	req, ok := sc.bindQuery(c)
	if !ok {
		return
	}
	sc.apiSearch(c, req)
}

func (sc *SearchController) bindQuery(c *gin.Context) (requests.SearchRequest, bool) {
	var req requests.SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		sc.logger.Debug("Invalid query parameters", zap.Error(err))
		c.JSON(http.StatusBadRequest, errorResponse(c, "INVALID_REQUEST", "invalid request: "+err.Error()))
		return req, false
	}
	return req, true
}

func (sc *SearchController) apiSearch(c *gin.Context, req requests.SearchRequest) {
	if req.WantsMultipleAssigned() {
		c.JSON(http.StatusOK, sc.searchService.AmbiguousZipsGrouped(req.State))
		return
	}
	c.JSON(http.StatusOK, sc.searchService.Search(c.Request.Context(), req.Query))
}

func (sc *SearchController) index(c *gin.Context, req requests.SearchRequest) {
	page := web.IndexPage{
		Query:   strings.TrimSpace(req.Query),
		State:   req.State,
		Entries: sc.searchService.Search(c.Request.Context(), req.Query),
	}
	if req.WantsMultipleAssigned() {
		page.MultipleAssigned = sc.searchService.AmbiguousZipsGrouped(req.State)
	}
	if len(page.Entries) == 0 && page.Query != "" {
		page.Suggestions = sc.searchService.Suggest(page.Query)
	}
	c.HTML(http.StatusOK, web.IndexTemplate, page)
}

// Suggest answers GET /api/suggest with place names close to q.
func (sc *SearchController) Suggest(c *gin.Context) {
	req, ok := sc.bindQuery(c)
	if !ok {
		return
	}

	suggestions := sc.searchService.Suggest(req.Query)
	if suggestions == nil {
		suggestions = []matcher.Suggestion{}
	}
	c.JSON(http.StatusOK, responses.SuggestResponse{
		Query:       strings.TrimSpace(req.Query),
		Suggestions: suggestions,
	})
}

// CountiesMultipleAssignedZip answers GET /counties_mu_zip with the districts
// that share a postal code with another district.
func (sc *SearchController) CountiesMultipleAssignedZip(c *gin.Context) {
	c.JSON(http.StatusOK, sc.searchService.AmbiguousDistricts(c.Query("st")))
}

// GeoJSON answers GET /geojson with the boundaries whose id starts with st.
func (sc *SearchController) GeoJSON(c *gin.Context) {
	c.JSON(http.StatusOK, sc.boundaries.FilterByPrefix(c.Query("st")))
}

// Assets serves the embedded static files.
func (sc *SearchController) Assets(c *gin.Context) {
	name := strings.TrimPrefix(c.Param("path"), "/")
	if name == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	content, err := web.Asset(name)
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}

	contentType := web.ContentType(name)
	if contentType == "" {
		contentType = http.DetectContentType(content)
	}
	c.Data(http.StatusOK, contentType, content)
}

// HealthCheck answers the health, readiness and liveness probes.
func (sc *SearchController) HealthCheck(c *gin.Context) {
	uptime := time.Since(sc.searchService.GetStartTime())

	c.JSON(http.StatusOK, responses.HealthCheckResponse{
		Status:    "healthy",
		Timestamp: time.Now().Format(time.RFC3339),
		Uptime:    uptime.String(),
		Version:   Version,
		Services: map[string]string{
			"gazetteer":  "healthy",
			"boundaries": "healthy",
			"cache":      "healthy",
		},
	})
}
