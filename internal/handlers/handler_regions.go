package handlers

import (
	"net/http"

	"github.com/SscSPs/records_management_app/internal/authz"
	portssvc "github.com/SscSPs/records_management_app/internal/core/ports/services"
	"github.com/SscSPs/records_management_app/internal/dto"
	"github.com/SscSPs/records_management_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// regionHandler serves the dashboard views: regions, per-category counts and analytics.
type regionHandler struct {
	aggregationService portssvc.AggregationSvc
	scopeService       portssvc.ScopeSvcFacade
	exportService      portssvc.ExportSvc
}

func registerRegionRoutes(rg *gin.RouterGroup, checker middleware.CapabilityChecker, as portssvc.AggregationSvc, ss portssvc.ScopeSvcFacade, es portssvc.ExportSvc) {
	h := &regionHandler{aggregationService: as, scopeService: ss, exportService: es}
	read := middleware.RequireCapability(checker, authz.ObjectRecords, authz.ActionRead)
	export := middleware.RequireCapability(checker, authz.ObjectRecords, authz.ActionExport)

	rg.GET("/regions", read, h.listRegions)
	rg.GET("/regions/:regionCode", read, h.getRegion)
	rg.GET("/regions/:regionCode/counts", read, h.countByCategory)
	rg.GET("/regions/:regionCode/export", export, h.exportRegion)
	rg.GET("/categories", read, h.listCategories)
	rg.GET("/analytics", read, h.analytics)
}

// listRegions godoc
// @Summary List regions
// @Description Lists every region with the number of records visible to the caller, ordered by code
// @Tags regions
// @Produce json
// @Success 200 {array} dto.RegionSummaryResponse
// @Security BearerAuth
// @Router /regions [get]
func (h *regionHandler) listRegions(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}
	counts, err := h.aggregationService.ListRegions(c.Request.Context(), principal)
	if err != nil {
		respondError(c, err, "Region not found")
		return
	}
	c.JSON(http.StatusOK, dto.ToRegionSummaryResponse(counts))
}

// getRegion godoc
// @Summary Get a region
// @Description Returns a region with each category and its visible record count
// @Tags regions
// @Produce json
// @Param regionCode path int true "Region code"
// @Success 200 {object} dto.RegionDetailResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /regions/{regionCode} [get]
func (h *regionHandler) getRegion(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}
	regionCode, ok := regionCodeParam(c)
	if !ok {
		return
	}
	detail, err := h.aggregationService.RegionDetail(c.Request.Context(), principal, regionCode)
	if err != nil {
		respondError(c, err, "Region not found")
		return
	}
	c.JSON(http.StatusOK, dto.ToRegionDetailResponse(detail))
}

// countByCategory godoc
// @Summary Per-category counts
// @Description Counts the caller's visible records per category of one region; every category is present
// @Tags regions
// @Produce json
// @Param regionCode path int true "Region code"
// @Success 200 {object} map[string]int
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /regions/{regionCode}/counts [get]
func (h *regionHandler) countByCategory(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}
	regionCode, ok := regionCodeParam(c)
	if !ok {
		return
	}
	counts, err := h.aggregationService.CountByCategory(c.Request.Context(), principal, regionCode)
	if err != nil {
		respondError(c, err, "Region not found")
		return
	}
	c.JSON(http.StatusOK, dto.ToCategoryCountMap(counts))
}

// exportRegion godoc
// @Summary Export a region
// @Description Downloads a ZIP with one XLSX workbook per category that has visible records
// @Tags regions
// @Produce application/zip
// @Param regionCode path int true "Region code"
// @Success 200 {file} file
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /regions/{regionCode}/export [get]
func (h *regionHandler) exportRegion(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}
	regionCode, ok := regionCodeParam(c)
	if !ok {
		return
	}
	file, err := h.exportService.ExportRegion(c.Request.Context(), principal, regionCode)
	if err != nil {
		respondError(c, err, "Region not found")
		return
	}
	sendFile(c, file)
}

// listCategories godoc
// @Summary List categories
// @Tags regions
// @Produce json
// @Success 200 {array} domain.Category
// @Security BearerAuth
// @Router /categories [get]
func (h *regionHandler) listCategories(c *gin.Context) {
	categories, err := h.scopeService.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, err, "Category not found")
		return
	}
	c.JSON(http.StatusOK, categories)
}

// analytics godoc
// @Summary Per-region counts
// @Description Counts the caller's visible records per region, largest first
// @Tags regions
// @Produce json
// @Success 200 {array} dto.AnalyticsEntry
// @Security BearerAuth
// @Router /analytics [get]
func (h *regionHandler) analytics(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}
	counts, err := h.aggregationService.CountByRegion(c.Request.Context(), principal)
	if err != nil {
		respondError(c, err, "Region not found")
		return
	}
	c.JSON(http.StatusOK, dto.ToAnalyticsResponse(counts))
}
