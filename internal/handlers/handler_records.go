package handlers

import (
	"mime"
	"net/http"

	"github.com/SscSPs/records_management_app/internal/authz"
	"github.com/SscSPs/records_management_app/internal/core/domain"
	portssvc "github.com/SscSPs/records_management_app/internal/core/ports/services"
	"github.com/SscSPs/records_management_app/internal/dto"
	"github.com/SscSPs/records_management_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// recordHandler handles HTTP requests related to records.
type recordHandler struct {
	recordService portssvc.RecordSvcFacade
	exportService portssvc.ExportSvc
}

func newRecordHandler(rs portssvc.RecordSvcFacade, es portssvc.ExportSvc) *recordHandler {
	return &recordHandler{recordService: rs, exportService: es}
}

// registerRecordRoutes registers the record routes, both the scoped listing and the by-id routes.
func registerRecordRoutes(rg *gin.RouterGroup, checker middleware.CapabilityChecker, rs portssvc.RecordSvcFacade, es portssvc.ExportSvc) {
	h := newRecordHandler(rs, es)
	read := middleware.RequireCapability(checker, authz.ObjectRecords, authz.ActionRead)
	write := middleware.RequireCapability(checker, authz.ObjectRecords, authz.ActionWrite)
	export := middleware.RequireCapability(checker, authz.ObjectRecords, authz.ActionExport)

	scoped := rg.Group("/regions/:regionCode/categories/:categoryName/records")
	{
		scoped.GET("", read, h.listRecords)
		scoped.GET("/export", export, h.exportRecords)
	}

	records := rg.Group("/records")
	{
		records.POST("", write, h.createRecord)
		records.GET("/:id", read, h.getRecord)
		records.PUT("/:id", write, h.updateRecord)
		records.DELETE("/:id", write, h.deleteRecord)
	}
}

func toRecordQuery(params dto.ListRecordsParams) (domain.RecordQuery, error) {
	filter, err := domain.ParseStatusFilter(params.Filter)
	if err != nil {
		return domain.RecordQuery{}, err
	}
	return domain.RecordQuery{Search: params.Search, Status: filter}, nil
}

// listRecords godoc
// @Summary List records in a scope
// @Description Lists the records of one region and category visible to the caller, newest treatment date first
// @Tags records
// @Produce json
// @Param regionCode path int true "Region code"
// @Param categoryName path string true "Category name (case-insensitive)"
// @Param search query string false "Substring of the postal account"
// @Param filter query string false "completed or incomplete" Enums(completed, incomplete)
// @Success 200 {array} dto.RecordResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Region or category not found"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /regions/{regionCode}/categories/{categoryName}/records [get]
func (h *recordHandler) listRecords(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}
	regionCode, ok := regionCodeParam(c)
	if !ok {
		return
	}
	var params dto.ListRecordsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	query, err := toRecordQuery(params)
	if err != nil {
		respondBindError(c, err)
		return
	}

	records, err := h.recordService.ListRecords(c.Request.Context(), principal, regionCode, c.Param("categoryName"), query)
	if err != nil {
		respondError(c, err, "Scope not found")
		return
	}
	c.JSON(http.StatusOK, dto.ToListRecordResponse(records))
}

// exportRecords godoc
// @Summary Export records in a scope
// @Description Downloads the same records listRecords returns, as CSV or XLSX
// @Tags records
// @Produce text/csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param regionCode path int true "Region code"
// @Param categoryName path string true "Category name"
// @Param search query string false "Substring of the postal account"
// @Param filter query string false "completed or incomplete"
// @Param format query string false "csv or xlsx" Enums(csv, xlsx)
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /regions/{regionCode}/categories/{categoryName}/records/export [get]
func (h *recordHandler) exportRecords(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}
	regionCode, ok := regionCodeParam(c)
	if !ok {
		return
	}
	var params dto.ExportRecordsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	query, err := toRecordQuery(params.ListRecordsParams)
	if err != nil {
		respondBindError(c, err)
		return
	}

	file, err := h.exportService.ExportRecords(c.Request.Context(), principal, regionCode, c.Param("categoryName"), query, params.Format)
	if err != nil {
		respondError(c, err, "Scope not found")
		return
	}
	sendFile(c, file)
}

// createRecord godoc
// @Summary Create a record
// @Description Creates a record owned by the caller and allocates the next serial of its scope
// @Tags records
// @Accept json
// @Produce json
// @Param record body dto.CreateRecordRequest true "Record"
// @Success 201 {object} dto.RecordResponse
// @Failure 400 {object} ErrorResponse "Invalid scope, amount or field"
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /records [post]
func (h *recordHandler) createRecord(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}
	var req dto.CreateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	record, err := h.recordService.CreateRecord(c.Request.Context(), principal, req)
	if err != nil {
		respondError(c, err, "Record not found")
		return
	}
	c.JSON(http.StatusCreated, dto.ToRecordResponse(record))
}

// getRecord godoc
// @Summary Get a record
// @Tags records
// @Produce json
// @Param id path int true "Record ID"
// @Success 200 {object} dto.RecordResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /records/{id} [get]
func (h *recordHandler) getRecord(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}
	record, err := h.recordService.GetRecord(c.Request.Context(), principal, id)
	if err != nil {
		respondError(c, err, "Record not found")
		return
	}
	c.JSON(http.StatusOK, dto.ToRecordResponse(record))
}

// updateRecord godoc
// @Summary Update a record
// @Description Updates the mutable fields of a record; owner, scope and serial never change
// @Tags records
// @Accept json
// @Produce json
// @Param id path int true "Record ID"
// @Param record body dto.UpdateRecordRequest true "Fields to change"
// @Success 200 {object} dto.RecordResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /records/{id} [put]
func (h *recordHandler) updateRecord(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	record, err := h.recordService.UpdateRecord(c.Request.Context(), principal, id, req)
	if err != nil {
		respondError(c, err, "Record not found")
		return
	}
	c.JSON(http.StatusOK, dto.ToRecordResponse(record))
}

// deleteRecord godoc
// @Summary Delete a record
// @Description Deletes a record. Records the caller cannot see are reported as not found.
// @Tags records
// @Produce json
// @Param id path int true "Record ID"
// @Success 200 {object} dto.DeleteResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /records/{id} [delete]
func (h *recordHandler) deleteRecord(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}
	if err := h.recordService.DeleteRecord(c.Request.Context(), principal, id); err != nil {
		respondError(c, err, "Record not found")
		return
	}
	c.JSON(http.StatusOK, dto.DeleteResponse{Success: true})
}

// sendFile writes a rendered export as an attachment.
func sendFile(c *gin.Context, file *portssvc.ExportFile) {
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": file.Filename}))
	c.Data(http.StatusOK, file.ContentType, file.Content)
}
