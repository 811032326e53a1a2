package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/eduspark-api/internal/dto"
	"github.com/noah-isme/eduspark-api/internal/models"
	"github.com/noah-isme/eduspark-api/pkg/response"
)

// CacheHeader reports whether a response was served from the report cache.
const CacheHeader = "X-Cache"

type reportService interface {
	SiteTotals(ctx context.Context) (dto.SiteTotals, bool, error)
	PopularClasses(ctx context.Context) ([]models.Class, bool, error)
	SubmissionsToday(ctx context.Context, rawClassID string) (dto.SubmissionCount, error)
	ClassTotals(ctx context.Context, rawClassID string) (dto.ClassTotals, error)
}

type exportService interface {
	PopularClasses(ctx context.Context, format dto.ExportFormat) (*dto.ExportFile, error)
}

// ReportHandler exposes aggregated statistics and their exports.
type ReportHandler struct {
	reports reportService
	exports exportService
}

// NewReportHandler constructs handler.
func NewReportHandler(reports reportService, exports exportService) *ReportHandler {
	return &ReportHandler{reports: reports, exports: exports}
}

// SiteTotals godoc
// @Summary Platform totals
// @Tags Reports
// @Produce json
// @Success 200 {object} dto.SiteTotals
// @Header 200 {string} X-Cache "HIT or MISS"
// @Router /site_totals [get]
func (h *ReportHandler) SiteTotals(c *gin.Context) {
	totals, hit, err := h.reports.SiteTotals(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	setCacheHeader(c, hit)
	response.OK(c, totals)
}

// PopularClasses godoc
// @Summary Top approved classes by enrollment
// @Tags Reports
// @Produce json
// @Success 200 {array} models.Class
// @Header 200 {string} X-Cache "HIT or MISS"
// @Router /popular_classes [get]
func (h *ReportHandler) PopularClasses(c *gin.Context) {
	classes, hit, err := h.reports.PopularClasses(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	setCacheHeader(c, hit)
	response.OK(c, classes)
}

// SubmissionsToday godoc
// @Summary Submissions made today
// @Tags Reports
// @Security BearerAuth
// @Produce json
// @Param id path string true "Class ID"
// @Success 200 {object} dto.SubmissionCount
// @Router /per_day_assignment_submissions/{id} [get]
func (h *ReportHandler) SubmissionsToday(c *gin.Context) {
	count, err := h.reports.SubmissionsToday(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, count)
}

// ClassTotals godoc
// @Summary Class totals for its teacher
// @Tags Reports
// @Security BearerAuth
// @Produce json
// @Param id path string true "Class ID"
// @Success 200 {object} dto.ClassTotals
// @Router /total_classes_data/{id} [get]
func (h *ReportHandler) ClassTotals(c *gin.Context) {
	totals, err := h.reports.ClassTotals(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, totals)
}

// ExportPopularClasses godoc
// @Summary Export popular classes
// @Tags Reports
// @Security BearerAuth
// @Produce text/csv,application/pdf
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Failure 400 {object} response.ErrorBody
// @Router /reports/popular_classes/export [get]
func (h *ReportHandler) ExportPopularClasses(c *gin.Context) {
	format := dto.ExportFormat(c.DefaultQuery("format", string(dto.ExportFormatCSV)))
	file, err := h.exports.PopularClasses(c.Request.Context(), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", strconv.Quote(file.Filename)))
	c.Data(http.StatusOK, file.ContentType, file.Body)
}

func setCacheHeader(c *gin.Context, hit bool) {
	if hit {
		c.Header(CacheHeader, "HIT")
		return
	}
	c.Header(CacheHeader, "MISS")
}
