package handlers

import (
	"net/http"
	"strconv"

	"roomledger/internal/presentation"
	"roomledger/internal/services"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type ReportHandlers struct {
	reportService services.ReportService
	logger        logrus.FieldLogger
}

func NewReportHandlers(reportService services.ReportService, logger logrus.FieldLogger) *ReportHandlers {
	return &ReportHandlers{reportService: reportService, logger: logger}
}

// tableOptions builds fresh display options for this request only.
func tableOptions(c echo.Context) (presentation.TableOptions, error) {
	simplified := false
	if raw := c.QueryParam("simplified"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return presentation.TableOptions{}, &services.ValidationError{Field: "simplified", Message: "simplified must be true or false"}
		}
		simplified = v
	}

	opts, err := presentation.ParseTableOptions(c.QueryParam("columns"), c.QueryParam("hide"), simplified)
	if err != nil {
		return presentation.TableOptions{}, &services.ValidationError{Field: "columns", Message: err.Error()}
	}
	return opts, nil
}

// OccupancyTable godoc
// @Summary Occupancy register as a table
// @Tags reports
// @Produce json
// @Param columns query string false "Comma separated columns to show"
// @Param hide query string false "Comma separated columns to hide"
// @Param simplified query bool false "Print mode with fewer columns"
// @Success 200 {object} presentation.Table
// @Router /reports/occupancy [get]
func (h *ReportHandlers) OccupancyTable(c echo.Context) error {
	opts, err := tableOptions(c)
	if err != nil {
		return HandleServiceError(c, err, h.logger)
	}

	table, err := h.reportService.OccupancyTable(c.Request().Context(), opts)
	if err != nil {
		return HandleServiceError(c, err, h.logger)
	}
	return c.JSON(http.StatusOK, table)
}

// OccupancyPDF godoc
// @Summary Occupancy register as a printable PDF
// @Tags reports
// @Produce application/pdf
// @Param columns query string false "Comma separated columns to show"
// @Param hide query string false "Comma separated columns to hide"
// @Param simplified query bool false "Print mode with fewer columns"
// @Success 200 {file} file
// @Router /reports/occupancy.pdf [get]
func (h *ReportHandlers) OccupancyPDF(c echo.Context) error {
	opts, err := tableOptions(c)
	if err != nil {
		return HandleServiceError(c, err, h.logger)
	}

	pdf, err := h.reportService.OccupancyPDF(c.Request().Context(), opts)
	if err != nil {
		return HandleServiceError(c, err, h.logger)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `inline; filename="occupancy.pdf"`)
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}

// PublishOccupancyPDF godoc
// @Summary Upload the occupancy PDF and return a download link
// @Tags reports
// @Produce json
// @Success 200 {object} services.PublishedReport
// @Failure 503 {object} common.ErrorResponse
// @Router /reports/occupancy/publish [post]
func (h *ReportHandlers) PublishOccupancyPDF(c echo.Context) error {
	opts, err := tableOptions(c)
	if err != nil {
		return HandleServiceError(c, err, h.logger)
	}

	report, err := h.reportService.PublishOccupancyPDF(c.Request().Context(), opts)
	if err != nil {
		return HandleServiceError(c, err, h.logger)
	}
	return c.JSON(http.StatusOK, report)
}

// ExpiringLeases godoc
// @Summary Rooms whose lease ends soon
// @Tags reports
// @Produce json
// @Success 200 {object} models.LeaseExpirySummary
// @Router /reports/expiring-leases [get]
func (h *ReportHandlers) ExpiringLeases(c echo.Context) error {
	summary, err := h.reportService.ExpiringLeases(c.Request().Context())
	if err != nil {
		return HandleServiceError(c, err, h.logger)
	}
	return c.JSON(http.StatusOK, summary)
}

func (h *ReportHandlers) RegisterRoutes(g *echo.Group) {
	g.GET("/reports/occupancy", h.OccupancyTable)
	g.GET("/reports/occupancy.pdf", h.OccupancyPDF)
	g.POST("/reports/occupancy/publish", h.PublishOccupancyPDF)
	g.GET("/reports/expiring-leases", h.ExpiringLeases)
}
