package handler

import (
	"github.com/gin-gonic/gin"
	reportapp "github.com/salescrm/backend/internal/application/report"
)

// ReportHandler serves read-only aggregates
type ReportHandler struct {
	BaseHandler
	reports *reportapp.ReportService
}

// NewReportHandler creates a ReportHandler
func NewReportHandler(reports *reportapp.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// Dashboard godoc
// @ID           reportDashboard
// @Summary      Headline numbers for the workspace
// @Tags         reports
// @Produce      json
// @Success      200 {object} APIResponse[reportapp.DashboardResponse]
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /reports/dashboard [get]
func (h *ReportHandler) Dashboard(c *gin.Context) {
	wsID, ok := h.Workspace(c)
	if !ok {
		return
	}
	resp, err := h.reports.Dashboard(c.Request.Context(), wsID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Pipeline godoc
// @ID           reportPipeline
// @Summary      Deal count and value per stage
// @Tags         reports
// @Produce      json
// @Param        id path string true "Pipeline ID"
// @Success      200 {object} APIResponse[reportapp.PipelineReportResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /reports/pipeline/{id} [get]
func (h *ReportHandler) Pipeline(c *gin.Context) {
	wsID, id, ok := h.ScopedID(c, "id")
	if !ok {
		return
	}
	resp, err := h.reports.PipelineReport(c.Request.Context(), wsID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RevenueByOwner godoc
// @ID           reportRevenueByOwner
// @Summary      Won revenue per deal owner
// @Tags         reports
// @Produce      json
// @Success      200 {object} APIResponse[[]reportapp.OwnerRevenue]
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /reports/revenue-by-owner [get]
func (h *ReportHandler) RevenueByOwner(c *gin.Context) {
	wsID, ok := h.Workspace(c)
	if !ok {
		return
	}
	resp, err := h.reports.RevenueByOwner(c.Request.Context(), wsID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RevenueByMonth godoc
// @ID           reportRevenueByMonth
// @Summary      Won revenue per calendar month
// @Tags         reports
// @Produce      json
// @Param        from query string false "Start date (YYYY-MM-DD)"
// @Param        to   query string false "End date (YYYY-MM-DD)"
// @Success      200 {object} APIResponse[reportapp.RevenueByMonthResponse]
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /reports/revenue-by-month [get]
func (h *ReportHandler) RevenueByMonth(c *gin.Context) {
	wsID, ok := h.Workspace(c)
	if !ok {
		return
	}
	var rng reportapp.RangeFilter
	if !h.BindQuery(c, &rng) {
		return
	}
	resp, err := h.reports.RevenueByMonth(c.Request.Context(), wsID, rng)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Forecast godoc
// @ID           reportForecast
// @Summary      Probability-weighted value of open deals
// @Tags         reports
// @Produce      json
// @Success      200 {object} APIResponse[reportapp.ForecastResponse]
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /reports/forecast [get]
func (h *ReportHandler) Forecast(c *gin.Context) {
	wsID, ok := h.Workspace(c)
	if !ok {
		return
	}
	resp, err := h.reports.Forecast(c.Request.Context(), wsID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Activities godoc
// @ID           reportActivities
// @Summary      Activity counts by type and user
// @Tags         reports
// @Produce      json
// @Param        from query string false "Start date (YYYY-MM-DD)"
// @Param        to   query string false "End date (YYYY-MM-DD)"
// @Success      200 {object} APIResponse[reportapp.ActivityReportResponse]
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /reports/activities [get]
func (h *ReportHandler) Activities(c *gin.Context) {
	wsID, ok := h.Workspace(c)
	if !ok {
		return
	}
	var rng reportapp.RangeFilter
	if !h.BindQuery(c, &rng) {
		return
	}
	resp, err := h.reports.ActivityReport(c.Request.Context(), wsID, rng)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RevenueItems godoc
// @ID           reportRevenueItems
// @Summary      Revenue line totals by product
// @Tags         reports
// @Produce      json
// @Success      200 {object} APIResponse[reportapp.RevenueItemsReportResponse]
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /reports/revenue-items [get]
func (h *ReportHandler) RevenueItems(c *gin.Context) {
	wsID, ok := h.Workspace(c)
	if !ok {
		return
	}
	resp, err := h.reports.RevenueItemsReport(c.Request.Context(), wsID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
