package handler

import (
	"net/http"

	"terreins-inventory-api/internal/model"
	"terreins-inventory-api/internal/service"
	"terreins-inventory-api/pkg/apierror"
	"terreins-inventory-api/pkg/response"
)

// ReportHandler handles dashboard and report HTTP requests.
type ReportHandler struct {
	reports *service.ReportService
}

// NewReportHandler creates a new report handler.
func NewReportHandler(reports *service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// Dashboard handles GET /api/v1/reports/dashboard
func (h *ReportHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.reports.Dashboard(r.Context())
	if err != nil {
		response.Error(w, apierror.InternalError("failed to compute dashboard"))
		return
	}
	response.OK(w, metrics)
}

// Summary handles GET /api/v1/reports/summary?period=daily|weekly|yearly
func (h *ReportHandler) Summary(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("period")
	if raw == "" {
		raw = string(model.PeriodWeekly)
	}

	period, ok := model.ParseSummaryPeriod(raw)
	if !ok {
		response.Error(w, apierror.BadRequest("period must be daily, weekly or yearly"))
		return
	}

	summary, err := h.reports.Summary(r.Context(), period)
	if err != nil {
		response.Error(w, apierror.InternalError("failed to compute summary"))
		return
	}
	response.OK(w, summary)
}

// EndOfDay handles GET /api/v1/reports/eod
func (h *ReportHandler) EndOfDay(w http.ResponseWriter, r *http.Request) {
	report, err := h.reports.EndOfDay(r.Context())
	if err != nil {
		response.Error(w, apierror.InternalError("failed to compute end-of-day report"))
		return
	}
	response.OK(w, report)
}
