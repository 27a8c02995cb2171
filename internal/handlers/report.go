package handlers

import (
	"errors"
	"net/http"

	"github.com/cricstats/analytics-api/internal/logic"
)

// GenerateReport runs a full report cycle and returns the fresh report
// @Summary Generate Report
// @Tags Reports
// @Produce json
// @Success 200 {object} models.Report
// @Failure 503 {object} map[string]string "Data Not Available"
// @Router /report/generate [post]
func (h *Handler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.report.Generate(r.Context())
	if err != nil {
		if errors.Is(err, logic.ErrMissingData) {
			h.errorResponse(w, http.StatusServiceUnavailable, "data not available")
			return
		}
		h.logger.Errorw("Report generation failed", "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "report generation failed")
		return
	}

	h.jsonResponse(w, http.StatusOK, report)
}

// GetReport returns the report from the latest successful cycle
// @Summary Latest Report
// @Tags Reports
// @Produce json
// @Success 200 {object} models.Report
// @Failure 404 {object} map[string]string "No Report"
// @Router /report [get]
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	report := h.report.Latest()
	if report == nil {
		h.errorResponse(w, http.StatusNotFound, "no report generated yet")
		return
	}
	h.jsonResponse(w, http.StatusOK, report)
}
