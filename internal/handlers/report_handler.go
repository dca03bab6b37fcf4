package handlers

import (
	"encoding/json"
	"net/http"

	"toiletBack/internal/formatter"
	"toiletBack/internal/models"
	"toiletBack/internal/services"
)

type ReportHandler struct {
	Service *services.ReportService
}

// SubmitReport handles POST /toilets/:id/reports. Works for anonymous
// callers too; the identity is attached when present.
func (h *ReportHandler) SubmitReport(w http.ResponseWriter, r *http.Request) {
	toiletID, ok := pathInt(r, "id")
	if !ok {
		writeBadRequest(w, "invalid toilet id")
		return
	}

	var req models.ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	report, err := h.Service.SubmitReport(r.Context(), viewerID(r), toiletID, req)
	if err != nil {
		writeError(w, "SubmitReport", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"data": formatter.ReportMap(report.Row()),
	})
}

// ListReports handles GET /toilets/:id/reports (owner or admin only).
func (h *ReportHandler) ListReports(w http.ResponseWriter, r *http.Request) {
	toiletID, ok := pathInt(r, "id")
	if !ok {
		writeBadRequest(w, "invalid toilet id")
		return
	}
	claims := identityFromContext(r)

	status := ""
	if v := qString(r, "status"); v != nil {
		status = *v
	}

	reports, err := h.Service.ListReports(r.Context(), *claims, toiletID, status)
	if err != nil {
		writeError(w, "ListReports", err)
		return
	}

	data := make([]interface{}, 0, len(reports))
	for i := range reports {
		data = append(data, formatter.ReportMap(reports[i].Row()))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"data": data})
}

// ResolveReport handles POST /toilets/:id/reports/:report_id/resolve.
func (h *ReportHandler) ResolveReport(w http.ResponseWriter, r *http.Request) {
	toiletID, ok := pathInt(r, "id")
	if !ok {
		writeBadRequest(w, "invalid toilet id")
		return
	}
	reportID, ok := pathInt(r, "report_id")
	if !ok {
		writeBadRequest(w, "invalid report id")
		return
	}
	claims := identityFromContext(r)

	report, err := h.Service.ResolveReport(r.Context(), *claims, toiletID, reportID)
	if err != nil {
		writeError(w, "ResolveReport", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": formatter.ReportMap(report.Row()),
	})
}
