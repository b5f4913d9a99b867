package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/zovio-dev/hrms/backend/internal/domain"
	"github.com/zovio-dev/hrms/backend/internal/report"
)

func (h *Handler) buildReport(w http.ResponseWriter, r *http.Request) (*report.Report, bool) {
	user := r.Context().Value(UserInfoCtx).(*domain.User)

	records, err := h.repository.GetAttendancesByUserID(user.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return nil, false
	}

	rep, err := h.reports.Generate(user, records, h.clock())
	if err != nil {
		h.internalServerError(w, r, fmt.Errorf("report for %s: %w", user.EmployeeID, err))
		return nil, false
	}

	return rep, true
}

func (h *Handler) GetAttendanceReport(w http.ResponseWriter, r *http.Request) {
	rep, ok := h.buildReport(w, r)
	if !ok {
		return
	}

	h.successResponse(w, r, "attendance report generated", rep)
}

func (h *Handler) ExportAttendanceReport(w http.ResponseWriter, r *http.Request) {
	rep, ok := h.buildReport(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := rep.WriteXLSX(&buf); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="attendance-%s.xlsx"`, rep.EmployeeID))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logInternalServerError(r, err)
	}
}
