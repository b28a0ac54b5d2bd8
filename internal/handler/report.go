package handler

import (
	"net/http"

	"github.com/streakly/streakly/internal/ctxkeys"
	"github.com/streakly/streakly/internal/service"
)

type ReportHandler struct {
	reportService *service.ReportService
}

func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

func (h *ReportHandler) Report(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	report, err := h.reportService.Report(user.ID)
	if err != nil {
		writeError(w, r, err, "build report")
		return
	}

	writeJSON(w, http.StatusOK, report)
}
