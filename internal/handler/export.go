package handler

import (
	"fmt"
	"net/http"

	"github.com/streakly/streakly/internal/ctxkeys"
	"github.com/streakly/streakly/internal/service"
)

type ExportHandler struct {
	exportService *service.ExportService
}

func NewExportHandler(exportService *service.ExportService) *ExportHandler {
	return &ExportHandler{
		exportService: exportService,
	}
}

// Export returns a download link when export storage is configured, and the
// export document itself otherwise.
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	if h.exportService.HasStorage() {
		url, err := h.exportService.Publish(r.Context(), user.ID)
		if err != nil {
			writeError(w, r, err, "export data")
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{"success": true, "url": url})
		return
	}

	export, err := h.exportService.Build(user.ID)
	if err != nil {
		writeError(w, r, err, "export data")
		return
	}

	filename := fmt.Sprintf("streakly-export-%s.json", export.ExportedAt.Format("2006-01-02"))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	writeJSON(w, http.StatusOK, export)
}
