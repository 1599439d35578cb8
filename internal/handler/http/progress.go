package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/edu-offline/models"
)

// updateProgress answers 200 with the confirmed record, or 202 with the
// provisional one when the update was queued.
func (h *Handler) updateProgress(w http.ResponseWriter, r *http.Request) {
	var update models.ProgressUpdate
	if err := decodeJSON(r, &update); err != nil {
		writeError(w, r, "*Handler.updateProgress", err)
		return
	}

	rec, err := h.services.Progress.UpdateProgress(r.Context(), chi.URLParam(r, "topicId"), update)
	if err != nil {
		writeError(w, r, "*Handler.updateProgress", err)
		return
	}

	status := http.StatusOK
	if rec.Provisional() {
		status = http.StatusAccepted
	}
	writeJSON(w, r, status, rec)
}
