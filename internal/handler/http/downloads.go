package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) listDownloads(w http.ResponseWriter, r *http.Request) {
	entries, err := h.services.Downloads.ListDownloads(r.Context())
	if err != nil {
		writeError(w, r, "*Handler.listDownloads", err)
		return
	}
	writeJSON(w, r, http.StatusOK, entries)
}

func (h *Handler) downloadCourse(w http.ResponseWriter, r *http.Request) {
	res, err := h.services.Downloads.DownloadCourse(r.Context(), chi.URLParam(r, "courseId"))
	if err != nil {
		writeError(w, r, "*Handler.downloadCourse", err)
		return
	}
	writeJSON(w, r, http.StatusCreated, res)
}

func (h *Handler) removeCourse(w http.ResponseWriter, r *http.Request) {
	if err := h.services.Downloads.RemoveCourse(r.Context(), chi.URLParam(r, "courseId")); err != nil {
		writeError(w, r, "*Handler.removeCourse", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) downloadMaterial(w http.ResponseWriter, r *http.Request) {
	entry, err := h.services.Downloads.DownloadMaterial(r.Context(), chi.URLParam(r, "materialId"))
	if err != nil {
		writeError(w, r, "*Handler.downloadMaterial", err)
		return
	}
	writeJSON(w, r, http.StatusCreated, entry)
}

func (h *Handler) removeMaterial(w http.ResponseWriter, r *http.Request) {
	if err := h.services.Downloads.RemoveMaterial(r.Context(), chi.URLParam(r, "materialId")); err != nil {
		writeError(w, r, "*Handler.removeMaterial", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) clearAll(w http.ResponseWriter, r *http.Request) {
	if err := h.services.Downloads.ClearAll(r.Context()); err != nil {
		writeError(w, r, "*Handler.clearAll", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
