package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/edu-offline/internal/interceptor"
	"github.com/MKhiriev/edu-offline/models"
)

// readResponse is the body of every online-first read. Offline reads also
// carry the X-Offline header.
type readResponse[T any] struct {
	Data    T    `json:"data"`
	Offline bool `json:"offline"`
	Stale   bool `json:"stale"`
}

func writeRead[T any](w http.ResponseWriter, r *http.Request, res models.ReadResult[T]) {
	if res.Offline {
		w.Header().Set(interceptor.OfflineHeader, "true")
	}
	writeJSON(w, r, http.StatusOK, readResponse[T]{Data: res.Value, Offline: res.Offline, Stale: res.Stale})
}

func (h *Handler) getCourse(w http.ResponseWriter, r *http.Request) {
	res, err := h.services.Courses.GetCourse(r.Context(), chi.URLParam(r, "courseId"))
	if err != nil {
		writeError(w, r, "*Handler.getCourse", err)
		return
	}
	writeRead(w, r, res)
}

func (h *Handler) getTopics(w http.ResponseWriter, r *http.Request) {
	res, err := h.services.Courses.GetTopics(r.Context(), chi.URLParam(r, "courseId"))
	if err != nil {
		writeError(w, r, "*Handler.getTopics", err)
		return
	}
	writeRead(w, r, res)
}

func (h *Handler) getTopicContent(w http.ResponseWriter, r *http.Request) {
	res, err := h.services.Courses.GetTopicContent(r.Context(), chi.URLParam(r, "courseId"), chi.URLParam(r, "topicId"))
	if err != nil {
		writeError(w, r, "*Handler.getTopicContent", err)
		return
	}
	writeRead(w, r, res)
}

func (h *Handler) getMaterial(w http.ResponseWriter, r *http.Request) {
	res, err := h.services.Courses.GetMaterial(r.Context(), chi.URLParam(r, "materialId"))
	if err != nil {
		writeError(w, r, "*Handler.getMaterial", err)
		return
	}
	writeRead(w, r, res)
}

func (h *Handler) getRevisions(w http.ResponseWriter, r *http.Request) {
	res, err := h.services.Courses.GetRevisions(r.Context())
	if err != nil {
		writeError(w, r, "*Handler.getRevisions", err)
		return
	}
	writeRead(w, r, res)
}

func (h *Handler) getCourseProgress(w http.ResponseWriter, r *http.Request) {
	res, err := h.services.Progress.GetCourseProgress(r.Context(), chi.URLParam(r, "courseId"))
	if err != nil {
		writeError(w, r, "*Handler.getCourseProgress", err)
		return
	}
	writeRead(w, r, res)
}

// getTopicProgress answers from the local store only.
func (h *Handler) getTopicProgress(w http.ResponseWriter, r *http.Request) {
	rec, err := h.services.Progress.GetTopicProgress(r.Context(), chi.URLParam(r, "topicId"))
	if err != nil {
		writeError(w, r, "*Handler.getTopicProgress", err)
		return
	}
	writeJSON(w, r, http.StatusOK, rec)
}

// getOfflineCourse returns the stored snapshot of a downloaded course.
func (h *Handler) getOfflineCourse(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.services.Downloads.GetCourseOffline(r.Context(), chi.URLParam(r, "courseId"))
	if err != nil {
		writeError(w, r, "*Handler.getOfflineCourse", err)
		return
	}
	writeJSON(w, r, http.StatusOK, snapshot)
}
