package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// ControlPrefix is the path prefix of the engine's own routes.
const ControlPrefix = "/__offline"

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging)

	router.Route(ControlPrefix, func(r chi.Router) {
		r.Get("/version", h.getVersion)
		r.Get("/status", h.getStatus)
		r.Post("/message", h.postMessage)
		r.Post("/connectivity", h.postConnectivity)
		r.Post("/sync", h.postSync)

		r.Get("/courses/{courseId}", h.getCourse)
		r.Get("/courses/{courseId}/topics", h.getTopics)
		r.Get("/courses/{courseId}/topics/{topicId}/content", h.getTopicContent)
		r.Get("/materials/{materialId}", h.getMaterial)
		r.Get("/revisions", h.getRevisions)

		r.Get("/downloads", h.listDownloads)
		r.Get("/downloads/courses/{courseId}", h.getOfflineCourse)
		r.Post("/downloads/courses/{courseId}", h.downloadCourse)
		r.Delete("/downloads/courses/{courseId}", h.removeCourse)
		r.Post("/downloads/materials/{materialId}", h.downloadMaterial)
		r.Delete("/downloads/materials/{materialId}", h.removeMaterial)
		r.Delete("/downloads", h.clearAll)

		r.Get("/progress/course/{courseId}", h.getCourseProgress)
		r.Get("/progress/{topicId}", h.getTopicProgress)
		r.Put("/progress/{topicId}", h.updateProgress)
	})

	// the rest belongs to the remote origin
	router.Handle("/*", h.proxy)

	return router
}
