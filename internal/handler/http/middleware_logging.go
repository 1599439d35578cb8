package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/edu-offline/internal/interceptor"
	"github.com/MKhiriev/edu-offline/internal/logger"
)

// withLogging writes one access log line per request. Responses synthesized
// by the interception layer are flagged as offline.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		start := time.Now()
		lw := &responseWriter{ResponseWriter: w}

		next.ServeHTTP(lw, r)

		log.Info().
			Str("uri", r.RequestURI).
			Str("method", r.Method).
			Int("status", lw.status).
			Dur("duration", time.Since(start)).
			Int("size", lw.size).
			Bool("offline", lw.Header().Get(interceptor.OfflineHeader) != "").
			Send()
	})
}
