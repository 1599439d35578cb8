package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/edu-offline/internal/interceptor"
	"github.com/MKhiriev/edu-offline/models"
)

type statusResponse struct {
	Online   bool                 `json:"online"`
	Layer    string               `json:"layer"`
	Pending  int                  `json:"pending"`
	LastSync *time.Time           `json:"lastSync,omitempty"`
	Stats    *models.StorageStats `json:"stats,omitempty"`
}

type connectivityRequest struct {
	Online *bool `json:"online"`
}

type connectivityResponse struct {
	Online  bool `json:"online"`
	Changed bool `json:"changed"`
}

// getStatus reports the engine state. Local store failures leave the stats
// out instead of failing the request.
func (h *Handler) getStatus(w http.ResponseWriter, r *http.Request) {
	resp := statusResponse{
		Online: h.conn.Online(),
		Layer:  h.layer.State().String(),
	}

	if stats, err := h.services.Downloads.Stats(r.Context()); err == nil {
		resp.Pending = stats.PendingSyncs
		resp.Stats = &stats
	} else {
		h.logger.Warn().Err(err).Str("func", "*Handler.getStatus").Msg("offline stats unavailable")
	}
	if last, err := h.services.Sync.LastSync(r.Context()); err == nil && !last.IsZero() {
		resp.LastSync = &last
	}

	writeJSON(w, r, http.StatusOK, resp)
}

func (h *Handler) postMessage(w http.ResponseWriter, r *http.Request) {
	var msg interceptor.Message
	if err := decodeJSON(r, &msg); err != nil {
		writeError(w, r, "*Handler.postMessage", err)
		return
	}

	res, err := h.layer.HandleMessage(r.Context(), msg)
	if err != nil {
		writeError(w, r, "*Handler.postMessage", err)
		return
	}
	writeJSON(w, r, http.StatusOK, res)
}

// postConnectivity records a connectivity event of the host. Going online
// wakes the sync job through the monitor.
func (h *Handler) postConnectivity(w http.ResponseWriter, r *http.Request) {
	var req connectivityRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, "*Handler.postConnectivity", err)
		return
	}
	if req.Online == nil {
		writeError(w, r, "*Handler.postConnectivity", ErrInvalidJSON)
		return
	}

	changed := h.conn.SetOnline(*req.Online)
	writeJSON(w, r, http.StatusOK, connectivityResponse{Online: *req.Online, Changed: changed})
}

// postSync drains the queue synchronously and returns the report, also
// when the drain aborted.
func (h *Handler) postSync(w http.ResponseWriter, r *http.Request) {
	report, err := h.services.Sync.Drain(r.Context())
	if err != nil {
		h.logger.Warn().Err(err).Str("func", "*Handler.postSync").Msg("sync drain aborted")
		writeJSON(w, r, statusFromError(err), report)
		return
	}
	writeJSON(w, r, http.StatusOK, report)
}
