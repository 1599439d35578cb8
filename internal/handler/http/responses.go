package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MKhiriev/edu-offline/internal/app"
	"github.com/MKhiriev/edu-offline/internal/logger"
)

type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "writeJSON").Msg("error encoding response")
	}
}

// writeError logs err and answers with the status mapped from it.
func writeError(w http.ResponseWriter, r *http.Request, fn string, err error) {
	status := statusFromError(err)

	event := logger.FromRequest(r).Warn()
	if status >= http.StatusInternalServerError {
		event = logger.FromRequest(r).Error()
	}
	event.Err(err).Str("func", fn).Int("status", status).Msg("request failed")

	msg := app.Message(err)
	if msg == app.MsgInternalError && status < http.StatusInternalServerError {
		msg = app.MsgInvalidDataProvided
	}
	writeJSON(w, r, status, errorResponse{Error: msg, Detail: err.Error()})
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.Join(ErrInvalidJSON, err)
	}
	return nil
}
