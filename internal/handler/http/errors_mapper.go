package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/edu-offline/internal/adapter"
	"github.com/MKhiriev/edu-offline/internal/interceptor"
	"github.com/MKhiriev/edu-offline/internal/service"
	"github.com/MKhiriev/edu-offline/internal/store"
)

// errorStatuses is matched in order: a service error wrapping a transport
// error maps to the service status.
var errorStatuses = []struct {
	target error
	status int
}{
	{ErrInvalidJSON, http.StatusBadRequest},

	{service.ErrDrainAborted, http.StatusServiceUnavailable},
	{service.ErrInvalidDataProvided, http.StatusBadRequest},
	{service.ErrUnauthorized, http.StatusUnauthorized},
	{service.ErrNotFound, http.StatusNotFound},
	{service.ErrNotAvailableOffline, http.StatusNotFound},
	{service.ErrOfflineDataUnavailable, http.StatusServiceUnavailable},

	{interceptor.ErrUnknownMessage, http.StatusBadRequest},

	{adapter.ErrNetworkUnavailable, http.StatusBadGateway},
	{adapter.ErrBadGateway, http.StatusBadGateway},
	{adapter.ErrServiceUnavailable, http.StatusBadGateway},
	{adapter.ErrDecodingResponse, http.StatusBadGateway},

	{store.ErrBuildingSQLQuery, http.StatusInternalServerError},
	{store.ErrExecutingQuery, http.StatusInternalServerError},
	{store.ErrBeginningTransaction, http.StatusInternalServerError},
	{store.ErrCommitingTransaction, http.StatusInternalServerError},
	{store.ErrScanningRows, http.StatusInternalServerError},
	{store.ErrDecodingRecord, http.StatusInternalServerError},
}

func statusFromError(err error) int {
	for _, e := range errorStatuses {
		if errors.Is(err, e.target) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}
