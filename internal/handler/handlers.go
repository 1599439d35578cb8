// Package handler groups the transport handlers of the client host surface.
package handler

import (
	"github.com/MKhiriev/edu-offline/internal/config"
	"github.com/MKhiriev/edu-offline/internal/handler/http"
	"github.com/MKhiriev/edu-offline/internal/logger"
	"github.com/MKhiriev/edu-offline/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.ClientServices, layer http.OfflineLayer, conn http.Connectivity, cfg config.ClientServer, version string, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.HTTPAddress == "" {
		return nil, ErrNoHandlersAreCreated
	}

	return &Handlers{
		HTTP: http.NewHandler(services, layer, conn, version, logger),
	}, nil
}
