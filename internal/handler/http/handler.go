package http

import (
	"context"
	"net/http"

	"github.com/MKhiriev/edu-offline/internal/interceptor"
	"github.com/MKhiriev/edu-offline/internal/logger"
	"github.com/MKhiriev/edu-offline/internal/service"
)

// OfflineLayer is the part of the network interception layer the host
// surface talks to.
type OfflineLayer interface {
	State() interceptor.State
	HandleMessage(ctx context.Context, msg interceptor.Message) (interceptor.MessageResult, error)
	Proxy() http.Handler
}

// Connectivity receives the host's online and offline events.
type Connectivity interface {
	Online() bool
	SetOnline(online bool) bool
}

type Handler struct {
	services *service.ClientServices
	layer    OfflineLayer
	conn     Connectivity
	proxy    http.Handler
	version  string

	logger *logger.Logger
}

func NewHandler(services *service.ClientServices, layer OfflineLayer, conn Connectivity, version string, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		layer:    layer,
		conn:     conn,
		proxy:    layer.Proxy(),
		version:  version,
		logger:   logger,
	}
}
