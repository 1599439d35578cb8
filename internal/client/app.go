package client

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/edu-offline/internal/adapter"
	"github.com/MKhiriev/edu-offline/internal/config"
	"github.com/MKhiriev/edu-offline/internal/connectivity"
	"github.com/MKhiriev/edu-offline/internal/handler"
	"github.com/MKhiriev/edu-offline/internal/interceptor"
	"github.com/MKhiriev/edu-offline/internal/logger"
	"github.com/MKhiriev/edu-offline/internal/server"
	"github.com/MKhiriev/edu-offline/internal/service"
	"github.com/MKhiriev/edu-offline/internal/store"
	"github.com/MKhiriev/edu-offline/internal/validators"
	"github.com/MKhiriev/edu-offline/internal/workers"
)

// App owns every component of the offline engine for one process.
type App struct {
	cfg      *config.ClientConfig
	storages *store.ClientStorages
	layer    *interceptor.Interceptor
	monitor  *connectivity.Monitor
	services *service.ClientServices
	workers  *workers.Workers
	logger   *logger.Logger
}

// NewApp wires the engine. A local store that cannot be opened does not fail
// the app: reads and writes then report offline data as unavailable.
func NewApp(ctx context.Context, cfg *config.ClientConfig, logger *logger.Logger) (*App, error) {
	storages := store.OpenClientStorages(ctx, cfg.Storage, logger.Component("store"))

	layer, err := interceptor.New(cfg.Interceptor, cfg.Adapter.BaseURL, nil, storages.Local.Responses(), logger.Component("interceptor"))
	if err != nil {
		_ = storages.Close()
		return nil, fmt.Errorf("create interception layer: %w", err)
	}

	api, err := adapter.NewHTTPRemoteAPI(cfg.Adapter, layer, logger.Component("adapter"))
	if err != nil {
		_ = storages.Close()
		return nil, fmt.Errorf("create remote API client: %w", err)
	}

	monitor := connectivity.NewMonitor(!cfg.Connectivity.StartOffline, logger.Component("connectivity"))
	services := service.NewClientServices(storages, api, monitor, validators.NewProgressValidator(), cfg.Workers, logger.Component("service"))

	background := []workers.Worker{services.SyncJob}
	if cfg.Connectivity.ProbeInterval > 0 {
		background = append(background, connectivity.NewProber(api, monitor, cfg.Connectivity.ProbeInterval, logger.Component("prober")))
	}

	return &App{
		cfg:      cfg,
		storages: storages,
		layer:    layer,
		monitor:  monitor,
		services: services,
		workers:  workers.NewWorkers(background...),
		logger:   logger,
	}, nil
}

// Services exposes the engine operations to one-shot commands.
func (a *App) Services() *service.ClientServices {
	return a.services
}

// Monitor returns the connectivity monitor of the app.
func (a *App) Monitor() *connectivity.Monitor {
	return a.monitor
}

// Layer returns the network interception layer of the app.
func (a *App) Layer() *interceptor.Interceptor {
	return a.layer
}

// Start installs the interception layer and launches the background workers.
// A failed install is logged; requests then pass through to the network.
func (a *App) Start(ctx context.Context) {
	if err := a.layer.Install(ctx); err != nil {
		a.logger.Warn().Err(err).Msg("interception layer install failed")
	}
	a.workers.Start(ctx)
}

// Serve runs the local host surface until ctx is done.
func (a *App) Serve(ctx context.Context) error {
	handlers, err := handler.NewHandlers(a.services, a.layer, a.monitor, a.cfg.Server, a.cfg.App.Version, a.logger.Component("host"))
	if err != nil {
		return fmt.Errorf("create handlers: %w", err)
	}

	srv, err := server.NewServer(handlers, a.cfg.Server, a.logger)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	return srv.Run(ctx)
}

// Run starts the engine and serves the host surface until the process
// receives a termination signal. The caller still owns Close.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	a.Start(ctx)
	return a.Serve(ctx)
}

// Close stops the workers and releases the local store.
func (a *App) Close() error {
	a.workers.Stop()
	if err := a.storages.Close(); err != nil {
		return fmt.Errorf("close storages: %w", err)
	}
	return nil
}
