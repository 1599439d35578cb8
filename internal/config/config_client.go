package config

import (
	"fmt"
	"time"
)

// ClientApp holds client-side application settings.
type ClientApp struct {
	Version string
	LogFile string
}

// ClientAdapter holds the remote REST API client settings.
type ClientAdapter struct {
	// BaseURL is the origin of the remote API.
	BaseURL string
	// RequestTimeout is the default timeout for outbound requests.
	RequestTimeout time.Duration
	// Token is the bearer token attached to remote API requests.
	Token string
	// HealthPath is the path checked by the connectivity prober.
	HealthPath string
}

// ClientDB contains local database connection settings for the client.
type ClientDB struct {
	// DSN is the SQLite connection string.
	DSN string
	// BusyTimeout is the SQLite busy timeout.
	BusyTimeout time.Duration
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDB
}

// ClientInterceptor holds the network interception layer policy.
type ClientInterceptor struct {
	CachePrefix          string
	CacheVersion         string
	CacheableRoutes      []string
	Shell                []string
	SkipWaitingOnInstall bool
	FetchConcurrency     int
}

// ClientConnectivity holds connectivity monitor settings.
type ClientConnectivity struct {
	ProbeInterval time.Duration
	ProbePath     string
	StartOffline  bool
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	// SyncInterval defines how often the drain is retried; zero disables it.
	SyncInterval time.Duration
}

// ClientServer holds the local host surface settings.
type ClientServer struct {
	HTTPAddress    string
	RequestTimeout time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	App          ClientApp
	Adapter      ClientAdapter
	Storage      ClientStorage
	Interceptor  ClientInterceptor
	Connectivity ClientConnectivity
	Workers      ClientWorkers
	Server       ClientServer
}

// GetClientConfig builds and validates the client config view from the
// merged structured configuration. flags may be nil.
func GetClientConfig(flags *Flags) (*ClientConfig, error) {
	cfg, err := GetStructuredConfig(flags)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := NewClientConfig(cfg)
	return clientCfg, clientCfg.validate()
}

// NewClientConfig maps the fields of cfg relevant to the client runtime.
func NewClientConfig(cfg *StructuredConfig) *ClientConfig {
	return &ClientConfig{
		App: ClientApp{
			Version: cfg.App.Version,
			LogFile: cfg.App.LogFile,
		},
		Adapter: ClientAdapter{
			BaseURL:        cfg.Adapter.BaseURL,
			RequestTimeout: cfg.Adapter.RequestTimeout,
			Token:          cfg.Adapter.Token,
			HealthPath:     cfg.Connectivity.ProbePath,
		},
		Storage: ClientStorage{
			DB: ClientDB{
				DSN:         cfg.Storage.DB.DSN,
				BusyTimeout: cfg.Storage.DB.BusyTimeout,
			},
		},
		Interceptor: ClientInterceptor{
			CachePrefix:          cfg.Interceptor.CachePrefix,
			CacheVersion:         cfg.Interceptor.CacheVersion,
			CacheableRoutes:      cfg.Interceptor.CacheableRoutes,
			Shell:                cfg.Interceptor.Shell,
			SkipWaitingOnInstall: !cfg.Interceptor.RequireSkipWaiting,
			FetchConcurrency:     cfg.Interceptor.FetchConcurrency,
		},
		Connectivity: ClientConnectivity{
			ProbeInterval: cfg.Connectivity.ProbeInterval,
			ProbePath:     cfg.Connectivity.ProbePath,
			StartOffline:  cfg.Connectivity.StartOffline,
		},
		Workers: ClientWorkers{SyncInterval: cfg.Workers.SyncInterval},
		Server: ClientServer{
			HTTPAddress:    cfg.Server.HTTPAddress,
			RequestTimeout: cfg.Server.RequestTimeout,
		},
	}
}
