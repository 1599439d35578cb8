package config

import "time"

// Default values applied to fields left empty by every source.
const (
	DefaultDSN              = "edu-offline.db"
	DefaultBusyTimeout      = 5 * time.Second
	DefaultAdapterBaseURL   = "http://localhost:5000"
	DefaultRequestTimeout   = 10 * time.Second
	DefaultCachePrefix      = "smart-edu"
	DefaultCacheVersion     = "v2"
	DefaultFetchConcurrency = 4
	DefaultProbePath        = "/api/health"
	DefaultServerAddress    = "127.0.0.1:8081"
)

// DefaultCacheableRoutes is the default API allow-list of the interception
// layer.
func DefaultCacheableRoutes() []string {
	return []string{"/api/courses", "/api/materials", "/api/progress", "/api/revisions", "/api/gamification"}
}

// DefaultShell is the default app shell precached on install.
func DefaultShell() []string {
	return []string{"/", "/index.html", "/manifest.json", "/favicon.ico"}
}

func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Storage.DB.DSN == "" {
		cfg.Storage.DB.DSN = DefaultDSN
	}
	if cfg.Storage.DB.BusyTimeout == 0 {
		cfg.Storage.DB.BusyTimeout = DefaultBusyTimeout
	}
	if cfg.Adapter.BaseURL == "" {
		cfg.Adapter.BaseURL = DefaultAdapterBaseURL
	}
	if cfg.Adapter.RequestTimeout == 0 {
		cfg.Adapter.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Interceptor.CachePrefix == "" {
		cfg.Interceptor.CachePrefix = DefaultCachePrefix
	}
	if cfg.Interceptor.CacheVersion == "" {
		cfg.Interceptor.CacheVersion = DefaultCacheVersion
	}
	if len(cfg.Interceptor.CacheableRoutes) == 0 {
		cfg.Interceptor.CacheableRoutes = DefaultCacheableRoutes()
	}
	if len(cfg.Interceptor.Shell) == 0 {
		cfg.Interceptor.Shell = DefaultShell()
	}
	if cfg.Interceptor.FetchConcurrency == 0 {
		cfg.Interceptor.FetchConcurrency = DefaultFetchConcurrency
	}
	if cfg.Connectivity.ProbePath == "" {
		cfg.Connectivity.ProbePath = DefaultProbePath
	}
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = DefaultServerAddress
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = DefaultRequestTimeout
	}
}
