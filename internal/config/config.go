// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container of the
// edu-offline client. It aggregates all sub-configurations and is populated
// by merging values from environment variables, command-line flags and an
// optional JSON or TOML file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings.
	App App `envPrefix:"APP_"`

	// Storage holds the local SQLite store settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Adapter holds the remote REST API client settings.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Interceptor holds the caching policy of the network interception layer.
	Interceptor Interceptor `envPrefix:"INTERCEPTOR_"`

	// Connectivity holds the settings of the connectivity prober.
	Connectivity Connectivity `envPrefix:"CONNECTIVITY_"`

	// Workers holds configuration for background worker processes.
	Workers Workers `envPrefix:"WORKERS_"`

	// Server holds the local host surface settings (message channel and
	// intercepting proxy).
	Server Server `envPrefix:"SERVER_"`

	// FilePath is the optional path to a JSON or TOML configuration file.
	// The format is chosen by extension: ".toml" is TOML, anything else JSON.
	// Populated via the CONFIG environment variable or the -c / --config flag.
	FilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Version is the version string reported by the status command.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// LogFile is the path of the client log file. Empty means a "logs" file
	// next to the executable.
	// Env: APP_LOG_FILE
	LogFile string `env:"LOG_FILE"`
}

// Storage groups the configuration of the local store.
type Storage struct {
	// DB holds the SQLite connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the SQLite database.
type DB struct {
	// DSN is the SQLite file path or URI (e.g. "edu-offline.db",
	// "file:edu.db?cache=shared", ":memory:").
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`

	// BusyTimeout is how long SQLite waits on a locked database before
	// returning SQLITE_BUSY.
	// Env: STORAGE_DB_BUSY_TIMEOUT
	BusyTimeout time.Duration `env:"BUSY_TIMEOUT"`
}

// Adapter holds the remote REST API client settings.
type Adapter struct {
	// BaseURL is the origin of the remote API (e.g. "http://localhost:5000").
	// Env: ADAPTER_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// RequestTimeout bounds a single outbound request (e.g. "10s").
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// Token is the bearer token sent to the remote API.
	// Env: ADAPTER_TOKEN
	Token string `env:"TOKEN"`
}

// Interceptor holds the caching policy of the network interception layer.
type Interceptor struct {
	// CachePrefix is the common prefix of every cache namespace name.
	// Env: INTERCEPTOR_CACHE_PREFIX
	CachePrefix string `env:"CACHE_PREFIX"`

	// CacheVersion is the generation tag of the cache namespaces. Bumping it
	// makes activation purge every namespace of older generations.
	// Env: INTERCEPTOR_CACHE_VERSION
	CacheVersion string `env:"CACHE_VERSION"`

	// CacheableRoutes is the allow-list of API path prefixes served
	// network-first with cache fallback.
	// Env: INTERCEPTOR_CACHEABLE_ROUTES (comma separated)
	CacheableRoutes []string `env:"CACHEABLE_ROUTES" envSeparator:","`

	// Shell is the list of app shell paths precached on install.
	// Env: INTERCEPTOR_SHELL (comma separated)
	Shell []string `env:"SHELL" envSeparator:","`

	// RequireSkipWaiting keeps an installed layer in the waiting state until
	// a SKIP_WAITING message arrives. By default it activates right away.
	// Env: INTERCEPTOR_REQUIRE_SKIP_WAITING
	RequireSkipWaiting bool `env:"REQUIRE_SKIP_WAITING"`

	// FetchConcurrency bounds parallel fetches of precache and CACHE_URLS.
	// Env: INTERCEPTOR_FETCH_CONCURRENCY
	FetchConcurrency int `env:"FETCH_CONCURRENCY"`
}

// Connectivity holds the settings of the connectivity prober.
type Connectivity struct {
	// ProbeInterval is how often the remote health endpoint is checked.
	// Zero disables probing; connectivity is then driven by host events only.
	// Env: CONNECTIVITY_PROBE_INTERVAL
	ProbeInterval time.Duration `env:"PROBE_INTERVAL"`

	// ProbePath is the health endpoint path on the remote API.
	// Env: CONNECTIVITY_PROBE_PATH
	ProbePath string `env:"PROBE_PATH"`

	// StartOffline makes the monitor start in the offline state.
	// Env: CONNECTIVITY_START_OFFLINE
	StartOffline bool `env:"START_OFFLINE"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// SyncInterval is the periodic drain retry interval. Zero disables the
	// ticker; drains then run on reconnect only.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`
}

// Server holds the local host surface settings.
type Server struct {
	// HTTPAddress is the TCP address of the local host surface,
	// in "host:port" format (e.g. "127.0.0.1:8081").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration of a single inbound request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}
