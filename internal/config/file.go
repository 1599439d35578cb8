package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// StructuredFileConfig is the on-disk shape of the configuration file. The
// same keys are used by JSON and TOML.
type StructuredFileConfig struct {
	App struct {
		Version string `json:"version" toml:"version"`
		LogFile string `json:"log_file" toml:"log_file"`
	} `json:"app,omitempty" toml:"app"`

	Storage struct {
		DB struct {
			DSN         string   `json:"dsn" toml:"dsn"`
			BusyTimeout Duration `json:"busy_timeout" toml:"busy_timeout"`
		} `json:"db,omitempty" toml:"db"`
	} `json:"storage,omitempty" toml:"storage"`

	Adapter struct {
		BaseURL        string   `json:"base_url" toml:"base_url"`
		RequestTimeout Duration `json:"request_timeout" toml:"request_timeout"`
		Token          string   `json:"token" toml:"token"`
	} `json:"adapter,omitempty" toml:"adapter"`

	Interceptor struct {
		CachePrefix        string   `json:"cache_prefix" toml:"cache_prefix"`
		CacheVersion       string   `json:"cache_version" toml:"cache_version"`
		CacheableRoutes    []string `json:"cacheable_routes" toml:"cacheable_routes"`
		Shell              []string `json:"shell" toml:"shell"`
		RequireSkipWaiting bool     `json:"require_skip_waiting" toml:"require_skip_waiting"`
		FetchConcurrency   int      `json:"fetch_concurrency" toml:"fetch_concurrency"`
	} `json:"interceptor,omitempty" toml:"interceptor"`

	Connectivity struct {
		ProbeInterval Duration `json:"probe_interval" toml:"probe_interval"`
		ProbePath     string   `json:"probe_path" toml:"probe_path"`
		StartOffline  bool     `json:"start_offline" toml:"start_offline"`
	} `json:"connectivity,omitempty" toml:"connectivity"`

	Workers struct {
		SyncInterval Duration `json:"sync_interval" toml:"sync_interval"`
	} `json:"workers,omitempty" toml:"workers"`

	Server struct {
		HTTPAddress    string   `json:"http_address" toml:"http_address"`
		RequestTimeout Duration `json:"request_timeout" toml:"request_timeout"`
	} `json:"server,omitempty" toml:"server"`
}

func parseFile(path string) (*StructuredConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading a config file: %w", err)
	}

	var fileCfg StructuredFileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("error decoding toml configs: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("error decoding json configs: %w", err)
		}
	}

	cfg := &StructuredConfig{
		App: App{
			Version: fileCfg.App.Version,
			LogFile: fileCfg.App.LogFile,
		},
		Storage: Storage{
			DB: DB{
				DSN:         fileCfg.Storage.DB.DSN,
				BusyTimeout: time.Duration(fileCfg.Storage.DB.BusyTimeout),
			},
		},
		Adapter: Adapter{
			BaseURL:        fileCfg.Adapter.BaseURL,
			RequestTimeout: time.Duration(fileCfg.Adapter.RequestTimeout),
			Token:          fileCfg.Adapter.Token,
		},
		Interceptor: Interceptor{
			CachePrefix:        fileCfg.Interceptor.CachePrefix,
			CacheVersion:       fileCfg.Interceptor.CacheVersion,
			CacheableRoutes:    fileCfg.Interceptor.CacheableRoutes,
			Shell:              fileCfg.Interceptor.Shell,
			RequireSkipWaiting: fileCfg.Interceptor.RequireSkipWaiting,
			FetchConcurrency:   fileCfg.Interceptor.FetchConcurrency,
		},
		Connectivity: Connectivity{
			ProbeInterval: time.Duration(fileCfg.Connectivity.ProbeInterval),
			ProbePath:     fileCfg.Connectivity.ProbePath,
			StartOffline:  fileCfg.Connectivity.StartOffline,
		},
		Workers: Workers{
			SyncInterval: time.Duration(fileCfg.Workers.SyncInterval),
		},
		Server: Server{
			HTTPAddress:    fileCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(fileCfg.Server.RequestTimeout),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that decodes from strings like
// "1h" or "30s" in JSON and TOML, and from integer nanoseconds in JSON.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		return d.UnmarshalText([]byte(value))
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// UnmarshalText parses a time.ParseDuration string. It is used by TOML.
func (d *Duration) UnmarshalText(text []byte) error {
	tmp, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(tmp)
	return nil
}
