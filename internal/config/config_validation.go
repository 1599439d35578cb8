// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"net/url"
	"strings"
)

// validate checks that the merged [StructuredConfig] can be used at startup.
// Defaults are applied before validation, so only explicitly broken values
// are rejected here.
func (cfg *StructuredConfig) validate() error {
	var errs []error

	if cfg.Storage.DB.BusyTimeout < 0 {
		errs = append(errs, ErrInvalidStorageConfigs)
	}
	if cfg.Adapter.RequestTimeout < 0 || cfg.Server.RequestTimeout < 0 {
		errs = append(errs, ErrInvalidAdapterConfigs)
	}
	if cfg.Workers.SyncInterval < 0 || cfg.Connectivity.ProbeInterval < 0 {
		errs = append(errs, ErrInvalidWorkerConfigs)
	}

	return errors.Join(errs...)
}

func (cfg *ClientConfig) validate() error {
	var errs []error

	if cfg.Storage.DB.DSN == "" {
		errs = append(errs, ErrInvalidStorageConfigs)
	}

	if u, err := url.Parse(cfg.Adapter.BaseURL); err != nil || u.Scheme == "" || u.Host == "" || cfg.Adapter.RequestTimeout <= 0 {
		errs = append(errs, ErrInvalidAdapterConfigs)
	}

	if cfg.Interceptor.CachePrefix == "" || cfg.Interceptor.CacheVersion == "" || cfg.Interceptor.FetchConcurrency < 1 {
		errs = append(errs, ErrInvalidInterceptorConfigs)
	}
	for _, route := range cfg.Interceptor.CacheableRoutes {
		if !strings.HasPrefix(route, "/") {
			errs = append(errs, ErrInvalidInterceptorConfigs)
			break
		}
	}

	if cfg.Connectivity.ProbeInterval > 0 && !strings.HasPrefix(cfg.Connectivity.ProbePath, "/") {
		errs = append(errs, ErrInvalidConnectivityConfigs)
	}

	if cfg.Workers.SyncInterval < 0 {
		errs = append(errs, ErrInvalidWorkerConfigs)
	}

	return errors.Join(errs...)
}
