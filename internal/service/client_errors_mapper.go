// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/edu-offline/internal/adapter"
	"github.com/MKhiriev/edu-offline/internal/store"
)

// mapAdapterError translates the adapter's transport error into a service
// business error.
func mapAdapterError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, adapter.ErrBadRequest):
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	case errors.Is(err, adapter.ErrUnauthorized), errors.Is(err, adapter.ErrForbidden):
		return fmt.Errorf("%w: %w", ErrUnauthorized, err)
	case errors.Is(err, adapter.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	return err
}

// isNetworkFailure reports whether err means the server could not be reached,
// as opposed to the server rejecting the request.
func isNetworkFailure(err error) bool {
	return errors.Is(err, adapter.ErrNetworkUnavailable) ||
		errors.Is(err, adapter.ErrBadGateway) ||
		errors.Is(err, adapter.ErrServiceUnavailable)
}

// mapStoreError translates local store failures.
func mapStoreError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, store.ErrStoreUnavailable):
		return fmt.Errorf("%w: %w", ErrOfflineDataUnavailable, err)
	case errors.Is(err, store.ErrRecordNotFound):
		return fmt.Errorf("%w: %w", ErrNotAvailableOffline, err)
	}

	return err
}
