// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer messages used by the local
// host surface and the command-line client.
//
// All Msg* constants are human-readable strings written into response bodies
// or printed to the terminal to describe the outcome of an operation.
package app

import (
	"errors"

	"github.com/MKhiriev/edu-offline/internal/adapter"
	"github.com/MKhiriev/edu-offline/internal/service"
)

const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded or fails validation.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgUnauthorized is returned when the remote API rejects the bearer
	// token.
	MsgUnauthorized = "session expired or access denied"

	// MsgDataNotFound is returned when the remote API has no such entity.
	MsgDataNotFound = "data not found"

	// MsgNotAvailableOffline is returned when the device is offline and the
	// entity was never downloaded or mirrored.
	MsgNotAvailableOffline = "not available offline, download it while online"

	// MsgOfflineDataUnavailable is returned when the local store could not be
	// opened.
	MsgOfflineDataUnavailable = "offline data is unavailable on this device"

	// MsgSyncAborted is returned when a drain stops at a failing entry. The
	// remaining changes stay queued.
	MsgSyncAborted = "sync stopped, pending changes are kept and will be retried"

	// MsgNetworkUnavailable is returned when the remote API cannot be reached.
	MsgNetworkUnavailable = "network unavailable"

	// MsgInternalError is returned for failures the caller cannot resolve.
	MsgInternalError = "internal error"
)

var messages = []struct {
	err error
	msg string
}{
	{service.ErrDrainAborted, MsgSyncAborted},
	{service.ErrInvalidDataProvided, MsgInvalidDataProvided},
	{service.ErrUnauthorized, MsgUnauthorized},
	{service.ErrNotFound, MsgDataNotFound},
	{service.ErrNotAvailableOffline, MsgNotAvailableOffline},
	{service.ErrOfflineDataUnavailable, MsgOfflineDataUnavailable},
	{adapter.ErrNetworkUnavailable, MsgNetworkUnavailable},
	{adapter.ErrBadGateway, MsgNetworkUnavailable},
	{adapter.ErrServiceUnavailable, MsgNetworkUnavailable},
}

// Message returns the user-facing message for err. Errors that match no
// known sentinel map to MsgInternalError.
func Message(err error) string {
	for _, m := range messages {
		if errors.Is(err, m.err) {
			return m.msg
		}
	}
	return MsgInternalError
}
