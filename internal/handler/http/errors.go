// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors of request decoding. Callers can match against them with
// [errors.Is].
var (
	// ErrInvalidJSON is returned when a control request body is not valid
	// JSON for the expected payload.
	ErrInvalidJSON = errors.New("invalid JSON was passed")
)
