// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import "errors"

// ErrNoHandlersAreCreated is returned by NewHandlers when the client config
// has no host address, so the host surface is disabled. Callers decide
// whether that is fatal.
var ErrNoHandlersAreCreated = errors.New("no handlers are created")
