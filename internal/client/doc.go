// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the offline engine runtime.
//
// It wires the local store, the interception layer, the remote API client,
// connectivity, services, background workers and the local host surface
// into a single process lifecycle.
package client
