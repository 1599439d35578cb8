package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrNotFound            = errors.New("entity not found")
	ErrUnauthorized        = errors.New("unauthorized")

	// ErrNotAvailableOffline is returned when the network failed and the
	// local store has no copy of the requested entity.
	ErrNotAvailableOffline = errors.New("not available offline")

	// ErrOfflineDataUnavailable is returned when the local store could not be
	// opened. Callers treat it as a normal outcome, not a crash.
	ErrOfflineDataUnavailable = errors.New("offline data unavailable")

	// ErrDrainAborted is returned when a queued mutation failed; the queue is
	// kept for the next trigger.
	ErrDrainAborted = errors.New("sync drain aborted")
)
