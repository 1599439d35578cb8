package store

import "errors"

// Sentinel errors returned by the local store. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrRecordNotFound is returned when a key lookup matches no row of the
	// requested collection.
	ErrRecordNotFound = errors.New("record was not found")

	// ErrUnknownCollection is returned when a collection name is not part of
	// the schema.
	ErrUnknownCollection = errors.New("unknown collection")

	// ErrStoreUnavailable is returned by every operation of a store that
	// could not be opened. Callers treat it as "offline data unavailable".
	ErrStoreUnavailable = errors.New("offline store is unavailable")

	// ErrResponseNotCached is returned when no cached HTTP response matches.
	ErrResponseNotCached = errors.New("response is not cached")
)

// Low-level database operation errors.
var (
	ErrBuildingSQLQuery     = errors.New("error building sql query")
	ErrExecutingQuery       = errors.New("error executing sql query")
	ErrBeginningTransaction = errors.New("failed to begin transaction")
	ErrCommitingTransaction = errors.New("failed to commit transaction")
	ErrScanningRows         = errors.New("failed to scan rows")
	ErrDecodingRecord       = errors.New("failed to decode stored record")
)
