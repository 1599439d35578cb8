package models

// ReadResult wraps a value read through the online-first path.
type ReadResult[T any] struct {
	Value T
	// Offline is set when the network was not reached and Value is a stored
	// copy.
	Offline bool
	// Stale is set when Value is an earlier HTTP response replayed by the
	// interception layer instead of a downloaded snapshot.
	Stale bool
}

// DrainReport describes one run of the sync orchestrator.
type DrainReport struct {
	// Drained is the number of queue entries applied and removed.
	Drained int
	// Remaining is the queue length after the run.
	Remaining int
	// FailedID is the queue id of the entry that aborted the run, or 0.
	FailedID int64
}
