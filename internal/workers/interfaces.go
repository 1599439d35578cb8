// Package workers manages the background workers of the client, such as the
// sync job and the connectivity prober, as one unit.
package workers

import "context"

// Worker is a background loop with an explicit lifecycle.
//
// Start must not block: it launches the loop and returns. Stop blocks until
// the loop has exited and must be safe to call on a worker that was never
// started.
type Worker interface {
	Start(ctx context.Context)
	Stop()
}
