package server

import "context"

// Server defines the lifecycle contract of the host surface.
type Server interface {
	// RunServer serves until SIGTERM, SIGINT or SIGQUIT and then shuts down
	// gracefully.
	RunServer()

	// Run serves until ctx is done and then shuts down gracefully. It
	// returns the listener error, if serving failed.
	Run(ctx context.Context) error

	// Shutdown gracefully stops the server and frees associated resources.
	Shutdown()
}
