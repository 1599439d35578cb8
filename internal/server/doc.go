// Package server runs the local host surface of the client.
//
// It owns the HTTP listener lifecycle: startup, signal handling and graceful
// shutdown.
package server
