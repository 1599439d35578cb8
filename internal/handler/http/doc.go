// Package http implements the local host surface of the offline client.
//
// Requests under /__offline/ control the engine: messages for the network
// interception layer, connectivity events reported by the host, online-first
// reads with their offline flags, downloads, progress writes and manual sync. Every other request is forwarded to the
// remote origin through the interception layer, so the host application
// reads cached responses transparently while offline. Request tracing and
// access logging wrap both groups.
package http
