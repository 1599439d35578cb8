package models

import (
	"net/http"
	"time"
)

// CachedResponse is an HTTP response stored by the interception layer.
// Namespace carries the cache generation tag; URL is the exact request URL
// the response was stored under.
type CachedResponse struct {
	Namespace string
	URL       string
	Status    int
	Header    http.Header
	Body      []byte
	StoredAt  time.Time
}
