package interceptor

import (
	"bytes"
	"io"
	"net/http"
	"strconv"

	"github.com/MKhiriev/edu-offline/models"
)

// OfflineHeader marks responses synthesized while the network is down.
const OfflineHeader = "X-Offline"

// CacheFallbackHeader marks a cached response served because the network
// request failed. Cache-first asset hits do not carry it.
const CacheFallbackHeader = "X-Offline-Cache"

const (
	offlineJSONBody = `{"offline":true,"message":"You are offline. Showing cached data."}`
	offlineHTMLBody = `<!DOCTYPE html><html><body><h2>You are offline</h2>` +
		`<p>Please connect to the internet and reload.</p></body></html>`
	offlineTextBody = "Offline"
)

func cachedResponse(c models.CachedResponse, req *http.Request) *http.Response {
	header := c.Header.Clone()
	if header == nil {
		header = http.Header{}
	}
	return newResponse(req, c.Status, header, c.Body)
}

// fallbackResponse is cachedResponse for a request whose network attempt
// failed.
func fallbackResponse(c models.CachedResponse, req *http.Request) *http.Response {
	resp := cachedResponse(c, req)
	resp.Header.Set(CacheFallbackHeader, "true")
	return resp
}

func offlineJSON(req *http.Request) *http.Response {
	header := http.Header{}
	header.Set("Content-Type", "application/json")
	header.Set(OfflineHeader, "true")
	return newResponse(req, http.StatusOK, header, []byte(offlineJSONBody))
}

func offlineHTML(req *http.Request) *http.Response {
	header := http.Header{}
	header.Set("Content-Type", "text/html; charset=utf-8")
	header.Set(OfflineHeader, "true")
	return newResponse(req, http.StatusServiceUnavailable, header, []byte(offlineHTMLBody))
}

func offlineText(req *http.Request) *http.Response {
	header := http.Header{}
	header.Set("Content-Type", "text/plain; charset=utf-8")
	header.Set(OfflineHeader, "true")
	return newResponse(req, http.StatusServiceUnavailable, header, []byte(offlineTextBody))
}

func newResponse(req *http.Request, status int, header http.Header, body []byte) *http.Response {
	header.Set("Content-Length", strconv.Itoa(len(body)))
	return &http.Response{
		Status:        strconv.Itoa(status) + " " + http.StatusText(status),
		StatusCode:    status,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader(body)),
		ContentLength: int64(len(body)),
		Request:       req,
	}
}
