package interceptor

import (
	"net/http"
	"net/http/httputil"

	"github.com/MKhiriev/edu-offline/internal/logger"
)

// Proxy returns a handler forwarding every request to the origin through the
// interception layer. It lets a local host surface serve the app offline.
func (i *Interceptor) Proxy() http.Handler {
	return &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(i.origin)
			pr.Out.Host = i.origin.Host
			pr.SetXForwarded()
		},
		Transport: i,
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			logger.FromRequest(r).Err(err).
				Str("func", "Interceptor.Proxy").
				Str("url", r.URL.String()).
				Msg("proxied request failed")
			w.Header().Set(OfflineHeader, "true")
			http.Error(w, "upstream unavailable", http.StatusBadGateway)
		},
	}
}
