package interceptor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/MKhiriev/edu-offline/internal/store"
	"github.com/MKhiriev/edu-offline/models"
)

const apiPrefix = "/api/"

// RoundTrip implements [http.RoundTripper].
func (i *Interceptor) RoundTrip(req *http.Request) (*http.Response, error) {
	if i.State() != StateActive || !intercepted(req) {
		return i.next.RoundTrip(req)
	}

	switch {
	case i.cacheableAPI(req.URL.Path):
		return i.networkFirstAPI(req)
	case isNavigation(req):
		return i.navigate(req)
	case strings.HasPrefix(req.URL.Path, apiPrefix):
		return i.next.RoundTrip(req)
	default:
		return i.cacheFirstStatic(req)
	}
}

func intercepted(req *http.Request) bool {
	if req.Method != http.MethodGet && req.Method != "" {
		return false
	}
	return req.URL.Scheme == "http" || req.URL.Scheme == "https"
}

func (i *Interceptor) cacheableAPI(path string) bool {
	if !strings.HasPrefix(path, apiPrefix) {
		return false
	}
	for _, route := range i.cfg.CacheableRoutes {
		if strings.HasPrefix(path, route) {
			return true
		}
	}
	return false
}

func isNavigation(req *http.Request) bool {
	if req.Header.Get("Sec-Fetch-Mode") == "navigate" {
		return true
	}
	return strings.Contains(req.Header.Get("Accept"), "text/html")
}

// networkFirstAPI stores every 2xx answer under the exact URL. When the
// network fails it answers from any namespace, then with the offline JSON.
func (i *Interceptor) networkFirstAPI(req *http.Request) (*http.Response, error) {
	key := cacheKey(req.URL)

	resp, err := i.next.RoundTrip(req)
	if err == nil {
		if ok(resp.StatusCode) {
			return i.store(req.Context(), i.APINamespace(), key, resp)
		}
		return resp, nil
	}

	log := i.logger.Debug().Err(err).Str("func", "Interceptor.networkFirstAPI").Str("url", key)
	if cached, found := i.match(req.Context(), key); found {
		log.Msg("network failed, serving cached response")
		return fallbackResponse(cached, req), nil
	}
	log.Msg("network failed, nothing cached")
	return offlineJSON(req), nil
}

// navigate mirrors successful page loads under the shell key so that any
// route can fall back to the app shell.
func (i *Interceptor) navigate(req *http.Request) (*http.Response, error) {
	key := cacheKey(req.URL)

	resp, err := i.next.RoundTrip(req)
	if err == nil {
		if !ok(resp.StatusCode) {
			return resp, nil
		}
		resp, err = i.store(req.Context(), i.StaticNamespace(), key, resp)
		if err != nil {
			return nil, err
		}
		i.mirror(req.Context(), key, i.shellURL())
		return resp, nil
	}

	for _, candidate := range []string{key, i.shellURL(), i.rootURL()} {
		if cached, found := i.match(req.Context(), candidate); found {
			return fallbackResponse(cached, req), nil
		}
	}

	i.logger.Debug().Err(err).
		Str("func", "Interceptor.navigate").
		Str("url", key).
		Msg("network failed, no shell cached")
	return offlineHTML(req), nil
}

// cacheFirstStatic serves assets from any namespace and caches same-origin
// 2xx network answers on a miss.
func (i *Interceptor) cacheFirstStatic(req *http.Request) (*http.Response, error) {
	key := cacheKey(req.URL)
	if cached, found := i.match(req.Context(), key); found {
		return cachedResponse(cached, req), nil
	}

	resp, err := i.next.RoundTrip(req)
	if err != nil {
		i.logger.Debug().Err(err).
			Str("func", "Interceptor.cacheFirstStatic").
			Str("url", key).
			Msg("network failed, asset not cached")
		return offlineText(req), nil
	}
	if ok(resp.StatusCode) && i.sameOrigin(req.URL) {
		return i.store(req.Context(), i.StaticNamespace(), key, resp)
	}
	return resp, nil
}

func (i *Interceptor) sameOrigin(u *url.URL) bool {
	return strings.EqualFold(u.Scheme, i.origin.Scheme) && strings.EqualFold(u.Host, i.origin.Host)
}

func (i *Interceptor) shellURL() string {
	return i.origin.String() + shellKey
}

func (i *Interceptor) rootURL() string {
	return i.origin.String() + "/"
}

// store buffers the body of resp, saves a copy under key and returns resp
// with a fresh body. A cache write failure is logged and never fails the
// request.
func (i *Interceptor) store(ctx context.Context, namespace, key string, resp *http.Response) (*http.Response, error) {
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to read response body of %s: %w", key, err)
	}
	resp.Body = io.NopCloser(bytes.NewReader(body))
	resp.ContentLength = int64(len(body))

	entry := models.CachedResponse{
		Namespace: namespace,
		URL:       key,
		Status:    resp.StatusCode,
		Header:    resp.Header.Clone(),
		Body:      body,
		StoredAt:  i.now(),
	}
	// the write outlives an abandoned request
	if err := i.cache.Put(context.WithoutCancel(ctx), entry); err != nil {
		i.logger.Warn().Err(err).
			Str("func", "Interceptor.store").
			Str("namespace", namespace).
			Str("url", key).
			Msg("failed to cache response")
	}
	return resp, nil
}

// mirror copies the newest entry stored under from to the key to.
func (i *Interceptor) mirror(ctx context.Context, from, to string) {
	if from == to {
		return
	}
	ctx = context.WithoutCancel(ctx)

	entry, err := i.cache.Match(ctx, i.StaticNamespace(), from)
	if err != nil {
		return
	}
	entry.URL = to
	if err := i.cache.Put(ctx, entry); err != nil {
		i.logger.Warn().Err(err).
			Str("func", "Interceptor.mirror").
			Str("url", to).
			Msg("failed to mirror app shell")
	}
}

func (i *Interceptor) match(ctx context.Context, key string) (models.CachedResponse, bool) {
	cached, err := i.cache.MatchAny(ctx, key)
	if err != nil {
		if !errors.Is(err, store.ErrResponseNotCached) {
			i.logger.Warn().Err(err).
				Str("func", "Interceptor.match").
				Str("url", key).
				Msg("response cache unavailable")
		}
		return models.CachedResponse{}, false
	}
	return cached, true
}

// cacheKey is the exact request URL without its fragment.
func cacheKey(u *url.URL) string {
	c := *u
	c.Fragment = ""
	c.RawFragment = ""
	return c.String()
}

func ok(status int) bool {
	return status >= http.StatusOK && status < http.StatusMultipleChoices
}
