// Package interceptor implements the network interception layer: an
// [http.RoundTripper] that decides per request whether to answer from the
// network or from the local response cache.
//
// The layer follows an install → waiting → active lifecycle. Until it is
// active every request goes straight to the network. Once active, GET
// requests are classified as cacheable API calls (network-first), page
// navigations (network-first with an app shell fallback) or static assets
// (cache-first). Cached responses live in generation-tagged namespaces of
// [store.ResponseCache]; activating a new generation deletes the others.
package interceptor

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/edu-offline/internal/config"
	"github.com/MKhiriev/edu-offline/internal/logger"
	"github.com/MKhiriev/edu-offline/internal/store"
	"golang.org/x/sync/errgroup"
)

// State is the lifecycle state of the interception layer.
type State int32

const (
	StateInstalling State = iota
	StateWaiting
	StateActive
)

func (s State) String() string {
	switch s {
	case StateInstalling:
		return "installing"
	case StateWaiting:
		return "waiting"
	case StateActive:
		return "active"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// shellKey is the path every successful navigation is mirrored under.
const shellKey = "/index.html"

// Interceptor is the network interception layer of one client installation.
type Interceptor struct {
	cfg    config.ClientInterceptor
	origin *url.URL
	next   http.RoundTripper
	cache  store.ResponseCache
	logger *logger.Logger

	state       atomic.Int32
	skipWaiting atomic.Bool
	lifecycle   sync.Mutex

	now func() time.Time
}

// New returns an Interceptor in the installing state. origin is the base URL
// of the remote side; it decides what is same-origin and resolves relative
// shell and CACHE_URLS entries. next performs the real network round trips
// and defaults to [http.DefaultTransport].
func New(cfg config.ClientInterceptor, origin string, next http.RoundTripper, cache store.ResponseCache, logger *logger.Logger) (*Interceptor, error) {
	u, err := parseOrigin(origin)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOrigin, err)
	}
	if next == nil {
		next = http.DefaultTransport
	}
	if cfg.FetchConcurrency <= 0 {
		cfg.FetchConcurrency = config.DefaultFetchConcurrency
	}

	i := &Interceptor{
		cfg:    cfg,
		origin: u,
		next:   next,
		cache:  cache,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
	i.state.Store(int32(StateInstalling))
	return i, nil
}

func parseOrigin(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("empty origin")
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if u.Host == "" {
		return nil, fmt.Errorf("origin %q has no host", raw)
	}
	return &url.URL{Scheme: u.Scheme, Host: u.Host}, nil
}

// State returns the current lifecycle state.
func (i *Interceptor) State() State {
	return State(i.state.Load())
}

// Origin returns the scheme and host requests are forwarded to.
func (i *Interceptor) Origin() *url.URL {
	u := *i.origin
	return &u
}

// StaticNamespace holds the precached shell, navigations and static assets.
func (i *Interceptor) StaticNamespace() string {
	return fmt.Sprintf("%s-static-%s", i.cfg.CachePrefix, i.cfg.CacheVersion)
}

// APINamespace holds responses of the cacheable API routes.
func (i *Interceptor) APINamespace() string {
	return fmt.Sprintf("%s-api-%s", i.cfg.CachePrefix, i.cfg.CacheVersion)
}

// MainNamespace is the generation's general-purpose namespace.
func (i *Interceptor) MainNamespace() string {
	return fmt.Sprintf("%s-%s", i.cfg.CachePrefix, i.cfg.CacheVersion)
}

// Namespaces returns the allow-list of the current generation.
func (i *Interceptor) Namespaces() []string {
	return []string{i.StaticNamespace(), i.APINamespace(), i.MainNamespace()}
}

// Install precaches the shell into the static namespace and moves the layer
// to waiting. A failing shell entry is logged and skipped. When skip-waiting
// is configured or was requested meanwhile, the layer is activated right away.
func (i *Interceptor) Install(ctx context.Context) error {
	i.lifecycle.Lock()
	if i.State() != StateInstalling {
		i.lifecycle.Unlock()
		return nil
	}

	cached := i.precache(ctx, i.StaticNamespace(), i.cfg.Shell, "")
	i.state.Store(int32(StateWaiting))
	i.lifecycle.Unlock()

	i.logger.Info().
		Str("func", "Interceptor.Install").
		Int("precached", cached).
		Int("shell", len(i.cfg.Shell)).
		Msg("interception layer installed")

	if i.cfg.SkipWaitingOnInstall || i.skipWaiting.Load() {
		return i.Activate(ctx)
	}
	return nil
}

// Activate deletes every cache namespace outside the current generation and
// moves the layer to active. Activating an installing layer is deferred until
// Install finishes.
func (i *Interceptor) Activate(ctx context.Context) error {
	i.lifecycle.Lock()
	defer i.lifecycle.Unlock()

	switch i.State() {
	case StateActive:
		return nil
	case StateInstalling:
		i.skipWaiting.Store(true)
		return nil
	}

	purged, err := i.purge(ctx)
	if err != nil {
		// a stale namespace only wastes space; interception still works
		i.logger.Warn().Err(err).
			Str("func", "Interceptor.Activate").
			Msg("failed to purge old cache namespaces")
	}

	i.state.Store(int32(StateActive))
	i.logger.Info().
		Str("func", "Interceptor.Activate").
		Strs("purged", purged).
		Msg("interception layer active")
	return nil
}

func (i *Interceptor) purge(ctx context.Context) ([]string, error) {
	namespaces, err := i.cache.Namespaces(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list cache namespaces: %w", err)
	}

	current := i.Namespaces()
	var purged []string
	for _, ns := range namespaces {
		if slices.Contains(current, ns) {
			continue
		}
		if err := i.cache.DeleteNamespace(ctx, ns); err != nil {
			return purged, err
		}
		purged = append(purged, ns)
	}
	return purged, nil
}

// precache fetches every url into namespace with bounded concurrency and
// returns how many were stored. Failures never abort the other fetches.
func (i *Interceptor) precache(ctx context.Context, namespace string, urls []string, token string) int {
	var stored atomic.Int32

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(i.cfg.FetchConcurrency)
	for _, raw := range urls {
		g.Go(func() error {
			if err := i.fetchInto(gctx, namespace, raw, token); err != nil {
				i.logger.Warn().Err(err).
					Str("func", "Interceptor.precache").
					Str("namespace", namespace).
					Str("url", raw).
					Msg("failed to precache")
				return nil
			}
			stored.Add(1)
			return nil
		})
	}
	_ = g.Wait()

	return int(stored.Load())
}

func (i *Interceptor) fetchInto(ctx context.Context, namespace, raw, token string) error {
	target, err := i.resolve(raw)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := i.next.RoundTrip(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	if !ok(resp.StatusCode) {
		_ = resp.Body.Close()
		return fmt.Errorf("%w: status %d", ErrFetchFailed, resp.StatusCode)
	}

	_, err = i.store(ctx, namespace, cacheKey(target), resp)
	return err
}

// resolve turns a relative shell or message URL into an absolute URL on the
// origin.
func (i *Interceptor) resolve(raw string) (*url.URL, error) {
	ref, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("invalid url %q: %w", raw, err)
	}
	return i.origin.ResolveReference(ref), nil
}
