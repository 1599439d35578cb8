package interceptor

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/edu-offline/internal/config"
	"github.com/MKhiriev/edu-offline/internal/logger"
	"github.com/MKhiriev/edu-offline/internal/store"
	"github.com/MKhiriev/edu-offline/models"
)

var errNoNetwork = errors.New("dial tcp: network is unreachable")

// switchTransport fails every round trip while offline is set.
type switchTransport struct {
	offline atomic.Bool
	calls   atomic.Int32
}

func (s *switchTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	s.calls.Add(1)
	if s.offline.Load() {
		return nil, errNoNetwork
	}
	return http.DefaultTransport.RoundTrip(req)
}

type testEnv struct {
	srv       *httptest.Server
	transport *switchTransport
	cache     store.ResponseCache
	layer     *Interceptor
}

func newTestEnv(t *testing.T, handler http.Handler, mutate func(cfg *config.ClientInterceptor)) *testEnv {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	storages, err := store.NewClientStorages(context.Background(), config.ClientStorage{
		DB: config.ClientDB{DSN: ":memory:"},
	}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = storages.Close() })

	cfg := config.ClientInterceptor{
		CachePrefix:          "smart-edu",
		CacheVersion:         "v2",
		CacheableRoutes:      config.DefaultCacheableRoutes(),
		Shell:                config.DefaultShell(),
		SkipWaitingOnInstall: true,
		FetchConcurrency:     2,
	}
	if mutate != nil {
		mutate(&cfg)
	}

	transport := &switchTransport{}
	layer, err := New(cfg, srv.URL, transport, storages.Local.Responses(), logger.Nop())
	require.NoError(t, err)

	return &testEnv{srv: srv, transport: transport, cache: storages.Local.Responses(), layer: layer}
}

func (e *testEnv) get(t *testing.T, path string, header map[string]string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, e.srv.URL+path, nil)
	require.NoError(t, err)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	resp, err := e.layer.RoundTrip(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func shellHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/manifest.json", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html>shell " + r.URL.Path + "</html>"))
	})
	return mux
}

func TestNew_InvalidOrigin(t *testing.T) {
	_, err := New(config.ClientInterceptor{}, "", nil, nil, logger.Nop())
	assert.ErrorIs(t, err, ErrInvalidOrigin)
}

func TestNamespaces(t *testing.T) {
	layer, err := New(config.ClientInterceptor{CachePrefix: "smart-edu", CacheVersion: "v2"}, "localhost:5000", nil, nil, logger.Nop())
	require.NoError(t, err)

	assert.Equal(t, []string{"smart-edu-static-v2", "smart-edu-api-v2", "smart-edu-v2"}, layer.Namespaces())
	assert.Equal(t, "http://localhost:5000", layer.Origin().String())
	assert.Equal(t, StateInstalling, layer.State())
	assert.Equal(t, "installing", layer.State().String())
}

func TestInstall_PrecachesShellIsolatingFailures(t *testing.T) {
	env := newTestEnv(t, shellHandler(), func(cfg *config.ClientInterceptor) {
		cfg.SkipWaitingOnInstall = false
	})
	ctx := context.Background()

	require.NoError(t, env.layer.Install(ctx))
	assert.Equal(t, StateWaiting, env.layer.State())

	for _, path := range []string{"/", "/index.html", "/favicon.ico"} {
		cached, err := env.cache.Match(ctx, "smart-edu-static-v2", env.srv.URL+path)
		require.NoError(t, err, path)
		assert.Equal(t, http.StatusOK, cached.Status)
	}

	_, err := env.cache.Match(ctx, "smart-edu-static-v2", env.srv.URL+"/manifest.json")
	assert.ErrorIs(t, err, store.ErrResponseNotCached)
}

func TestInstall_UnreachableShellStillInstalls(t *testing.T) {
	env := newTestEnv(t, shellHandler(), nil)
	env.transport.offline.Store(true)

	require.NoError(t, env.layer.Install(context.Background()))
	assert.Equal(t, StateActive, env.layer.State())
}

func TestActivate_PurgesOtherGenerations(t *testing.T) {
	env := newTestEnv(t, shellHandler(), func(cfg *config.ClientInterceptor) {
		cfg.SkipWaitingOnInstall = false
		cfg.Shell = nil
	})
	ctx := context.Background()

	for _, ns := range []string{"smart-edu-static-v1", "smart-edu-api-v1", "smart-edu-api-v2"} {
		require.NoError(t, env.cache.Put(ctx, models.CachedResponse{Namespace: ns, URL: "http://x/a", Status: 200}))
	}

	require.NoError(t, env.layer.Install(ctx))
	require.NoError(t, env.layer.Activate(ctx))
	assert.Equal(t, StateActive, env.layer.State())

	namespaces, err := env.cache.Namespaces(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"smart-edu-api-v2"}, namespaces)
}

func TestActivate_DuringInstallIsDeferred(t *testing.T) {
	env := newTestEnv(t, shellHandler(), func(cfg *config.ClientInterceptor) {
		cfg.SkipWaitingOnInstall = false
	})
	ctx := context.Background()

	res, err := env.layer.HandleMessage(ctx, Message{Type: MessageSkipWaiting})
	require.NoError(t, err)
	assert.Equal(t, "installing", res.State)

	require.NoError(t, env.layer.Install(ctx))
	assert.Equal(t, StateActive, env.layer.State())
}

func TestRoundTrip_PassThroughBeforeActive(t *testing.T) {
	var hits atomic.Int32
	env := newTestEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`{"course":{}}`))
	}), nil)

	resp := env.get(t, "/api/courses/c1", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	_, err := env.cache.MatchAny(context.Background(), env.srv.URL+"/api/courses/c1")
	assert.ErrorIs(t, err, store.ErrResponseNotCached)
	assert.Equal(t, int32(1), hits.Load())
}
