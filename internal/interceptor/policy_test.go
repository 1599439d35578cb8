package interceptor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/edu-offline/internal/config"
	"github.com/MKhiriev/edu-offline/internal/store"
)

func newActiveEnv(t *testing.T, handler http.Handler) *testEnv {
	t.Helper()
	env := newTestEnv(t, handler, func(cfg *config.ClientInterceptor) { cfg.Shell = nil })
	require.NoError(t, env.layer.Install(context.Background()))
	require.Equal(t, StateActive, env.layer.State())
	return env
}

func apiHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/api/courses/broken":
			w.WriteHeader(http.StatusInternalServerError)
		case strings.HasPrefix(r.URL.Path, "/api/"):
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"path":"` + r.URL.Path + `"}`))
		default:
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html>" + r.URL.Path + "</html>"))
		}
	})
}

func TestNetworkFirstAPI_FallsBackToCache(t *testing.T) {
	env := newActiveEnv(t, apiHandler())

	online := env.get(t, "/api/courses/c1", nil)
	assert.Equal(t, http.StatusOK, online.StatusCode)
	assert.Empty(t, online.Header.Get(CacheFallbackHeader))
	assert.JSONEq(t, `{"path":"/api/courses/c1"}`, readBody(t, online))

	cached, err := env.cache.Match(context.Background(), "smart-edu-api-v2", env.srv.URL+"/api/courses/c1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"path":"/api/courses/c1"}`, string(cached.Body))

	env.transport.offline.Store(true)

	offline := env.get(t, "/api/courses/c1", nil)
	assert.Equal(t, http.StatusOK, offline.StatusCode)
	assert.Empty(t, offline.Header.Get(OfflineHeader))
	assert.Equal(t, "true", offline.Header.Get(CacheFallbackHeader))
	assert.JSONEq(t, `{"path":"/api/courses/c1"}`, readBody(t, offline))
}

func TestNetworkFirstAPI_OfflinePayloadWhenUncached(t *testing.T) {
	env := newActiveEnv(t, apiHandler())
	env.transport.offline.Store(true)

	resp := env.get(t, "/api/progress/course/c1", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "true", resp.Header.Get(OfflineHeader))
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.JSONEq(t, `{"offline":true,"message":"You are offline. Showing cached data."}`, readBody(t, resp))
}

func TestNetworkFirstAPI_ErrorStatusNotCached(t *testing.T) {
	env := newActiveEnv(t, apiHandler())

	resp := env.get(t, "/api/courses/broken", nil)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	_, err := env.cache.MatchAny(context.Background(), env.srv.URL+"/api/courses/broken")
	assert.ErrorIs(t, err, store.ErrResponseNotCached)
}

func TestRoundTrip_QueryIsPartOfKey(t *testing.T) {
	env := newActiveEnv(t, apiHandler())

	_ = readBody(t, env.get(t, "/api/revisions?status=pending", nil))
	env.transport.offline.Store(true)

	resp := env.get(t, "/api/revisions?status=done", nil)
	assert.Equal(t, "true", resp.Header.Get(OfflineHeader))

	resp = env.get(t, "/api/revisions?status=pending", nil)
	assert.Empty(t, resp.Header.Get(OfflineHeader))
}

func TestNavigate_ShellFallback(t *testing.T) {
	env := newActiveEnv(t, apiHandler())
	nav := map[string]string{"Accept": "text/html,application/xhtml+xml", "Sec-Fetch-Mode": "navigate"}

	resp := env.get(t, "/courses/c1", nav)
	assert.Equal(t, "<html>/courses/c1</html>", readBody(t, resp))

	env.transport.offline.Store(true)

	exact := env.get(t, "/courses/c1", nav)
	assert.Equal(t, "<html>/courses/c1</html>", readBody(t, exact))

	other := env.get(t, "/materials/m9", nav)
	assert.Equal(t, http.StatusOK, other.StatusCode)
	assert.Equal(t, "true", other.Header.Get(CacheFallbackHeader))
	assert.Equal(t, "<html>/courses/c1</html>", readBody(t, other))
}

func TestNavigate_OfflineHTMLWithoutShell(t *testing.T) {
	env := newActiveEnv(t, apiHandler())
	env.transport.offline.Store(true)

	resp := env.get(t, "/dashboard", map[string]string{"Accept": "text/html"})

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, readBody(t, resp), "You are offline")
}

func TestCacheFirstStatic(t *testing.T) {
	var hits atomic.Int32
	env := newActiveEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/javascript")
		_, _ = w.Write([]byte("console.log(1)"))
	}))

	first := env.get(t, "/static/js/main.js", nil)
	assert.Equal(t, "console.log(1)", readBody(t, first))

	second := env.get(t, "/static/js/main.js", nil)
	assert.Empty(t, second.Header.Get(CacheFallbackHeader))
	assert.Equal(t, "console.log(1)", readBody(t, second))
	assert.Equal(t, int32(1), hits.Load())

	env.transport.offline.Store(true)
	missing := env.get(t, "/static/js/chunk.js", nil)
	assert.Equal(t, http.StatusServiceUnavailable, missing.StatusCode)
	assert.Equal(t, "Offline", readBody(t, missing))
}

func TestRoundTrip_NonGetPassesThrough(t *testing.T) {
	env := newActiveEnv(t, apiHandler())

	req, err := http.NewRequest(http.MethodPut, env.srv.URL+"/api/progress/t1", strings.NewReader(`{}`))
	require.NoError(t, err)
	resp, err := env.layer.RoundTrip(req)
	require.NoError(t, err)
	_ = resp.Body.Close()

	_, err = env.cache.MatchAny(context.Background(), env.srv.URL+"/api/progress/t1")
	assert.ErrorIs(t, err, store.ErrResponseNotCached)

	env.transport.offline.Store(true)
	req, err = http.NewRequest(http.MethodPut, env.srv.URL+"/api/progress/t1", strings.NewReader(`{}`))
	require.NoError(t, err)
	_, err = env.layer.RoundTrip(req)
	assert.ErrorIs(t, err, errNoNetwork)
}

func TestRoundTrip_UncacheableAPIIsNetworkOnly(t *testing.T) {
	env := newActiveEnv(t, apiHandler())

	_ = readBody(t, env.get(t, "/api/health", nil))
	_, err := env.cache.MatchAny(context.Background(), env.srv.URL+"/api/health")
	assert.ErrorIs(t, err, store.ErrResponseNotCached)

	env.transport.offline.Store(true)
	req, err := http.NewRequest(http.MethodGet, env.srv.URL+"/api/health", nil)
	require.NoError(t, err)
	_, err = env.layer.RoundTrip(req)
	assert.ErrorIs(t, err, errNoNetwork)
}

func TestHandleMessage_CacheURLs(t *testing.T) {
	env := newActiveEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.URL.Path == "/api/materials/missing" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	ctx := context.Background()

	res, err := env.layer.HandleMessage(ctx, Message{
		Type:  MessageCacheURLs,
		URLs:  []string{"/api/courses/c1", env.srv.URL + "/api/courses/c1/topics", "/api/materials/missing"},
		Token: "tok",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Cached)
	assert.Equal(t, 1, res.Failed)

	cached, err := env.cache.Match(ctx, "smart-edu-api-v2", env.srv.URL+"/api/courses/c1/topics")
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(cached.Body))
}

func TestHandleMessage_Unknown(t *testing.T) {
	env := newActiveEnv(t, apiHandler())

	_, err := env.layer.HandleMessage(context.Background(), Message{Type: "CLAIM"})
	assert.ErrorIs(t, err, ErrUnknownMessage)
}

func TestProxy_ServesThroughLayer(t *testing.T) {
	env := newActiveEnv(t, apiHandler())
	proxy := httptest.NewServer(env.layer.Proxy())
	defer proxy.Close()

	resp, err := http.Get(proxy.URL + "/api/courses/c7")
	require.NoError(t, err)
	assert.JSONEq(t, `{"path":"/api/courses/c7"}`, readBody(t, resp))
	_ = resp.Body.Close()

	env.transport.offline.Store(true)

	resp, err = http.Get(proxy.URL + "/api/courses/c7")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"path":"/api/courses/c7"}`, readBody(t, resp))
}
