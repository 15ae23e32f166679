package proxy

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatefig/gatefig/config"
	"github.com/gatefig/gatefig/pkg/models"
)

func newTestConfig(apiOrigin, legacyOrigin string) *config.Config {
	return &config.Config{
		Upstreams: config.UpstreamsConfig{
			API: config.UpstreamConfig{
				Origin:  apiOrigin,
				Timeout: 2 * time.Second,
			},
			Legacy: config.UpstreamConfig{
				Origin:  legacyOrigin,
				Timeout: 2 * time.Second,
			},
		},
		Proxy: config.ProxyConfig{
			BreakerFailureThreshold: 3,
			BreakerCooldown:         time.Minute,
			ProbeInterval:           time.Minute,
			ProbeTimeout:            time.Second,
		},
	}
}

func localShell() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("shell:" + r.URL.Path))
	})
}

func TestProxyForwardsLegacyPaths(t *testing.T) {
	type captured struct {
		path   string
		query  string
		host   string
		header http.Header
	}
	got := make(chan captured, 1)

	legacy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got <- captured{
			path:   r.URL.Path,
			query:  r.URL.RawQuery,
			host:   r.Host,
			header: r.Header.Clone(),
		}
		w.Header().Set("X-Legacy-Marker", "tms")
		_, _ = w.Write([]byte("legacy screen"))
	}))
	defer legacy.Close()

	p, err := New(newTestConfig("", legacy.URL), NewTable(DefaultRules()))
	require.NoError(t, err)

	gateway := httptest.NewServer(p.Handler(localShell()))
	defer gateway.Close()

	res, err := http.Get(gateway.URL + "/login.do?next=%2Fdashboard")
	require.NoError(t, err)
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "legacy screen", string(body))
	assert.Equal(t, "tms", res.Header.Get("X-Legacy-Marker"))

	select {
	case c := <-got:
		assert.Equal(t, "/login.do", c.path)
		assert.Equal(t, "next=%2Fdashboard", c.query)
		assert.Equal(t, strings.TrimPrefix(legacy.URL, "http://"), c.host, "Host must be rewritten to the upstream")
		assert.Equal(t, strings.TrimPrefix(gateway.URL, "http://"), c.header.Get("X-Forwarded-Host"))
		assert.Equal(t, "http", c.header.Get("X-Forwarded-Proto"))
	case <-time.After(2 * time.Second):
		t.Fatal("legacy upstream never saw the request")
	}
}

func TestProxyForwardsAPIPaths(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"from":"new-service"}`))
	}))
	defer api.Close()

	p, err := New(newTestConfig(api.URL, "http://localhost:1"), NewTable(DefaultRules()))
	require.NoError(t, err)

	gateway := httptest.NewServer(p.Handler(localShell()))
	defer gateway.Close()

	res, err := http.Get(gateway.URL + "/api/anything")
	require.NoError(t, err)
	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.JSONEq(t, `{"from":"new-service"}`, string(body))
}

func TestProxyPassThrough(t *testing.T) {
	p, err := New(newTestConfig("", "http://localhost:1"), NewTable(DefaultRules()))
	require.NoError(t, err)

	gateway := httptest.NewServer(p.Handler(localShell()))
	defer gateway.Close()

	t.Run("unmapped paths reach the shell", func(t *testing.T) {
		res, err := http.Get(gateway.URL + "/unmapped/path")
		require.NoError(t, err)
		defer res.Body.Close()

		body, _ := io.ReadAll(res.Body)
		assert.Equal(t, "shell:/unmapped/path", string(body))
	})

	t.Run("api paths fall through when no origin is configured", func(t *testing.T) {
		res, err := http.Get(gateway.URL + "/api/auth/login")
		require.NoError(t, err)
		defer res.Body.Close()

		body, _ := io.ReadAll(res.Body)
		assert.Equal(t, "shell:/api/auth/login", string(body))
	})
}

func TestProxyErrorHandler(t *testing.T) {
	// 127.0.0.1:1 is non-routable, so every forward fails fast.
	p, err := New(newTestConfig("http://127.0.0.1:1", "http://127.0.0.1:1"), NewTable(DefaultRules()))
	require.NoError(t, err)

	gateway := httptest.NewServer(p.Handler(localShell()))
	defer gateway.Close()

	t.Run("api failure serves degraded json", func(t *testing.T) {
		res, err := http.Get(gateway.URL + "/api/users")
		require.NoError(t, err)
		defer res.Body.Close()

		body, _ := io.ReadAll(res.Body)
		assert.Equal(t, http.StatusBadGateway, res.StatusCode)
		assert.Equal(t, "application/json", res.Header.Get("Content-Type"))
		assert.JSONEq(t, degradedJSONBody, string(body))
	})

	t.Run("legacy failure serves degraded html", func(t *testing.T) {
		res, err := http.Get(gateway.URL + "/login.do")
		require.NoError(t, err)
		defer res.Body.Close()

		body, _ := io.ReadAll(res.Body)
		assert.Equal(t, http.StatusBadGateway, res.StatusCode)
		assert.Contains(t, res.Header.Get("Content-Type"), "text/html")
		assert.Contains(t, string(body), "temporarily unavailable")
	})
}

func TestProxyCircuitBreaker(t *testing.T) {
	cfg := newTestConfig("", "http://127.0.0.1:1")
	cfg.Proxy.BreakerFailureThreshold = 2

	p, err := New(cfg, NewTable(DefaultRules()))
	require.NoError(t, err)

	gateway := httptest.NewServer(p.Handler(localShell()))
	defer gateway.Close()

	for i := 0; i < 4; i++ {
		res, err := http.Get(gateway.URL + "/login.do")
		require.NoError(t, err)
		res.Body.Close()
		assert.Equal(t, http.StatusBadGateway, res.StatusCode)
	}

	_, failed, lastError := p.upstreams[models.UpstreamLegacy].stats()
	assert.Equal(t, uint64(4), failed)
	assert.NotEmpty(t, lastError)
}

func TestNewRejectsBadOrigin(t *testing.T) {
	cfg := newTestConfig("", "ftp://example.com")
	_, err := New(cfg, NewTable(DefaultRules()))
	assert.Error(t, err)
}
