package proxy

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/circuitbreaker"

	"github.com/gatefig/gatefig/config"
	"github.com/gatefig/gatefig/internal"
	"github.com/gatefig/gatefig/pkg/models"
)

var log = internal.GetLogger()

const (
	MaxIdleConns        = 100
	MaxIdleConnsPerHost = 20
	IdleConnTimeout     = 30 * time.Second
)

// Proxy forwards rule-matched requests to their upstream and hands
// everything else back to the local router.
type Proxy struct {
	table     *Table
	upstreams map[models.UpstreamID]*upstream
}

type upstream struct {
	id       models.UpstreamID
	origin   *url.URL
	insecure bool
	proxy    *httputil.ReverseProxy

	mu          sync.Mutex
	forwarded   uint64
	failed      uint64
	lastError   string
	lastErrorAt time.Time
}

// New builds the proxy from the configured upstream origins. An
// upstream with an empty origin is left unwired; its rules then fall
// through to the local handlers, which is how the built-in API stub
// takes over /api in dev.
func New(cfg *config.Config, table *Table) (*Proxy, error) {
	p := &Proxy{
		table:     table,
		upstreams: make(map[models.UpstreamID]*upstream),
	}

	for id, upstreamCfg := range map[models.UpstreamID]config.UpstreamConfig{
		models.UpstreamAPI:    cfg.Upstreams.API,
		models.UpstreamLegacy: cfg.Upstreams.Legacy,
	} {
		if upstreamCfg.Origin == "" {
			log.Infof("no %s origin configured, matching paths fall through to local handlers", id)
			continue
		}
		u, err := newUpstream(id, upstreamCfg, cfg.Proxy)
		if err != nil {
			return nil, err
		}
		p.upstreams[id] = u
	}

	return p, nil
}

func newUpstream(id models.UpstreamID, cfg config.UpstreamConfig, proxyCfg config.ProxyConfig) (*upstream, error) {
	origin, err := url.Parse(cfg.Origin)
	if err != nil {
		return nil, fmt.Errorf("invalid %s upstream origin: %w", id, err)
	}
	if origin.Scheme != "http" && origin.Scheme != "https" {
		return nil, fmt.Errorf("invalid %s upstream origin %q: scheme must be http or https", id, cfg.Origin)
	}

	u := &upstream{
		id:       id,
		origin:   origin,
		insecure: cfg.InsecureSkipVerify,
	}

	breaker := circuitbreaker.Builder[*http.Response]().
		HandleIf(func(_ *http.Response, err error) bool {
			// Client aborts are not upstream failures.
			return err != nil && !errors.Is(err, context.Canceled)
		}).
		WithFailureThreshold(proxyCfg.BreakerFailureThreshold).
		WithDelay(proxyCfg.BreakerCooldown).
		Build()

	transport := &breakerTransport{
		base: &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			MaxIdleConns:          MaxIdleConns,
			MaxIdleConnsPerHost:   MaxIdleConnsPerHost,
			IdleConnTimeout:       IdleConnTimeout,
			ResponseHeaderTimeout: cfg.Timeout,
			TLSClientConfig: &tls.Config{
				MinVersion:         tls.VersionTLS12,
				InsecureSkipVerify: cfg.InsecureSkipVerify, //nolint:gosec
			},
		},
		breaker: breaker,
	}

	proxy := httputil.NewSingleHostReverseProxy(origin)
	proxy.Transport = transport

	originalDirector := proxy.Director
	proxy.Director = func(req *http.Request) {
		inboundHost := req.Host
		originalDirector(req)
		req.Host = origin.Host

		req.Header.Set("X-Forwarded-Host", inboundHost)
		if req.Header.Get("X-Forwarded-Proto") == "" {
			proto := "http"
			if req.TLS != nil {
				proto = "https"
			}
			req.Header.Set("X-Forwarded-Proto", proto)
		}
	}

	proxy.ModifyResponse = func(resp *http.Response) error {
		u.recordForwarded()
		return nil
	}

	proxy.ErrorHandler = func(rw http.ResponseWriter, req *http.Request, err error) {
		u.recordFailure(err)

		if errors.Is(err, circuitbreaker.ErrOpen) {
			log.Warnf("%s upstream circuit open, short-circuiting %s %s", u.id, req.Method, req.URL.Path)
		} else {
			log.Errorf("%s upstream proxy error for %s %s: %v", u.id, req.Method, req.URL.Path, err)
		}

		writeDegraded(rw, req, u.id)
	}

	u.proxy = proxy

	return u, nil
}

type breakerTransport struct {
	base    http.RoundTripper
	breaker circuitbreaker.CircuitBreaker[*http.Response]
}

func (t *breakerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return failsafe.Get(func() (*http.Response, error) {
		return t.base.RoundTrip(req)
	}, t.breaker)
}

// Handler is the routing middleware: rule-matched paths are forwarded,
// the rest continue to next. Mounted ahead of the page routes so the
// strangled paths never reach the shell.
func (p *Proxy) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rule, ok := p.table.Resolve(r.URL.Path); ok {
			if u, wired := p.upstreams[rule.Upstream]; wired {
				u.proxy.ServeHTTP(w, r)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// Table returns the active rule table.
func (p *Proxy) Table() *Table {
	return p.table
}

func (u *upstream) recordForwarded() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.forwarded++
}

func (u *upstream) recordFailure(err error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.failed++
	u.lastError = err.Error()
	u.lastErrorAt = time.Now()
}

func (u *upstream) stats() (forwarded, failed uint64, lastError string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.forwarded, u.failed, u.lastError
}

const degradedJSONBody = `{"error":"bad_gateway","message":"upstream service is unreachable"}`

// The data-gatefig-degraded attribute lets the shell detect a degraded
// page inside an embedded frame.
const degradedHTMLBody = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>Service Unavailable</title></head>
<body data-gatefig-degraded>
<h1>Service temporarily unavailable</h1>
<p>The %s service did not respond. Please try again shortly.</p>
</body>
</html>`

// writeDegraded serves the 502 degraded response: JSON for API-shaped
// requests, a small HTML notice for everything else.
func writeDegraded(rw http.ResponseWriter, req *http.Request, id models.UpstreamID) {
	if wantsJSON(req) {
		rw.Header().Set("Content-Type", "application/json")
		rw.WriteHeader(http.StatusBadGateway)
		_, _ = rw.Write([]byte(degradedJSONBody))
		return
	}

	rw.Header().Set("Content-Type", "text/html; charset=utf-8")
	rw.WriteHeader(http.StatusBadGateway)
	_, _ = fmt.Fprintf(rw, degradedHTMLBody, id)
}

func wantsJSON(req *http.Request) bool {
	if matchesPrefix(req.URL.Path, "/api") {
		return true
	}
	return strings.Contains(req.Header.Get("Accept"), "application/json")
}
