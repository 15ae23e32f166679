package proxy

import (
	"context"
	"crypto/tls"
	"net/http"
	"sync"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/gatefig/gatefig/config"
	"github.com/gatefig/gatefig/internal"
	"github.com/gatefig/gatefig/pkg/models"
)

var _ models.UpstreamHealthMonitor = &Monitor{}

const ProbeRetryMax = 1

// Monitor probes the configured upstreams so the shell can tell a slow
// page from a dead backend. Probe results and the proxy's traffic
// counters together form the UpstreamStatus snapshots.
type Monitor struct {
	proxy    *Proxy
	interval time.Duration
	timeout  time.Duration
	clients  map[models.UpstreamID]*http.Client

	mu       sync.RWMutex
	statuses map[models.UpstreamID]models.UpstreamStatus
}

func NewMonitor(p *Proxy, cfg *config.Config) *Monitor {
	m := &Monitor{
		proxy:    p,
		interval: cfg.Proxy.ProbeInterval,
		timeout:  cfg.Proxy.ProbeTimeout,
		clients:  make(map[models.UpstreamID]*http.Client),
		statuses: make(map[models.UpstreamID]models.UpstreamStatus),
	}

	for id, u := range p.upstreams {
		m.clients[id] = newProbeClient(cfg.Proxy.ProbeTimeout, u.insecure)
		m.statuses[id] = models.UpstreamStatus{
			ID:     id,
			Origin: u.origin.String(),
		}
	}

	return m
}

// newProbeClient builds a retryable HTTP client for probing. Any HTTP
// answer counts as reachable, so only transport errors are retried.
func newProbeClient(timeout time.Duration, insecure bool) *http.Client {
	retryableHTTPClient := retryablehttp.NewClient()
	retryableHTTPClient.RetryMax = ProbeRetryMax
	retryableHTTPClient.HTTPClient.Timeout = timeout
	retryableHTTPClient.HTTPClient.Transport = &http.Transport{
		TLSClientConfig: &tls.Config{
			MinVersion:         tls.VersionTLS12,
			InsecureSkipVerify: insecure, //nolint:gosec
		},
	}
	retryableHTTPClient.Logger = internal.NewLeveledLogrus(log)
	retryableHTTPClient.Backoff = retryablehttp.DefaultBackoff
	retryableHTTPClient.CheckRetry = probeRetryPolicy

	return retryableHTTPClient.StandardClient()
}

func probeRetryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	// do not retry on context.Canceled or context.DeadlineExceeded
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	// Any response at all means the upstream is reachable.
	if resp != nil {
		return false, nil
	}

	return err != nil, nil
}

// Run probes on the configured interval until ctx is done. An initial
// check runs immediately so the status page is populated at startup.
func (m *Monitor) Run(ctx context.Context) {
	m.CheckNow(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("upstream health monitor stopped")
			return
		case <-ticker.C:
			m.CheckNow(ctx)
		}
	}
}

// CheckNow probes every configured upstream once, in parallel.
func (m *Monitor) CheckNow(ctx context.Context) {
	var wg sync.WaitGroup
	for id := range m.proxy.upstreams {
		wg.Add(1)
		go func(id models.UpstreamID) {
			defer wg.Done()
			m.probe(ctx, id)
		}(id)
	}
	wg.Wait()
}

func (m *Monitor) probe(ctx context.Context, id models.UpstreamID) {
	u := m.proxy.upstreams[id]

	probeCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(probeCtx, http.MethodGet, u.origin.String()+"/", nil)
	if err != nil {
		log.Errorf("building %s probe request: %v", id, err)
		return
	}

	resp, err := m.clients[id].Do(req)
	now := time.Now()

	m.mu.Lock()
	status := m.statuses[id]
	status.LastChecked = now
	if err != nil {
		status.Reachable = false
		status.LastError = err.Error()
		log.Warnf("%s upstream unreachable: %v", id, err)
	} else {
		_ = resp.Body.Close()
		status.Reachable = true
		status.LastHealthy = now
		status.LastError = ""
	}
	m.statuses[id] = status
	m.mu.Unlock()
}

// Statuses returns a snapshot per configured upstream, api first.
func (m *Monitor) Statuses() []models.UpstreamStatus {
	statuses := make([]models.UpstreamStatus, 0, len(m.statuses))
	for _, id := range []models.UpstreamID{models.UpstreamAPI, models.UpstreamLegacy} {
		if status, ok := m.Status(id); ok {
			statuses = append(statuses, status)
		}
	}
	return statuses
}

func (m *Monitor) Status(id models.UpstreamID) (models.UpstreamStatus, bool) {
	m.mu.RLock()
	status, ok := m.statuses[id]
	m.mu.RUnlock()
	if !ok {
		return models.UpstreamStatus{}, false
	}

	forwarded, failed, lastProxyError := m.proxy.upstreams[id].stats()
	status.Forwarded = forwarded
	status.Failed = failed
	if status.LastError == "" {
		status.LastError = lastProxyError
	}

	return status, true
}
