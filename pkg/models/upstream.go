package models

import (
	"context"
	"time"
)

// UpstreamID names one of the two origins the gateway fronts.
type UpstreamID string

const (
	UpstreamAPI    UpstreamID = "api"
	UpstreamLegacy UpstreamID = "legacy"
)

// UpstreamStatus is a point-in-time snapshot of one upstream's health
// and traffic counters.
type UpstreamStatus struct {
	ID          UpstreamID `json:"id"`
	Origin      string     `json:"origin"`
	Reachable   bool       `json:"reachable"`
	LastChecked time.Time  `json:"last_checked"`
	LastHealthy time.Time  `json:"last_healthy"`
	LastError   string     `json:"last_error,omitempty"`
	Forwarded   uint64     `json:"forwarded"`
	Failed      uint64     `json:"failed"`
}

// UpstreamHealthMonitor reports reachability of the configured
// upstreams. Statuses never blocks on the network; CheckNow does.
type UpstreamHealthMonitor interface {
	Statuses() []UpstreamStatus
	Status(id UpstreamID) (UpstreamStatus, bool)
	CheckNow(ctx context.Context)
}

// ReloadNotifier fans a change signal out to subscribed browser
// connections. Broadcast never blocks on a slow subscriber.
type ReloadNotifier interface {
	Subscribe() chan struct{}
	Unsubscribe(ch chan struct{})
	Broadcast()
}
