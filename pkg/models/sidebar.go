package models

import "time"

// SidebarVisibility is the collapsed/expanded state of the shell sidebar.
// It is always one of the two defined values; a store is never created
// without one.
type SidebarVisibility string

const (
	SidebarOpen   SidebarVisibility = "open"
	SidebarClosed SidebarVisibility = "closed"
)

// Flip returns the other visibility value.
func (v SidebarVisibility) Flip() SidebarVisibility {
	if v == SidebarOpen {
		return SidebarClosed
	}
	return SidebarOpen
}

// SidebarStore holds one session's sidebar visibility and notifies
// subscribers synchronously when it changes.
type SidebarStore interface {
	Visibility() SidebarVisibility
	// Open and Close are idempotent and do not notify when the value
	// is unchanged. Toggle always changes the value.
	Open()
	Close()
	Toggle()
	// Subscribe registers fn to run, in subscription order, on every
	// change. The returned func removes the subscription.
	Subscribe(fn func(SidebarVisibility)) (unsubscribe func())
}

// SidebarStateRegistry hands out per-session stores. Stores are created
// open on first acquisition and are in-memory only: a restart or an
// expired session starts over open.
type SidebarStateRegistry interface {
	Acquire(sessionID string) SidebarStore
	Len() int
	// PurgeIdle drops stores untouched for longer than ttl and reports
	// how many were dropped.
	PurgeIdle(ttl time.Duration) int
}
