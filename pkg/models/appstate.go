package models

import (
	"github.com/gatefig/gatefig/config"
)

// AppState is a struct that holds the state of the application
// Use cmd.NewAppState to create a new instance
type AppState struct {
	SidebarRegistry SidebarStateRegistry
	UpstreamHealth  UpstreamHealthMonitor
	Reloader        ReloadNotifier
	Config          *config.Config
}
