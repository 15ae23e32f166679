package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/gatefig/gatefig/config"
	"github.com/gatefig/gatefig/pkg/devwatch"
	"github.com/gatefig/gatefig/pkg/models"
	"github.com/gatefig/gatefig/pkg/proxy"
	"github.com/gatefig/gatefig/pkg/server"
	"github.com/gatefig/gatefig/pkg/sidebar"
	"github.com/gatefig/gatefig/pkg/web"
)

const ShutdownTimeout = 5 * time.Second

// run is the entrypoint for the gatefig gateway
func run() {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		log.Fatalf("Error configuring gatefig: %s", err)
	}

	handleCLIOptions(cfg)

	log.Infof("Starting gatefig gateway version %s", config.VersionString)

	config.ConfigureLogging(cfg)

	forwarder, err := proxy.New(cfg, proxy.NewTable(proxy.DefaultRules()))
	if err != nil {
		log.Fatalf("Error building forwarder: %s", err)
	}

	monitor := proxy.NewMonitor(forwarder, cfg)
	appState := NewAppState(cfg, monitor)

	var devDir string
	if cfg.UI.Dev {
		if dir, ok := web.SourceDir(); ok {
			devDir = dir
			web.UseDevFS(dir)
			log.Infof("dev mode: serving templates and assets from %s", dir)
		} else {
			log.Warn("dev mode requested but the source directory was not found")
		}
	}

	srv := server.Create(appState, forwarder)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		log.Infof("Listening on: %s", srv.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	group.Go(func() error {
		monitor.Run(groupCtx)
		return nil
	})

	group.Go(func() error {
		purgeLoop(groupCtx, appState)
		return nil
	})

	if devDir != "" {
		group.Go(func() error {
			return devwatch.Watch(groupCtx, devDir, appState.Reloader)
		})
	}

	if err := group.Wait(); err != nil {
		log.Fatal(err)
	}
	log.Info("gatefig stopped")
}

// NewAppState creates an AppState struct from the config file / ENV and
// wires the per-session sidebar registry and reload notifier to it
func NewAppState(cfg *config.Config, monitor models.UpstreamHealthMonitor) *models.AppState {
	return &models.AppState{
		SidebarRegistry: sidebar.NewRegistry(),
		UpstreamHealth:  monitor,
		Reloader:        devwatch.NewNotifier(),
		Config:          cfg,
	}
}

// handleCLIOptions handles CLI options that don't require the server to run
func handleCLIOptions(cfg *config.Config) {
	if showVersion {
		fmt.Println(config.VersionString)
		os.Exit(0)
	}
	if dumpConfig {
		out, err := yaml.Marshal(cfg)
		if err != nil {
			log.Fatalf("Error dumping config: %s", err)
		}
		fmt.Println(string(out))
		os.Exit(0)
	}
}

// purgeLoop drops sidebar state for sessions idle longer than the
// session TTL. A TTL of 0 disables expiry.
func purgeLoop(ctx context.Context, appState *models.AppState) {
	ttl := appState.Config.UI.SessionTTL
	if ttl == 0 {
		log.Debug("session purge processor disabled")
		return
	}

	log.Infof("Starting session purge processor. Purging every %v", ttl)
	ticker := time.NewTicker(ttl)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Info("Stopping session purge processor")
			return
		case <-ticker.C:
			if purged := appState.SidebarRegistry.PurgeIdle(ttl); purged > 0 {
				log.Infof("purged %d idle sidebar sessions", purged)
			}
		}
	}
}
