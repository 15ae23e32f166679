package server

import (
	"fmt"
	"net/http"
	"time"

	httpLogger "github.com/chi-middleware/logrus-logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/gatefig/gatefig/internal"
	"github.com/gatefig/gatefig/pkg/apistub"
	"github.com/gatefig/gatefig/pkg/models"
	"github.com/gatefig/gatefig/pkg/proxy"
	"github.com/gatefig/gatefig/pkg/server/webhandlers"
	"github.com/gatefig/gatefig/pkg/web"
)

var log = internal.GetLogger()

const ReadHeaderTimeout = 5 * time.Second

// PageRoute binds one shell path to its page handler.
type PageRoute struct {
	Path    string
	Title   string
	Handler func(appState *models.AppState) http.HandlerFunc
}

// PageRoutes lists every page the shell serves itself. A path that is
// neither listed here nor matched by a forwarding rule is a 404.
var PageRoutes = []PageRoute{
	{Path: "/", Title: "Dashboard", Handler: webhandlers.DashboardHandler},
	{Path: "/legacy-test", Title: "Legacy test", Handler: webhandlers.LegacyTestHandler},
	{Path: "/status", Title: "Upstream status", Handler: webhandlers.StatusHandler},
	{Path: "/settings", Title: "Settings", Handler: webhandlers.SettingsHandler},
}

// Create creates a new HTTP server with the given app state
func Create(appState *models.AppState, forwarder *proxy.Proxy) *http.Server {
	router := setupRouter(appState, forwarder)
	return &http.Server{
		Addr: fmt.Sprintf(
			"%s:%d",
			appState.Config.Server.Host,
			appState.Config.Server.Port,
		),
		Handler:           router,
		ReadHeaderTimeout: ReadHeaderTimeout,
	}
}

func setupRouter(appState *models.AppState, forwarder *proxy.Proxy) *chi.Mux {
	router := chi.NewRouter()
	router.Use(httpLogger.Logger("router", log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(SendVersion)
	router.Use(middleware.Heartbeat("/healthz"))
	if len(appState.Config.Server.CustomHeaders) > 0 {
		router.Use(ApplyCustomHeaders(appState.Config.Server.CustomHeaders))
	}

	// Forwarding runs before routing so rule-matched paths never reach
	// the shell handlers.
	router.Use(forwarder.Handler)

	router.Handle("/static/*", http.FileServer(http.FS(web.StaticFS)))

	cookies := webhandlers.NewCookieStore(appState.Config)
	router.Group(func(r chi.Router) {
		r.Use(webhandlers.SidebarSession(appState, cookies))
		for _, route := range PageRoutes {
			r.Get(route.Path, route.Handler(appState))
		}
		r.Route("/ui", func(r chi.Router) {
			r.Post("/sidebar/toggle", webhandlers.SidebarToggleHandler())
			r.Post("/sidebar/open", webhandlers.SidebarOpenHandler())
			r.Post("/sidebar/close", webhandlers.SidebarCloseHandler())
			r.Get("/updates", webhandlers.UpdatesHandler(appState))
		})
	})

	if appState.Config.Upstreams.API.Origin == "" {
		log.Info("no api origin configured, serving the built-in api stub")
		apistub.RegisterRoutes(router)
	}

	router.NotFound(webhandlers.NotFoundHandler())

	return router
}
