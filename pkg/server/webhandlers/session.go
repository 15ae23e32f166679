package webhandlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/gatefig/gatefig/config"
	"github.com/gatefig/gatefig/pkg/models"
	"github.com/gatefig/gatefig/pkg/sidebar"
)

const (
	sessionCookieName = "gatefig_session"
	sessionIDKey      = "sid"
)

type contextKey string

const sidebarStoreContextKey contextKey = "sidebarStore"

// NewCookieStore builds the cookie store that identifies a browser
// session. The cookie has no Max-Age: shell state lives exactly as long
// as the browser session.
func NewCookieStore(cfg *config.Config) *sessions.CookieStore {
	secret := cfg.UI.SessionSecret
	if secret == "" {
		secret = uuid.New().String()
		log.Info("ui.session_secret not set, sessions will reset on restart")
	}
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	store.MaxAge(0)
	return store
}

// SidebarSession attaches the session's sidebar store to the request
// context, minting the session on first sight.
func SidebarSession(
	appState *models.AppState,
	cookies *sessions.CookieStore,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := cookies.Get(r, sessionCookieName)
			if err != nil {
				log.Warnf("invalid session cookie, resetting: %s", err)
			}

			sid, ok := session.Values[sessionIDKey].(string)
			if !ok || sid == "" {
				sid = uuid.New().String()
				session.Values[sessionIDKey] = sid
				if err := session.Save(r, w); err != nil {
					log.Errorf("failed to save session cookie: %s", err)
				}
			}

			store := appState.SidebarRegistry.Acquire(sid)
			ctx := context.WithValue(r.Context(), sidebarStoreContextKey, store)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func sidebarStore(r *http.Request) models.SidebarStore {
	if store, ok := r.Context().Value(sidebarStoreContextKey).(models.SidebarStore); ok {
		return store
	}
	log.Warn("request without a sidebar session, using a detached store")
	return sidebar.NewStore(models.SidebarOpen)
}

func sidebarVisibility(r *http.Request) models.SidebarVisibility {
	return sidebarStore(r).Visibility()
}
