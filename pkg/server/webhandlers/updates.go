package webhandlers

import (
	"fmt"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/gatefig/gatefig/pkg/models"
)

// UpdatesHandler streams server-pushed scripts to the shell: sidebar
// changes made in any tab of the session and, in dev mode, reload
// signals from the template watcher.
func UpdatesHandler(appState *models.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Subscriber callbacks run on the mutating request's goroutine;
		// hand changes to this goroutine so all SSE writes come from one
		// place. Sends never block the mutating request. Subscriptions
		// are live before the stream headers go out.
		changes := make(chan models.SidebarVisibility, 8)
		unsubscribe := sidebarStore(r).Subscribe(func(v models.SidebarVisibility) {
			select {
			case changes <- v:
			default:
			}
		})
		defer unsubscribe()

		reload := appState.Reloader.Subscribe()
		defer appState.Reloader.Unsubscribe(reload)

		sse := datastar.NewSSE(w, r)

		for {
			select {
			case <-r.Context().Done():
				return
			case v := <-changes:
				script := fmt.Sprintf("window.gatefigShell.applySidebar(%q)", v)
				if err := sse.ExecuteScript(script); err != nil {
					return
				}
			case <-reload:
				if err := sse.ExecuteScript("window.location.reload()"); err != nil {
					return
				}
			}
		}
	}
}
