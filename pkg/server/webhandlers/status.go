package webhandlers

import (
	"net/http"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/gatefig/gatefig/pkg/models"
	"github.com/gatefig/gatefig/pkg/web"
)

type upstreamView struct {
	models.UpstreamStatus
	TotalRequests    uint64
	LastCheckedHuman string
	LastHealthyHuman string
}

func StatusHandler(appState *models.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const path = "/status"

		statuses := appState.UpstreamHealth.Statuses()
		views := make([]upstreamView, len(statuses))
		for i, s := range statuses {
			views[i] = upstreamView{
				UpstreamStatus:   s,
				TotalRequests:    s.Forwarded + s.Failed,
				LastCheckedHuman: humanizeTime(s.LastChecked),
				LastHealthyHuman: humanizeTime(s.LastHealthy),
			}
		}

		page := web.NewPage(
			"Upstream status",
			"Origins behind the gateway",
			path,
			sidebarVisibility(r),
			[]string{
				"templates/pages/status.html",
				"templates/components/content/*.html",
			},
			views,
		)

		page.Render(w, r)
	}
}

func humanizeTime(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return humanize.Time(t)
}
