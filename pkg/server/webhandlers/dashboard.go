package webhandlers

import (
	"net/http"

	"github.com/gatefig/gatefig/pkg/models"
	"github.com/gatefig/gatefig/pkg/web"
)

func DashboardHandler(appState *models.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const path = "/"

		page := web.NewPage(
			"Dashboard",
			"Migration overview",
			path,
			sidebarVisibility(r),
			[]string{
				"templates/pages/dashboard.html",
				"templates/components/content/*.html",
			},
			appState.UpstreamHealth.Statuses(),
		)

		page.Render(w, r)
	}
}
