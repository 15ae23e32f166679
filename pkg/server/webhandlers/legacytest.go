package webhandlers

import (
	"fmt"
	"net/http"

	"github.com/gatefig/gatefig/pkg/models"
	"github.com/gatefig/gatefig/pkg/web"
)

// LegacyLoginPath is the first legacy screen hosted inside the shell.
const LegacyLoginPath = "/login.do"

func LegacyTestHandler(appState *models.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const path = "/legacy-test"

		frame := web.Embed{
			SourcePath: LegacyLoginPath,
			Title:      "Legacy login",
		}
		if status, ok := appState.UpstreamHealth.Status(models.UpstreamLegacy); ok && !status.Reachable {
			frame.Degraded = true
			frame.Note = fmt.Sprintf(
				"The legacy application at %s is not responding. The embedded screen will load once it is back.",
				status.Origin,
			)
		}

		page := web.NewPage(
			"Legacy test",
			"Embedded legacy screen",
			path,
			sidebarVisibility(r),
			[]string{
				"templates/pages/legacytest.html",
				"templates/components/content/*.html",
			},
			frame,
		)

		page.Render(w, r)
	}
}
