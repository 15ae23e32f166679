package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatefig/gatefig/pkg/models"
)

func TestPageRenderFullLegacyTest(t *testing.T) {
	page := NewPage(
		"Legacy test",
		"Embedded legacy screen",
		"/legacy-test",
		models.SidebarOpen,
		[]string{
			"templates/pages/legacytest.html",
			"templates/components/content/degraded.html",
		},
		Embed{SourcePath: "/login.do", Title: "Legacy login"},
	)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/legacy-test", nil)
	page.Render(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()

	assert.Contains(t, body, `<html lang="en">`)
	assert.Contains(t, body, `src="/login.do"`)
	assert.Contains(
		t,
		body,
		`sandbox="allow-same-origin allow-scripts allow-forms allow-popups"`,
	)
	assert.Contains(t, body, `loading="lazy"`)
	assert.Equal(t, "/legacy-test", w.Header().Get("HX-Push"))
}

func TestPageRenderFullGeometry(t *testing.T) {
	page := NewPage(
		"Dashboard",
		"Migration overview",
		"/",
		models.SidebarOpen,
		[]string{"templates/pages/dashboard.html"},
		[]models.UpstreamStatus{},
	)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	page.Render(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()

	assert.Contains(t, body, "--header-height: 64px")
	assert.Contains(t, body, "--sidebar-width-open: 200px")
	assert.Contains(t, body, "--sidebar-width-closed: 64px")
	assert.Contains(t, body, `class="sidebar-open"`)
}

func TestPageRenderFullSidebarClosed(t *testing.T) {
	page := NewPage(
		"Dashboard",
		"Migration overview",
		"/",
		models.SidebarClosed,
		[]string{"templates/pages/dashboard.html"},
		[]models.UpstreamStatus{},
	)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	page.Render(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `class="sidebar-closed"`)
}

func TestPageRenderPartial(t *testing.T) {
	page := NewPage(
		"Dashboard",
		"Migration overview",
		"/",
		models.SidebarOpen,
		[]string{"templates/pages/dashboard.html"},
		[]models.UpstreamStatus{
			{ID: models.UpstreamLegacy, Reachable: true},
		},
	)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("HX-Request", "true")
	page.Render(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()

	assert.NotContains(t, body, "<html", "partial render must not include the layout")
	assert.Contains(t, body, "page-dashboard")
	assert.Contains(t, body, "legacy: reachable")
	assert.Equal(t, "/", w.Header().Get("HX-Push"))
}

func TestPageRenderMenu(t *testing.T) {
	page := NewPage(
		"Dashboard",
		"",
		"/",
		models.SidebarOpen,
		[]string{"templates/pages/dashboard.html"},
		[]models.UpstreamStatus{},
	)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	page.Render(w, r)

	body := w.Body.String()
	for _, item := range MenuItems() {
		assert.Contains(t, body, `href="`+item.Path+`"`)
		assert.Contains(t, body, item.Label)
	}
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "legacytest", slugify("Legacy test"))
	assert.Equal(t, "upstreamstatus", slugify("Upstream status"))
}
