package webhandlers

import "net/http"

// The sidebar endpoints return 204 for shell-driven requests: the state
// change reaches every subscribed tab over /ui/updates. Plain form
// posts get a redirect back instead.

func SidebarToggleHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sidebarStore(r).Toggle()
		respondSidebar(w, r)
	}
}

func SidebarOpenHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sidebarStore(r).Open()
		respondSidebar(w, r)
	}
}

func SidebarCloseHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sidebarStore(r).Close()
		respondSidebar(w, r)
	}
}

func respondSidebar(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("HX-Request") == "true" {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	target := r.Referer()
	if target == "" {
		target = "/"
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
