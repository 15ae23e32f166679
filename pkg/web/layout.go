package web

import "github.com/gatefig/gatefig/pkg/models"

// Shell geometry in CSS pixels. The layout template inlines these as CSS
// custom properties so the stylesheet and the Go code can never disagree.
const (
	HeaderHeight = 64

	SidebarWidthOpen   = 200
	SidebarWidthClosed = 64
)

// SidebarWidth returns the sidebar width for the given visibility.
func SidebarWidth(v models.SidebarVisibility) int {
	if v == models.SidebarClosed {
		return SidebarWidthClosed
	}
	return SidebarWidthOpen
}

// ContentInset returns the left offset of the content area. The content
// starts exactly where the sidebar ends, in both states.
func ContentInset(v models.SidebarVisibility) int {
	return SidebarWidth(v)
}
