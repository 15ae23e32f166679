package web

import (
	"html/template"
	"strings"

	"github.com/gatefig/gatefig/pkg/models"
)

func add(a, b int64) int64 {
	return a + b
}

func sub(a, b int64) int64 {
	return a - b
}

// returns 0 on a divide by 0
func percent(a, b uint64) int {
	if b == 0 {
		return 0
	}
	return int(float32(a) / float32(b) * 100)
}

func upstreamSlug(id models.UpstreamID) string {
	return strings.ToLower(string(id))
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"ToLower":            strings.ToLower,
		"Add":                add,
		"Sub":                sub,
		"Percent":            percent,
		"UpstreamSlug":       upstreamSlug,
		"HeaderHeight":       func() int { return HeaderHeight },
		"SidebarWidthOpen":   func() int { return SidebarWidthOpen },
		"SidebarWidthClosed": func() int { return SidebarWidthClosed },
		"SidebarWidth":       SidebarWidth,
		"ContentInset":       ContentInset,
	}
}
