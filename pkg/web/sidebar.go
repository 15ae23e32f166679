package web

import "html/template"

type MenuItem struct {
	ID    string
	Label string
	Icon  template.HTML // SVG icon as a string
	Path  string
}

var menuItems = []MenuItem{
	{
		ID:    "dashboard",
		Label: "Dashboard",
		Icon:  template.HTML(DashboardIcon),
		Path:  "/",
	},
	{
		ID:    "legacy-test",
		Label: "Legacy test",
		Icon:  template.HTML(LegacyIcon),
		Path:  "/legacy-test",
	},
	{
		ID:    "status",
		Label: "Upstream status",
		Icon:  template.HTML(StatusIcon),
		Path:  "/status",
	},
	{
		ID:    "settings",
		Label: "Settings",
		Icon:  template.HTML(SettingsIcon),
		Path:  "/settings",
	},
}

// MenuItems returns the static navigation entries rendered in the sidebar.
func MenuItems() []MenuItem {
	items := make([]MenuItem, len(menuItems))
	copy(items, menuItems)
	return items
}
