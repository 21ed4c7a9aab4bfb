package tui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
)

// Route paths.
const (
	PathSchools   = "/schools"
	PathNewSchool = "/schools/new"
)

// RouteKind identifies the view a path resolves to.
type RouteKind int

const (
	RouteUnknown RouteKind = iota
	RouteSchools
	RouteNewSchool
	RouteSchool
)

// Route is a parsed path.
type Route struct {
	Kind RouteKind
	ID   string // Set for RouteSchool
}

// ParseRoute resolves a path to a route. Unknown paths yield RouteUnknown.
func ParseRoute(path string) Route {
	path = strings.TrimSuffix(path, "/")
	switch path {
	case PathSchools, "":
		return Route{Kind: RouteSchools}
	case PathNewSchool:
		return Route{Kind: RouteNewSchool}
	}

	if id, ok := strings.CutPrefix(path, PathSchools+"/"); ok && id != "" && !strings.Contains(id, "/") {
		return Route{Kind: RouteSchool, ID: id}
	}
	return Route{Kind: RouteUnknown}
}

// NavItem is an entry of the navigation menu.
type NavItem struct {
	Label string
	Path  string
}

// NavItems returns the navigation menu.
func NavItems() []NavItem {
	return []NavItem{
		{Label: "Schools", Path: PathSchools},
		{Label: "New school", Path: PathNewSchool},
	}
}

// Heading returns title, or the label of the nav item that best matches
// path when title is empty.
func Heading(path, title string) string {
	if title != "" {
		return title
	}

	best := ""
	bestLen := -1
	for _, item := range NavItems() {
		if path == item.Path {
			return item.Label
		}
		if strings.HasPrefix(path, item.Path+"/") && len(item.Path) > bestLen {
			best = item.Label
			bestLen = len(item.Path)
		}
	}
	return best
}

// NavigateMsg asks the app to show the view for Path.
type NavigateMsg struct {
	Path string
}

// Navigate returns a command that navigates to path.
func Navigate(path string) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Path: path}
	}
}
