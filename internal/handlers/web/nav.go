package web

import "strings"

// NavItem is a top-level navigation link
type NavItem struct {
	Path  string
	Label string
}

// RenderedNavItem is a NavItem with its active state for templates
type RenderedNavItem struct {
	Href   string
	Label  string
	Active bool
}

// MainNav links the two browsing pages
var MainNav = []NavItem{
	{Path: "/", Label: "Home"},
	{Path: "/gallery", Label: "Gallery"},
}

// BuildNav marks the item matching currentPath as active
func BuildNav(currentPath string) []RenderedNavItem {
	if currentPath == "" {
		currentPath = "/"
	}
	items := make([]RenderedNavItem, 0, len(MainNav))
	for _, it := range MainNav {
		items = append(items, RenderedNavItem{
			Href:   it.Path,
			Label:  it.Label,
			Active: isActive(it.Path, currentPath),
		})
	}
	return items
}

func isActive(itemPath, currentPath string) bool {
	if itemPath == "/" {
		return currentPath == "/"
	}
	return currentPath == itemPath || strings.HasPrefix(currentPath, itemPath+"/")
}
