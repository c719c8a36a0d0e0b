package console

import (
	"github.com/supplykz/supplier-console/permissions"
)

// Page is a console page
type Page string

const (
	PageDashboard    Page = "dashboard"
	PageLinkRequests Page = "link-requests"
	PageOrders       Page = "orders"
	PageComplaints   Page = "complaints"
	PageChat         Page = "chat"
	PageCatalog      Page = "catalog"
	PageSettings     Page = "settings"
)

// PageInfo describes a navigation entry
type PageInfo struct {
	Page  Page
	Title string
	// Requires is empty for pages every console user may open
	Requires permissions.Capability
}

var pages = []PageInfo{
	{Page: PageDashboard, Title: "Dashboard"},
	{Page: PageLinkRequests, Title: "Link Requests", Requires: permissions.AccessLinkRequests},
	{Page: PageOrders, Title: "Orders", Requires: permissions.AccessOrders},
	{Page: PageComplaints, Title: "Complaints", Requires: permissions.AccessComplaints},
	{Page: PageChat, Title: "Chat", Requires: permissions.AccessChat},
	{Page: PageCatalog, Title: "Catalog", Requires: permissions.ManageProducts},
	{Page: PageSettings, Title: "Settings", Requires: permissions.AccessSettings},
}

// Pages returns every page in navigation order
func Pages() []PageInfo {
	return append([]PageInfo(nil), pages...)
}

// LookupPage returns the page info for p
func LookupPage(p Page) (PageInfo, bool) {
	for _, info := range pages {
		if info.Page == p {
			return info, true
		}
	}
	return PageInfo{}, false
}

// CanOpen reports whether caps allow opening p
func CanOpen(caps permissions.CapabilitySet, p Page) bool {
	info, ok := LookupPage(p)
	if !ok || !caps.CanEnterConsole() {
		return false
	}
	return info.Requires == "" || caps.Has(info.Requires)
}

// Navigation lists the pages visible with caps
func Navigation(caps permissions.CapabilitySet) []PageInfo {
	var out []PageInfo
	for _, info := range pages {
		if CanOpen(caps, info.Page) {
			out = append(out, info)
		}
	}
	return out
}
