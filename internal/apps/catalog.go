// Package apps holds the catalog of integrations an administrator can enable
// during setup.
package apps

import (
	"sort"

	"github.com/gosimple/slug"
)

// Category groups apps in the setup list.
type Category string

const (
	CategoryCalendar     Category = "calendar"
	CategoryConferencing Category = "conferencing"
	CategoryPayment      Category = "payment"
	CategoryAutomation   Category = "automation"
	CategoryAnalytics    Category = "analytics"
)

// Categories returns every category in display order.
func Categories() []Category {
	return []Category{
		CategoryCalendar,
		CategoryConferencing,
		CategoryPayment,
		CategoryAutomation,
		CategoryAnalytics,
	}
}

// Title returns the display name of a category.
func (c Category) Title() string {
	switch c {
	case CategoryCalendar:
		return "Calendar"
	case CategoryConferencing:
		return "Conferencing"
	case CategoryPayment:
		return "Payment"
	case CategoryAutomation:
		return "Automation"
	case CategoryAnalytics:
		return "Analytics"
	}
	return string(c)
}

// App is one installable integration.
type App struct {
	Slug        string
	Name        string
	Category    Category
	Description string
}

var catalog = build([]App{
	{Name: "Google Calendar", Category: CategoryCalendar, Description: "Sync bookings with Google Calendar"},
	{Name: "Outlook Calendar", Category: CategoryCalendar, Description: "Sync bookings with Microsoft 365"},
	{Name: "Apple Calendar", Category: CategoryCalendar, Description: "Sync bookings with iCloud"},
	{Name: "CalDAV Server", Category: CategoryCalendar, Description: "Connect any CalDAV calendar"},
	{Name: "Daily Video", Category: CategoryConferencing, Description: "Built-in video meetings"},
	{Name: "Zoom Video", Category: CategoryConferencing, Description: "Generate Zoom links for bookings"},
	{Name: "Jitsi Video", Category: CategoryConferencing, Description: "Self-hosted open source video"},
	{Name: "Stripe", Category: CategoryPayment, Description: "Collect payments for paid events"},
	{Name: "PayPal", Category: CategoryPayment, Description: "Accept PayPal for bookings"},
	{Name: "Zapier", Category: CategoryAutomation, Description: "Trigger Zaps from booking events"},
	{Name: "Webhooks", Category: CategoryAutomation, Description: "Send booking events to any URL"},
	{Name: "Plausible", Category: CategoryAnalytics, Description: "Privacy-friendly booking page analytics"},
})

// build derives slugs from names so they never drift apart.
func build(list []App) []App {
	for i := range list {
		list[i].Slug = slug.Make(list[i].Name)
	}
	return list
}

// All returns a copy of the catalog.
func All() []App {
	out := make([]App, len(catalog))
	copy(out, catalog)
	return out
}

// ByCategory returns the apps of one category in catalog order.
func ByCategory(c Category) []App {
	var out []App
	for _, app := range catalog {
		if app.Category == c {
			out = append(out, app)
		}
	}
	return out
}

// Lookup finds an app by slug.
func Lookup(s string) (App, bool) {
	for _, app := range catalog {
		if app.Slug == s {
			return app, true
		}
	}
	return App{}, false
}

// SortedSlugs returns the keys of set in lexical order.
func SortedSlugs(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for s, on := range set {
		if on {
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}
