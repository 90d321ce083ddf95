package rules

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/roach88/matapex/internal/host"
)

// Skin applies the Materialize look to the jQuery UI calendar popup.
// It is safe to call any number of times.
func Skin(doc *goquery.Document) {
	doc.Find(".ui-datepicker").AddClass("ma-datepicker", "z-depth-1")
	doc.Find(".ui-datepicker .ui-datepicker-header").AddClass("datepicker-controls")
	doc.Find(".ui-datepicker .ui-datepicker-calendar").AddClass("datepicker-table")
	doc.Find(".ui-datepicker .ui-datepicker-current-day").AddClass("is-selected")
	doc.Find(".ui-datepicker .ui-datepicker-today").AddClass("is-today")
}

// DatepickerHooks returns the calendar popup defaults: every lifecycle event
// re-skins the popup, selection drops link navigation, and closing with a
// value floats the input's label.
func DatepickerHooks(doc *goquery.Document) host.DatepickerHooks {
	return host.DatepickerHooks{
		BeforeShow: func(*goquery.Selection) {
			Skin(doc)
		},
		OnSelect: func(string, *goquery.Selection) {
			doc.Find(".ui-datepicker a").RemoveAttr("href")
			Skin(doc)
		},
		OnChangeMonthYear: func(int, int) {
			Skin(doc)
		},
		OnClose: func(dateText string, input *goquery.Selection) {
			if dateText != "" {
				input.First().SiblingsFiltered("label").AddClass("active")
			}
		},
	}
}

// StickyTopSelector is the element whose height is the sticky-top offset.
const StickyTopSelector = "header .top-nav"

var hostOverridesRule = Rule{
	Name:     "host-overrides",
	Group:    "host",
	Selector: StickyTopSelector,
	Action: func(c *Context) {
		c.Host.SetDatepickerDefaults(DatepickerHooks(c.Doc))

		doc := c.Doc
		c.Host.SetStickyTop(func() *goquery.Selection {
			return doc.Find(StickyTopSelector)
		})

		if orig := c.Host.Spinner(); orig != nil {
			c.Host.SetSpinner(host.WrapSpinner(c.Doc, orig))
		}
	},
}
