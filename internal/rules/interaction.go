package rules

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/roach88/matapex/internal/events"
)

const searchItem = "#P0_SEARCH"

var searchBarRule = Rule{
	Name:     "search-bar",
	Group:    "interaction",
	Selector: searchItem,
	Action:   applySearchBar,
}

// applySearchBar binds the navigation search toggle: clicking the search icon
// link swaps the main and search bars and focuses the search item; leaving the
// item swaps them back.
func applySearchBar(c *Context) {
	links := c.Find(".top-nav li a i").FilterFunction(func(_ int, i *goquery.Selection) bool {
		return strings.Contains(i.Text(), "search")
	}).Parent()
	if links.Length() > 0 {
		c.Events.On(events.Click, "search-open", events.Nodes(links), func(e events.Event) {
			toggleSearch(e.Doc)
			c.Host.Focus(e.Doc.Find(searchItem))
		})
	}

	item := c.Find(searchItem).SetAttr("type", "search")
	if item.Length() > 0 {
		c.Events.On(events.Blur, "search-close", events.Nodes(item), func(e events.Event) {
			toggleSearch(e.Doc)
		})
	}
}

func toggleSearch(doc *goquery.Document) {
	doc.Find(".main-nav-wrapper").ToggleClass("hide")
	doc.Find(".search-nav-wrapper").ToggleClass("hide")
}

var dismissablesRule = Rule{
	Name:     "dismissables",
	Group:    "interaction",
	Selector: ".ma-toast-close, .panel-close",
	Action: func(c *Context) {
		c.Events.On(events.Click, "toast-close", events.MustSelector(".ma-toast-close"), func(e events.Event) {
			e.Current.Closest(".toast").Remove()
		})
		c.Events.On(events.Click, "panel-close", events.MustSelector(".panel-close"), func(e events.Event) {
			e.Current.Closest(".card-panel").Remove()
		})
	},
}

var dialogSuccessRule = Rule{
	Name:     "dialog-success",
	Group:    "interaction",
	Selector: "body",
	Action: func(c *Context) {
		c.Events.On(events.AfterCloseDialog, "dialog-success", events.MustSelector("body"), func(e events.Event) {
			if e.Data.SuccessMessage != "" {
				c.Host.ShowPageSuccess(e.Data.SuccessMessage)
			}
		})
	},
}
