package rules

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/roach88/matapex/internal/dom"
)

// Explicit small-screen widths override the s12 default.
const gridSelector = ".s1, .s2, .s3, .s4, .s5, .s6, .s7, .s8, .s9, .s10, .s11"

var gridRule = Rule{
	Name:     "grid",
	Group:    "layout",
	Selector: gridSelector,
	Action: func(c *Context) {
		c.Find(gridSelector).RemoveClass("s12")
	},
}

var emptyCleanupRule = Rule{
	Name:     "empty-cleanup",
	Group:    "layout",
	Selector: ".card-content, .card-action, span.badge, .ma-button-label",
	Action: func(c *Context) {
		dom.RemoveIfEmpty(c.Find(".card-content, .card-action, span.badge, .ma-button-label"))
		dom.RemoveIfEmptyOrWhitespace(c.Find(".ma-region-buttons, .ma-region-header"))
	},
}

var switchesRule = Rule{
	Name:     "switches",
	Group:    "forms",
	Selector: ".switch",
	After:    []string{"input-field-labels"},
	Action: func(c *Context) {
		c.Find(".switch").Closest(".input-field").AddClass("ma-switch-container")
		c.Find("select, .switch").Closest(".input-field").RemoveClass("input-field")
	},
}

var parallaxRule = Rule{
	Name:     "parallax",
	Group:    "layout",
	Selector: ".parallax-container",
	Action: func(c *Context) {
		c.Find(".parallax-container").Each(func(_ int, s *goquery.Selection) {
			col := gridColumn(s)
			clearClasses(col)
			clearClasses(col.Closest(".row"))
		})
	},
}

// gridColumn returns the nearest .col above s. A cleared ancestor (class="")
// below it means an earlier run already handled this container; the result is
// then empty so enclosing grids are left alone.
func gridColumn(s *goquery.Selection) *goquery.Selection {
	for p := s.Parent(); p.Length() > 0; p = p.Parent() {
		if cls, ok := p.Attr("class"); ok && strings.TrimSpace(cls) == "" {
			return p.Slice(0, 0)
		}
		if p.Is(".col") {
			return p
		}
	}
	return s.Slice(0, 0)
}

// clearClasses empties the class attribute, keeping it present.
func clearClasses(sel *goquery.Selection) {
	sel.SetAttr("class", "")
}

var displayOnlyRule = Rule{
	Name:     "display-only",
	Group:    "forms",
	Selector: ".display_only",
	Action: func(c *Context) {
		c.Find(".display_only").SiblingsFiltered("label").AddClass("active")
	},
}

var checkableGroupsRule = Rule{
	Name:     "checkable-groups",
	Group:    "forms",
	Selector: ".checkbox_group, .radio_group",
	After:    []string{"input-field-labels"},
	Action: func(c *Context) {
		c.Find(".checkbox_group, .radio_group").
			SiblingsFiltered("label").
			AddClass("active", "label-block").
			Closest(".input-field").
			RemoveClass("input-field")
	},
}

var textareaRule = Rule{
	Name:     "textarea",
	Group:    "forms",
	Selector: "textarea",
	Action: func(c *Context) {
		c.Find("[id*='_CHAR_COUNTER']").Parent().AddClass("character-counter")
		// A <textarea> element holds raw text only, so it never adopts siblings.
		dom.AdoptSiblings(c.Find(".textarea").Not("textarea"))
		c.Find("textarea").AddClass("materialize-textarea")
	},
}

var popupLOVRule = Rule{
	Name:     "popup-lov",
	Group:    "forms",
	Selector: ".lov",
	Action: func(c *Context) {
		c.Find(".lov").Parent().AddClass("ma-popuplov")
	},
}
