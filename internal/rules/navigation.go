package rules

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
)

var sidenavRule = Rule{
	Name:     "sidenav",
	Group:    "navigation",
	Guard:    "sidenav",
	Selector: "#app-sidenav li.active",
	Action:   applySidenav,
}

func applySidenav(c *Context) {
	c.Find("#app-sidenav li.active").
		ParentsFiltered(".collapsible-body").
		Each(func(_ int, s *goquery.Selection) { setStyle(s, "display", "block") }).
		SiblingsFiltered(".collapsible-header").
		AddClass("active").
		ParentsFiltered("li").
		AddClass("active")

	nav := c.Find(".sidenav").First()
	if nav.Length() == 0 {
		return
	}
	pending := c.Find(".user-view").FilterFunction(func(_ int, s *goquery.Selection) bool {
		p := s.Parent()
		return !(p.Is("li") && p.Parent().IsSelection(nav))
	})
	if pending.Length() == 0 {
		return
	}
	nav.PrependSelection(pending)
	pending.WrapHtml("<li></li>")
}

var wizardRule = Rule{
	Name:     "wizard",
	Group:    "navigation",
	Guard:    "ma-wizard",
	Selector: ".ma-wizard .ma-wizard-step.is-active",
	Action: func(c *Context) {
		c.Find(".ma-wizard").
			Find(".ma-wizard-step.is-active").
			PrevAllFiltered(".ma-wizard-step").
			AddClass("is-complete")
	},
}

var sidenavTriggerRule = Rule{
	Name:     "sidenav-trigger",
	Group:    "navigation",
	Selector: "#app-sidenav-trigger",
	Action: func(c *Context) {
		if c.Find(".sidenav .sidenav-entry").Length() > 0 {
			c.Find("#app-sidenav-trigger").RemoveClass("hide")
		}
	},
}

// setStyle sets one declaration of the style attribute, keeping the others in
// place. A style that does not parse is replaced.
func setStyle(s *goquery.Selection, property, value string) {
	decls, err := parser.ParseDeclarations(s.AttrOr("style", ""))
	if err != nil {
		decls = nil
	}

	replaced := false
	kept := decls[:0]
	for _, d := range decls {
		if !strings.EqualFold(d.Property, property) {
			kept = append(kept, d)
			continue
		}
		if !replaced {
			d.Property, d.Value, d.Important = property, value, false
			kept = append(kept, d)
			replaced = true
		}
	}
	if !replaced {
		kept = append(kept, &css.Declaration{Property: property, Value: value})
	}

	out := make([]string, len(kept))
	for i, d := range kept {
		out[i] = d.String()
	}
	s.SetAttr("style", strings.Join(out, " "))
}
