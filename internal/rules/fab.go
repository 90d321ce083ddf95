package rules

import (
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/roach88/matapex/internal/fab"
)

var fabRule = Rule{
	Name:     "fab",
	Group:    "fab",
	Guard:    fab.ClassTrigger,
	Selector: "." + fab.ClassTrigger,
	Action:   applyFAB,
}

// applyFAB turns each APEX button marked fixed-action-btn into a Materialize
// floating action button:
//
//	<div class="fixed-action-btn fab-position-*">
//	  <button ...trigger...>
//	  <ul><li><a class="btn-floating">...</a></li>...</ul>
//	</div>
//
// A div carrying the class is an already built wrapper and is left alone.
func applyFAB(c *Context) {
	c.Find("." + fab.ClassTrigger).Each(func(_ int, trigger *goquery.Selection) {
		if trigger.Is("div") {
			return
		}
		cfg := fab.Resolve(trigger)

		trigger.SiblingsFiltered(".btn, .btn-flat").
			AddClass("btn-floating").
			RemoveClass("btn", "btn-flat")

		// The trigger and its floating siblings, in document order.
		group := trigger.Parent().Children().FilterFunction(func(_ int, s *goquery.Selection) bool {
			return s.IsSelection(trigger) || s.HasClass("btn-floating")
		})
		group.WrapAllNode(element(atom.Div, cfg.WrapperClasses()))

		floating := trigger.SiblingsFiltered(".btn-floating")
		floating.WrapAllNode(element(atom.Ul, ""))
		floating.WrapNode(element(atom.Li, ""))

		trigger.RemoveClass(fab.StrippedClasses...)

		wrapper := trigger.Parent()
		c.Host.FloatingActionButton(wrapper, cfg)
		c.Logger.Debug("fab constructed",
			"position", cfg.Position,
			"direction", cfg.Direction,
			"hover", cfg.HoverEnabled,
			"toolbar", cfg.ToolbarEnabled,
			"buttons", floating.Length(),
		)
	})
}

var fabTooltipsRule = Rule{
	Name:     "fab-tooltips",
	Group:    "fab",
	Selector: ".fixed-action-btn ul li .btn-floating",
	After:    []string{"fab", "empty-cleanup"},
	Action: func(c *Context) {
		c.Find(".fixed-action-btn ul li .btn-floating").Each(func(_ int, s *goquery.Selection) {
			if text, ok := fab.Tooltip(s); ok {
				s.SetAttr("data-tooltip", text)
				s.SetAttr("data-position", "left")
			}
		})
	},
}

var fabRelativeRule = Rule{
	Name:     "fab-relative",
	Group:    "fab",
	Selector: "div." + fab.ClassPositionAbsolute,
	After:    []string{"fab"},
	Action: func(c *Context) {
		c.Find("div." + fab.ClassPositionAbsolute).Parent().AddClass("fab-relative")
	},
}

func element(a atom.Atom, class string) *html.Node {
	n := &html.Node{Type: html.ElementNode, Data: a.String(), DataAtom: a}
	if class != "" {
		n.Attr = []html.Attribute{{Key: "class", Val: class}}
	}
	return n
}
