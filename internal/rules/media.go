package rules

import (
	"github.com/PuerkitoBio/goquery"
)

var mediaRule = Rule{
	Name:     "media",
	Group:    "media",
	Selector: ".apex-materialbox img",
	Action: func(c *Context) {
		c.Find(".apex-materialbox img").
			AddClass("materialboxed", "responsive-img").
			Each(func(_ int, img *goquery.Selection) {
				parent := img.Parent()
				caption, ok := parent.Attr("data-caption")
				if !ok {
					return
				}
				img.SetAttr("data-caption", caption)
				parent.RemoveAttr("data-caption")
			})
	},
}

var tooltipsRule = Rule{
	Name:     "tooltips",
	Group:    "media",
	Selector: "[data-tooltip]",
	After:    []string{"fab-tooltips"},
	Action: func(c *Context) {
		c.Find("[data-tooltip]").Each(func(_ int, s *goquery.Selection) {
			tip := s.AttrOr("data-tooltip", "")
			if tip == "" {
				return
			}
			s.SiblingsFiltered("i, span").SetAttr("data-tooltip", tip)
		})
	},
}

var iconsRule = Rule{
	Name:     "icons",
	Group:    "media",
	Selector: "i[class='']",
	Action: func(c *Context) {
		c.Find("i[class='']").Remove()
	},
}
