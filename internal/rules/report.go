package rules

import (
	"github.com/roach88/matapex/internal/host"
)

// Material icon markup for the interactive report toolbar buttons.
const (
	irActionsIcon   = `<i class="material-icons">settings</i>`
	irColSearchIcon = `<i class="material-icons">search</i>`
)

var interactiveReportRule = Rule{
	Name:     "interactive-report",
	Group:    "report",
	Guard:    "a-IRR",
	Selector: ".a-IRR-search-field",
	Action: func(c *Context) {
		c.Find(".a-IRR-search-field").
			SetAttr("placeholder", c.Host.Message(host.MsgIGSearch)).
			Parent().
			AddClass("input-field")

		c.Find(".a-IRR-button--actions").SetHtml(irActionsIcon)
		c.Find(".a-IRR-button--colSearch").SetHtml(irColSearchIcon)

		c.Find(".a-IRR-controlsCheckbox").AddClass("filled-in")
	},
}
