package rules

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/roach88/matapex/internal/dom"
)

const (
	checkbox = "input[type='checkbox']"
	radio    = "input[type='radio']"
)

var checkablesRule = Rule{
	Name:     "checkables",
	Group:    "forms",
	Selector: "[type='checkbox'], [type='radio']",
	Action:   applyCheckables,
}

// applyCheckables styles checkboxes and radios inside grids and every checkbox
// in scope that is not a switch, then gives every checkable in scope an id and
// an empty label after it.
func applyCheckables(c *Context) {
	c.Find(anyOf(
		descend(".a-GV", c.ItemPrefix, checkbox),
		descend(".a-GV", c.ItemPrefix, radio),
	)).AddClass("filled-in")

	c.Find(anyOf(
		descend(c.ItemPrefix, "[type='checkbox']"),
		descend(c.ItemPrefix, "[type='radio']"),
	)).Each(func(_ int, s *goquery.Selection) {
		if s.Is(checkbox) && !s.Next().Is("span.lever") {
			s.AddClass("filled-in")
		}
		ids := dom.EnsureIdentity(s, c.IDs)
		dom.Relabel(s, ids[0])
	})
}

var inputFieldLabelsRule = Rule{
	Name:     "input-field-labels",
	Group:    "forms",
	Selector: ".input-field > label",
	After:    []string{"checkables", "interactive-report"},
	Action:   applyInputFieldLabels,
}

// applyInputFieldLabels puts labels after their control: label containers are
// unwrapped into the .input-field, then each label is moved to the end.
// Labels that belong to a checkbox or radio stay right after it.
func applyInputFieldLabels(c *Context) {
	c.Find(".input-field").Each(func(_ int, field *goquery.Selection) {
		dom.UnwrapInto(field, field.ChildrenFiltered(".t-Form-labelContainer"))
	})

	dom.MoveToEnd(c.Find(".input-field > label").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return !s.Prev().Is(anyOf(checkbox, radio))
	}))
}

var liveTemplateOptionsRule = Rule{
	Name:     "live-template-options",
	Group:    "forms",
	Guard:    "a-LiveTemplateOptions",
	Selector: ".a-Property-checkbox-input",
	Action: func(c *Context) {
		c.Find(".a-Property-checkbox-input").AddClass("filled-in")
	},
}

var alternateLookRule = Rule{
	Name:     "alternate-look",
	Group:    "forms",
	Selector: ".ma-alternate-look input",
	After:    []string{"checkables"},
	Action: func(c *Context) {
		c.Find(descend(".ma-alternate-look", checkbox)).AddClass("filled-in")
		c.Find(descend(".ma-alternate-look", radio)).AddClass("with-gap")
	},
}
