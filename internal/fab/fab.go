// Package fab resolves floating-action-button options from marker classes.
//
// A FAB trigger in APEX markup is an ordinary button annotated with marker
// classes. Each marker belongs to exactly one of four independent option
// dimensions. Resolve scans the markers of every dimension in a fixed declared
// order and keeps the LAST match, falling back to a documented default when
// nothing matches.
//
// A trigger carrying both "fab-position-right" and "fab-position-left" resolves
// to left because left is checked later. Do not reorder the marker tables.
package fab

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/roach88/matapex/internal/dom"
)

// Position is where the FAB wrapper is anchored.
type Position string

const (
	PositionRight    Position = "right"
	PositionLeft     Position = "left"
	PositionAbsolute Position = "absolute"
)

// Direction is the direction in which the FAB's buttons open.
type Direction string

const (
	DirectionTop    Direction = "top"
	DirectionRight  Direction = "right"
	DirectionBottom Direction = "bottom"
	DirectionLeft   Direction = "left"
)

// Marker classes, in scan order per dimension.
const (
	ClassTrigger          = "fixed-action-btn"
	ClassPositionRight    = "fab-position-right"
	ClassPositionLeft     = "fab-position-left"
	ClassPositionAbsolute = "fab-position-absolute"
	ClassDirectionTop     = "fab-direction-top"
	ClassDirectionRight   = "fab-direction-right"
	ClassDirectionBottom  = "fab-direction-bottom"
	ClassDirectionLeft    = "fab-direction-left"
	ClassOpenHover        = "fab-open-behavior-hover"
	ClassOpenClick        = "fab-open-behavior-click"
	ClassToolbar          = "fab-toolbar"
)

type marker[T any] struct {
	class string
	value T
}

// Scan order is part of the contract (last match wins).
var (
	positionMarkers = []marker[Position]{
		{ClassPositionRight, PositionRight},
		{ClassPositionLeft, PositionLeft},
		{ClassPositionAbsolute, PositionAbsolute},
	}
	directionMarkers = []marker[Direction]{
		{ClassDirectionTop, DirectionTop},
		{ClassDirectionRight, DirectionRight},
		{ClassDirectionBottom, DirectionBottom},
		{ClassDirectionLeft, DirectionLeft},
	}
	hoverMarkers = []marker[bool]{
		{ClassOpenHover, true},
		{ClassOpenClick, false},
	}
	toolbarMarkers = []marker[bool]{
		{ClassToolbar, true},
	}
)

// Config is the widget configuration handed to the floating-action-button
// constructor. It is fully determined by Resolve and never mutated afterwards.
type Config struct {
	Position       Position  `json:"position"`
	Direction      Direction `json:"direction"`
	HoverEnabled   bool      `json:"hoverEnabled"`
	ToolbarEnabled bool      `json:"toolbarEnabled"`
}

// DefaultConfig is what Resolve returns for a trigger without any marker.
var DefaultConfig = Config{
	Position:       PositionRight,
	Direction:      DirectionTop,
	HoverEnabled:   true,
	ToolbarEnabled: false,
}

// Resolve derives the widget configuration from the marker classes of the first
// element of trigger. An empty selection resolves to DefaultConfig.
func Resolve(trigger *goquery.Selection) Config {
	el := trigger.First()
	return Config{
		Position:       scan(el, positionMarkers, DefaultConfig.Position),
		Direction:      scan(el, directionMarkers, DefaultConfig.Direction),
		HoverEnabled:   scan(el, hoverMarkers, DefaultConfig.HoverEnabled),
		ToolbarEnabled: scan(el, toolbarMarkers, DefaultConfig.ToolbarEnabled),
	}
}

func scan[T any](el *goquery.Selection, markers []marker[T], def T) T {
	v := def
	for _, m := range markers {
		if el.HasClass(m.class) {
			v = m.value
		}
	}
	return v
}

// PositionClass returns the marker class that expresses c.Position on the wrapper.
func (c Config) PositionClass() string {
	return "fab-position-" + string(c.Position)
}

// WrapperClasses is the class attribute of the generated wrapper element:
// "fixed-action-btn fab-position-<pos>", plus " toolbar" when the toolbar is on.
func (c Config) WrapperClasses() string {
	classes := ClassTrigger + " " + c.PositionClass()
	if c.ToolbarEnabled {
		classes += " toolbar"
	}
	return classes
}

// StrippedClasses are removed from the trigger once it has been wrapped.
// Direction, open-behaviour and toolbar markers stay on the trigger.
var StrippedClasses = []string{ClassTrigger, ClassPositionRight, ClassPositionLeft, ClassPositionAbsolute}

// LabelSelector identifies the child holding a button's visible label.
const LabelSelector = ".ma-button-label"

// Tooltip derives the tooltip text of a FAB button: the text of its label child
// (icons ignored) or, when that is empty, its title attribute. The result is
// trimmed; ok is false when nothing is left.
func Tooltip(button *goquery.Selection) (text string, ok bool) {
	label := button.Find(LabelSelector)
	text = strings.TrimSpace(dom.IgnoreClone(label, "i").Text())
	if text == "" {
		text = strings.TrimSpace(button.AttrOr("title", ""))
	}
	return text, text != ""
}
