package host

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/roach88/matapex/internal/fab"
)

// DebugLevel mirrors the APEX debug log levels.
type DebugLevel int

// Values match apex.debug.LOG_LEVEL.
const (
	LevelOff         DebugLevel = 0
	LevelError       DebugLevel = 1
	LevelWarning     DebugLevel = 2
	LevelInfo        DebugLevel = 4
	LevelAppTrace    DebugLevel = 6
	LevelEngineTrace DebugLevel = 9
)

var levelNames = map[DebugLevel]string{
	LevelOff:         "off",
	LevelError:       "error",
	LevelWarning:     "warning",
	LevelInfo:        "info",
	LevelAppTrace:    "app_trace",
	LevelEngineTrace: "engine_trace",
}

// String returns the configuration name of the level.
func (l DebugLevel) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("level(%d)", int(l))
}

// ParseDebugLevel parses a configuration name ("off", "info", ...). Matching is
// case-insensitive; the empty string is LevelOff.
func ParseDebugLevel(s string) (DebugLevel, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return LevelOff, nil
	}
	for l, name := range levelNames {
		if name == s {
			return l, nil
		}
	}
	return LevelOff, fmt.Errorf("unknown debug level %q", s)
}

// SpinnerOptions are the options of the APEX spinner factory.
type SpinnerOptions struct {
	// Color selects a single-colour preloader ("blue", "red", ...). Empty
	// means the four-colour preloader.
	Color string `json:"color,omitempty"`
	// Size is the Materialize preloader size class ("small", "big").
	Size string `json:"size,omitempty"`
}

// SpinnerFunc creates a processing indicator inside container (a selector, or
// empty for the page body) and returns the indicator element.
type SpinnerFunc func(container string, opts SpinnerOptions) (*goquery.Selection, error)

// DatepickerHooks are the lifecycle callbacks installed as calendar popup
// defaults. Nil hooks are not called.
type DatepickerHooks struct {
	BeforeShow        func(input *goquery.Selection)
	OnSelect          func(dateText string, input *goquery.Selection)
	OnChangeMonthYear func(year, month int)
	OnClose           func(dateText string, input *goquery.Selection)
}

// StickyTopFunc returns the element whose rendered height is the sticky-top
// offset used by the region display selector.
type StickyTopFunc func() *goquery.Selection

// Host is everything the pipeline consumes from the page environment.
type Host interface {
	// AddMessages upserts entries into the message catalog. Last write wins.
	AddMessages(messages map[string]string)
	// Message looks up a localized string; a missing key returns the key.
	Message(key string) string
	// ShowPageSuccess displays a page-level success notification.
	ShowPageSuccess(text string)
	// DebugLevel is the current debug level.
	DebugLevel() DebugLevel

	Spinner() SpinnerFunc
	SetSpinner(fn SpinnerFunc)
	SetDatepickerDefaults(hooks DatepickerHooks)
	SetStickyTop(fn StickyTopFunc)

	// FloatingActionButton constructs the FAB widget on wrapper.
	FloatingActionButton(wrapper *goquery.Selection, cfg fab.Config)
	// Focus moves input focus to the first element of sel.
	Focus(sel *goquery.Selection)
}
