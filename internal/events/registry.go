// Package events is a delegated event registry for the handlers the pipeline
// installs (search toggle, toast and panel dismissal, dialog-closed success).
//
// Server-side there is no browser dispatch; callers (the harness, tests) fire
// events explicitly with Registry.Trigger. Handlers must be stateless and safe
// to invoke any number of times.
package events

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// Type is a DOM event name.
type Type string

const (
	Click            Type = "click"
	Blur             Type = "blur"
	AfterCloseDialog Type = "apexafterclosedialog"
)

// Data is the payload of an event. Only AfterCloseDialog carries one.
type Data struct {
	SuccessMessage string `json:"successMessage,omitempty" yaml:"success_message,omitempty"`
}

// Event is passed to handlers.
type Event struct {
	Type Type
	Doc  *goquery.Document
	// Target is the element the event was fired on.
	Target *goquery.Selection
	// Current is the closest ancestor-or-self of Target accepted by the
	// registration's matcher.
	Current *goquery.Selection
	Data    Data
}

// Handler reacts to an event.
type Handler func(e Event)

type registration struct {
	event   Type
	name    string
	matcher goquery.Matcher
	handler Handler
}

// Registry holds delegated registrations in registration order.
//
// Registry is not safe for concurrent use.
type Registry struct {
	regs []registration
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// On registers handler for event on elements accepted by matcher. The pair
// (event, name) identifies the registration: registering it again replaces
// the handler in place, so a rule that runs twice binds once.
func (r *Registry) On(event Type, name string, matcher goquery.Matcher, handler Handler) {
	reg := registration{event: event, name: name, matcher: matcher, handler: handler}
	for i := range r.regs {
		if r.regs[i].event == event && r.regs[i].name == name {
			r.regs[i] = reg
			return
		}
	}
	r.regs = append(r.regs, reg)
}

// Off removes the registration (event, name). It reports whether one existed.
func (r *Registry) Off(event Type, name string) bool {
	for i := range r.regs {
		if r.regs[i].event == event && r.regs[i].name == name {
			r.regs = append(r.regs[:i], r.regs[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of registrations.
func (r *Registry) Len() int {
	return len(r.regs)
}

// Names returns the registration names for event, in order.
func (r *Registry) Names(event Type) []string {
	var names []string
	for _, reg := range r.regs {
		if reg.event == event {
			names = append(names, reg.name)
		}
	}
	return names
}

// Trigger fires event on every element of target. For each registration of
// that event, in order, the handler is called with the closest
// ancestor-or-self of the element that the matcher accepts; elements with no
// such ancestor are skipped.
//
// Returns the number of handler calls.
func (r *Registry) Trigger(doc *goquery.Document, event Type, target *goquery.Selection, data Data) int {
	regs := make([]registration, 0, len(r.regs))
	for _, reg := range r.regs {
		if reg.event == event {
			regs = append(regs, reg)
		}
	}

	calls := 0
	target.Each(func(_ int, t *goquery.Selection) {
		for _, reg := range regs {
			current := t.ClosestMatcher(reg.matcher)
			if current.Length() == 0 {
				continue
			}
			reg.handler(Event{Type: event, Doc: doc, Target: t, Current: current, Data: data})
			calls++
		}
	})
	return calls
}

// Selector compiles a CSS selector into a matcher.
func Selector(sel string) (goquery.Matcher, error) {
	m, err := cascadia.Compile(sel)
	if err != nil {
		return nil, fmt.Errorf("compile selector %q: %w", sel, err)
	}
	return m, nil
}

// MustSelector is Selector for selectors known to be valid. It panics otherwise.
func MustSelector(sel string) goquery.Matcher {
	m, err := Selector(sel)
	if err != nil {
		panic(err)
	}
	return m
}

// Nodes returns a matcher accepting exactly the elements of sel, which is how
// a handler bound directly to elements (rather than delegated) is expressed.
func Nodes(sel *goquery.Selection) goquery.Matcher {
	set := make(nodeSet, sel.Length())
	for _, n := range sel.Nodes {
		set[n] = struct{}{}
	}
	return set
}

type nodeSet map[*html.Node]struct{}

func (s nodeSet) Match(n *html.Node) bool {
	_, ok := s[n]
	return ok
}

func (s nodeSet) MatchAll(n *html.Node) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if s.Match(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func (s nodeSet) Filter(nodes []*html.Node) []*html.Node {
	var out []*html.Node
	for _, n := range nodes {
		if s.Match(n) {
			out = append(out, n)
		}
	}
	return out
}
