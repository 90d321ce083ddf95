package rules

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/multierr"

	"github.com/roach88/matapex/internal/dom"
	"github.com/roach88/matapex/internal/events"
	"github.com/roach88/matapex/internal/host"
)

// Context is what a rule action operates on.
type Context struct {
	Doc    *goquery.Document
	Host   host.Host
	IDs    dom.IDGenerator
	Events *events.Registry
	// ItemPrefix scopes the form-control rules to a region (a selector, may be empty).
	ItemPrefix string
	Logger     *slog.Logger
}

// Find evaluates selector against the current document.
func (c *Context) Find(selector string) *goquery.Selection {
	return c.Doc.Find(selector)
}

// Rule is one transformation.
type Rule struct {
	Name string
	// Group is the widget family, used for listing.
	Group string
	// Guard is a marker class; when non-empty and absent from the document the
	// action is skipped.
	Guard string
	// Selector is the primary selector the action works on (informational).
	Selector string
	// After names the rules that must precede this one.
	After  []string
	Action func(c *Context)
}

// Set is an ordered list of rules.
type Set []Rule

// Default returns a fresh copy of the built-in rule set, in evaluation order.
func Default() Set {
	return Set{
		sidenavRule,
		wizardRule,
		interactiveReportRule,
		checkablesRule,
		inputFieldLabelsRule,
		liveTemplateOptionsRule,
		sidenavTriggerRule,
		gridRule,
		emptyCleanupRule,
		fabRule,
		fabTooltipsRule,
		fabRelativeRule,
		switchesRule,
		parallaxRule,
		displayOnlyRule,
		checkableGroupsRule,
		textareaRule,
		popupLOVRule,
		mediaRule,
		tooltipsRule,
		iconsRule,
		searchBarRule,
		dismissablesRule,
		alternateLookRule,
		dialogSuccessRule,
		hostOverridesRule,
	}
}

// Names returns the rule names in order.
func (s Set) Names() []string {
	names := make([]string, len(s))
	for i, r := range s {
		names[i] = r.Name
	}
	return names
}

// Group is a widget family and its rules, in set order.
type Group struct {
	Name  string
	Rules []Rule
}

// Groups partitions the set by Rule.Group. Groups appear in order of their
// first rule.
func (s Set) Groups() []Group {
	var groups []Group
	index := make(map[string]int)
	for _, r := range s {
		i, ok := index[r.Group]
		if !ok {
			i = len(groups)
			index[r.Group] = i
			groups = append(groups, Group{Name: r.Group})
		}
		groups[i].Rules = append(groups[i].Rules, r)
	}
	return groups
}

// Lookup returns the rule with the given name.
func (s Set) Lookup(name string) (Rule, bool) {
	for _, r := range s {
		if r.Name == name {
			return r, true
		}
	}
	return Rule{}, false
}

// Without returns a copy of s minus the named rules.
func (s Set) Without(names ...string) Set {
	skip := make(map[string]bool, len(names))
	for _, n := range names {
		skip[n] = true
	}
	out := make(Set, 0, len(s))
	for _, r := range s {
		if !skip[r.Name] {
			out = append(out, r)
		}
	}
	return out
}

// Validate checks that names are unique and non-empty, that every rule has an
// action, and that every After dependency appears earlier in the set. All
// problems are reported.
func (s Set) Validate() error {
	var errs error
	seen := make(map[string]bool, len(s))
	for i, r := range s {
		if strings.TrimSpace(r.Name) == "" {
			errs = multierr.Append(errs, fmt.Errorf("rule %d: empty name", i))
		} else if seen[r.Name] {
			errs = multierr.Append(errs, fmt.Errorf("rule %q: duplicate name", r.Name))
		}
		if r.Action == nil {
			errs = multierr.Append(errs, fmt.Errorf("rule %q: no action", r.Name))
		}
		for _, dep := range r.After {
			if !seen[dep] {
				errs = multierr.Append(errs, fmt.Errorf("rule %q: must run after %q", r.Name, dep))
			}
		}
		seen[r.Name] = true
	}
	return errs
}

// descend joins the non-empty parts into a descendant selector.
func descend(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}

// anyOf joins selectors into a selector group.
func anyOf(selectors ...string) string {
	return strings.Join(selectors, ", ")
}
