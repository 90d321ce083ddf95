package rules_test

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/matapex/internal/events"
	"github.com/roach88/matapex/internal/host"
	"github.com/roach88/matapex/internal/rules"
	"github.com/roach88/matapex/internal/testutil"
)

// newContext parses markup into a fresh page with default messages.
func newContext(t *testing.T, markup string) (*rules.Context, *host.Page) {
	t.Helper()
	doc := testutil.ParseHTML(t, markup)
	page := host.NewPage(doc)
	host.RegisterMessages(page)
	return &rules.Context{
		Doc:    doc,
		Host:   page,
		IDs:    testutil.NewSequenceGenerator(""),
		Events: events.NewRegistry(),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, page
}

// apply runs the named rules in the given order, ignoring guards.
func apply(t *testing.T, c *rules.Context, names ...string) {
	t.Helper()
	set := rules.Default()
	for _, name := range names {
		r, ok := set.Lookup(name)
		require.True(t, ok, "unknown rule %q", name)
		r.Action(c)
	}
}
