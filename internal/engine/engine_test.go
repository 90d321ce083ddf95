package engine_test

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/matapex/internal/engine"
	"github.com/roach88/matapex/internal/events"
	"github.com/roach88/matapex/internal/host"
	"github.com/roach88/matapex/internal/rules"
	"github.com/roach88/matapex/internal/testutil"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func loadPage(t *testing.T) *goquery.Document {
	t.Helper()
	raw, err := os.ReadFile("testdata/page.html")
	require.NoError(t, err)
	return testutil.ParseHTML(t, string(raw))
}

func newPipeline(doc *goquery.Document, gen *testutil.SequenceGenerator, opts ...engine.Option) (*engine.Pipeline, *host.Page) {
	page := host.NewPage(doc)
	opts = append([]engine.Option{
		engine.WithIDGenerator(gen),
		engine.WithLogger(quietLogger()),
	}, opts...)
	return engine.New(page, opts...), page
}

func TestPipeline_CheckboxScenario(t *testing.T) {
	doc := testutil.ParseHTML(t, `<input type="checkbox">`)
	p, _ := newPipeline(doc, testutil.NewSequenceGenerator(""))

	require.NoError(t, p.Run(doc))

	assert.Equal(t,
		`<input type="checkbox" class="filled-in" id="ma-id-1"/><label for="ma-id-1"></label>`,
		testutil.BodyHTML(t, doc))
}

func TestPipeline_RunIsOneShot(t *testing.T) {
	doc := testutil.ParseHTML(t, `<input type="checkbox">`)
	gen := testutil.NewSequenceGenerator("")
	p, _ := newPipeline(doc, gen)

	assert.False(t, p.HasRun())
	require.NoError(t, p.Run(doc))
	before := testutil.BodyHTML(t, doc)

	err := p.Run(doc)

	assert.ErrorIs(t, err, engine.ErrAlreadyRun)
	assert.True(t, p.HasRun())
	assert.Equal(t, before, testutil.BodyHTML(t, doc))
	assert.Equal(t, 1, gen.Issued())
}

func TestPipeline_Idempotent(t *testing.T) {
	doc := loadPage(t)
	gen := testutil.NewSequenceGenerator("")

	first, _ := newPipeline(doc, gen)
	require.NoError(t, first.Run(doc))
	once := testutil.BodyHTML(t, doc)
	issued := gen.Issued()

	second, page := newPipeline(doc, gen)
	require.NoError(t, second.Run(doc))

	assert.Equal(t, once, testutil.BodyHTML(t, doc))
	assert.Equal(t, issued, gen.Issued(), "no new ids on the second run")
	assert.Len(t, page.FABs(), 0, "no second widget construction")
	assert.Equal(t, "row outer", doc.Find(".row.outer").AttrOr("class", ""), "enclosing grid keeps its classes")
	assert.Equal(t, "col s12 outer", doc.Find(".col.outer").AttrOr("class", ""))
}

func TestPipeline_Page(t *testing.T) {
	doc := loadPage(t)
	p, page := newPipeline(doc, testutil.NewSequenceGenerator(""))

	require.NoError(t, p.Run(doc))

	// Checkables: every checkbox has an id; only the plain one got a new label.
	doc.Find("input[type='checkbox']").Each(func(_ int, s *goquery.Selection) {
		assert.NotEmpty(t, s.AttrOr("id", ""))
	})
	assert.Equal(t, "ma-id-1", doc.Find("input[name='agree']").AttrOr("id", ""))
	assert.Equal(t, "ma-id-2", doc.Find("input[name='active']").AttrOr("id", ""))
	assert.Equal(t, "ma-id-1", doc.Find("input[name='agree']").Next().AttrOr("for", ""))
	assert.True(t, doc.Find("input[name='active']").Next().Is("span.lever"))

	// Labels follow their controls; switch and select wrappers lose input-field.
	assert.True(t, doc.Find("#P1_NAME").Next().Is("label"))
	assert.Equal(t, 1, doc.Find(".ma-switch-container").Length())
	assert.Equal(t, 3, doc.Find(".input-field").Length())

	// FAB and tooltip.
	require.Len(t, page.FABs(), 1)
	assert.Equal(t, "Edit", doc.Find(".fixed-action-btn ul li a.btn-floating").AttrOr("data-tooltip", ""))

	// Cleanups.
	assert.Equal(t, 0, doc.Find(".card-content").Length())
	assert.Equal(t, 0, doc.Find("i[class='']").Length())
	assert.Equal(t, "col s6", doc.Find("div.col").AttrOr("class", ""))
	assert.False(t, doc.Find("#app-sidenav-trigger").HasClass("hide"))
	assert.True(t, doc.Find(".sidenav > li").First().Children().Is(".user-view"))
	assert.Equal(t, "Cat", doc.Find("img").AttrOr("data-caption", ""))

	// Host overrides.
	_, ok := page.DatepickerDefaults()
	assert.True(t, ok)
	assert.NotNil(t, page.StickyTop())
	assert.Equal(t, "- Select -", page.Message(host.MsgSelect))
}

func TestPipeline_EventsAfterRun(t *testing.T) {
	doc := loadPage(t)
	p, page := newPipeline(doc, testutil.NewSequenceGenerator(""))
	require.NoError(t, p.Run(doc))

	p.Events().Trigger(doc, events.Click, doc.Find("#search-open i"), events.Data{})
	assert.False(t, doc.Find(".search-nav-wrapper").HasClass("hide"))
	assert.Equal(t, "P0_SEARCH", page.Focused().AttrOr("id", ""))

	p.Events().Trigger(doc, events.Click, doc.Find(".ma-toast-close"), events.Data{})
	assert.Equal(t, 0, doc.Find(".toast").Length())

	p.Events().Trigger(doc, events.AfterCloseDialog, doc.Find("body"), events.Data{SuccessMessage: "Order saved"})
	assert.Equal(t, []string{"Order saved"}, page.Successes())
}

func TestPipeline_GuardsSkipAbsentWidgets(t *testing.T) {
	doc := testutil.ParseHTML(t, `<p>nothing to see</p>`)
	p, _ := newPipeline(doc, testutil.NewSequenceGenerator(""))

	require.NoError(t, p.Run(doc))

	status := map[string]engine.Status{}
	for _, o := range p.Outcomes() {
		status[o.Rule] = o.Status
	}
	assert.Equal(t, engine.StatusSkipped, status["sidenav"])
	assert.Equal(t, engine.StatusSkipped, status["wizard"])
	assert.Equal(t, engine.StatusSkipped, status["interactive-report"])
	assert.Equal(t, engine.StatusSkipped, status["live-template-options"])
	assert.Equal(t, engine.StatusSkipped, status["fab"])
	assert.Equal(t, engine.StatusApplied, status["checkables"])
	assert.Len(t, p.Outcomes(), len(rules.Default()))
}

func TestPipeline_RecoversFailingRule(t *testing.T) {
	doc := testutil.ParseHTML(t, `<input type="checkbox">`)
	boom := errors.New("boom")
	set := rules.Set{
		{Name: "first", Action: func(c *rules.Context) { c.Find("input").AddClass("one") }},
		{Name: "broken", Action: func(*rules.Context) { panic(boom) }},
		{Name: "nil-action"},
		{Name: "last", Action: func(c *rules.Context) { c.Find("input").AddClass("two") }},
	}
	p, _ := newPipeline(doc, testutil.NewSequenceGenerator(""), engine.WithRules(set))

	err := p.Run(doc)

	require.Error(t, err)
	assert.True(t, engine.IsRuleError(err))
	assert.ErrorIs(t, err, boom)
	ruleErrs := engine.RuleErrors(err)
	require.Len(t, ruleErrs, 2)
	assert.Equal(t, "broken", ruleErrs[0].Rule)
	assert.Equal(t, 2, ruleErrs[0].Step)
	assert.Equal(t, "nil-action", ruleErrs[1].Rule)

	input := doc.Find("input")
	assert.True(t, input.HasClass("one"))
	assert.True(t, input.HasClass("two"), "later rules still run")

	outcomes := p.Outcomes()
	require.Len(t, outcomes, 4)
	assert.Equal(t, engine.StatusFailed, outcomes[1].Status)
	assert.Contains(t, outcomes[1].Error, "boom")
	assert.Equal(t, engine.StatusApplied, outcomes[3].Status)
}

func TestPipeline_WithRulesCopiesSet(t *testing.T) {
	set := rules.Set{{Name: "only", Action: func(*rules.Context) {}}}
	p := engine.New(host.NewPage(testutil.ParseHTML(t, `<p></p>`)), engine.WithRules(set))

	set[0].Name = "mutated"

	assert.Equal(t, []string{"only"}, p.Rules().Names())
}

func TestPipeline_MessagesOverrideDefaults(t *testing.T) {
	doc := testutil.ParseHTML(t, `<div class="a-IRR"><div><input class="a-IRR-search-field"></div></div>`)
	p, page := newPipeline(doc, testutil.NewSequenceGenerator(""),
		engine.WithMessages(map[string]string{host.MsgIGSearch: "Find"}))

	require.NoError(t, p.Run(doc))

	assert.Equal(t, "Find", doc.Find(".a-IRR-search-field").AttrOr("placeholder", ""))
	assert.Equal(t, "- Select -", page.Message(host.MsgSelect))
}

func TestPipeline_ItemPrefix(t *testing.T) {
	doc := testutil.ParseHTML(t, `<div id="R1"><input type="checkbox"></div><div id="R2"><input type="checkbox"></div>`)
	p, _ := newPipeline(doc, testutil.NewSequenceGenerator(""), engine.WithItemPrefix("#R1"))

	require.NoError(t, p.Run(doc))

	assert.Equal(t, "ma-id-1", doc.Find("#R1 input").AttrOr("id", ""))
	_, ok := doc.Find("#R2 input").Attr("id")
	assert.False(t, ok)
}

func TestPipeline_DebugTiming(t *testing.T) {
	tick := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		tick = tick.Add(time.Millisecond)
		return tick
	}

	tests := []struct {
		name   string
		level  host.DebugLevel
		timing bool
	}{
		{name: "off", level: host.LevelOff, timing: false},
		{name: "info", level: host.LevelInfo, timing: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
			doc := testutil.ParseHTML(t, `<input type="checkbox">`)
			page := host.NewPage(doc, host.WithDebugLevel(tt.level))
			p := engine.New(page,
				engine.WithIDGenerator(testutil.NewSequenceGenerator("")),
				engine.WithLogger(logger),
				engine.WithClock(clock),
			)

			require.NoError(t, p.Run(doc))

			out := buf.String()
			assert.Contains(t, out, "rule applied")
			assert.Equal(t, tt.timing, strings.Contains(out, "timer="+engine.TimerRulePrefix+"checkables"))
			assert.Equal(t, tt.timing, strings.Contains(out, "timer="+engine.TimerPipeline+" elapsed="))
		})
	}
}

func TestRewrite(t *testing.T) {
	in := strings.NewReader(`<!DOCTYPE html><html><head></head><body><input type="checkbox"></body></html>`)
	var out bytes.Buffer

	p, err := engine.Rewrite(in, &out, engine.PageHost(), engine.WithIDGenerator(testutil.NewSequenceGenerator("")), engine.WithLogger(quietLogger()))

	require.NoError(t, err)
	require.NotNil(t, p)
	assert.True(t, p.HasRun())
	assert.Equal(t,
		`<!DOCTYPE html><html><head></head><body><input type="checkbox" class="filled-in" id="ma-id-1"/><label for="ma-id-1"></label></body></html>`,
		out.String())
}
