package host_test

import (
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/roach88/matapex/internal/fab"
	"github.com/roach88/matapex/internal/host"
	"github.com/roach88/matapex/internal/testutil"
)

func TestPage_MessageMissingReturnsKey(t *testing.T) {
	page := host.NewPage(testutil.ParseHTML(t, `<p></p>`))

	assert.Equal(t, "APEX.UNKNOWN", page.Message("APEX.UNKNOWN"))
}

func TestPage_AddMessagesLastWriteWins(t *testing.T) {
	page := host.NewPage(testutil.ParseHTML(t, `<p></p>`))

	page.AddMessages(map[string]string{"GREETING": "Hello"})
	page.AddMessages(map[string]string{"GREETING": "Hi"})

	assert.Equal(t, "Hi", page.Message("GREETING"))
	assert.Equal(t, []string{"GREETING"}, page.MessageKeys())
}

func TestPage_MessageTextIsVerbatim(t *testing.T) {
	page := host.NewPage(testutil.ParseHTML(t, `<p></p>`))

	page.AddMessages(map[string]string{"DONE": "100% %s done"})

	assert.Equal(t, "100% %s done", page.Message("DONE"))
}

func TestPage_MessageLanguage(t *testing.T) {
	page := host.NewPage(testutil.ParseHTML(t, `<p></p>`), host.WithLanguage(language.German))

	page.AddMessages(map[string]string{host.MsgSelect: "- Auswählen -"})

	assert.Equal(t, language.German, page.Language())
	assert.Equal(t, "- Auswählen -", page.Message(host.MsgSelect))
}

func TestPage_RecordsSideEffects(t *testing.T) {
	doc := testutil.ParseHTML(t, `<div id="w"></div><input id="q">`)
	page := host.NewPage(doc, host.WithDebugLevel(host.LevelInfo))

	page.ShowPageSuccess("Saved")
	page.FloatingActionButton(doc.Find("#w"), fab.DefaultConfig)
	page.Focus(doc.Find("#q"))
	page.Focus(doc.Find("#missing"))

	assert.Equal(t, host.LevelInfo, page.DebugLevel())
	assert.Equal(t, []string{"Saved"}, page.Successes())
	require.Len(t, page.FABs(), 1)
	assert.Equal(t, fab.DefaultConfig, page.FABs()[0].Config)
	require.NotNil(t, page.Focused())
	assert.Equal(t, "q", page.Focused().AttrOr("id", ""))
}

func TestPage_Overrides(t *testing.T) {
	doc := testutil.ParseHTML(t, `<header><nav class="top-nav"></nav></header>`)
	page := host.NewPage(doc)

	_, ok := page.DatepickerDefaults()
	assert.False(t, ok)
	assert.Nil(t, page.StickyTop())

	page.SetDatepickerDefaults(host.DatepickerHooks{OnChangeMonthYear: func(int, int) {}})
	page.SetStickyTop(func() *goquery.Selection { return doc.Find("header .top-nav") })

	hooks, ok := page.DatepickerDefaults()
	assert.True(t, ok)
	assert.NotNil(t, hooks.OnChangeMonthYear)
	require.NotNil(t, page.StickyTop())
	assert.Equal(t, 1, page.StickyTop()().Length())
}

func TestPage_DefaultSpinner(t *testing.T) {
	doc := testutil.ParseHTML(t, `<div id="region"></div>`)
	page := host.NewPage(doc)

	first, err := page.Spinner()("#region", host.SpinnerOptions{})
	require.NoError(t, err)
	second, err := page.Spinner()("#region", host.SpinnerOptions{})
	require.NoError(t, err)

	assert.Equal(t, first.Get(0), second.Get(0), "indicator is reused per container")
	assert.Equal(t, 1, doc.Find("#region > span.u-Processing").Length())
	assert.Equal(t, "alert", first.AttrOr("role", ""))
	assert.Equal(t, 1, first.Find("span.u-Processing-spinner").Length())
}

func TestPage_DefaultSpinnerFallsBackToBody(t *testing.T) {
	doc := testutil.ParseHTML(t, `<p></p>`)
	page := host.NewPage(doc)

	s, err := page.Spinner()("#nowhere", host.SpinnerOptions{})
	require.NoError(t, err)

	assert.True(t, s.Parent().Is("body"))
}

func TestParseDebugLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    host.DebugLevel
		wantErr bool
	}{
		{in: "", want: host.LevelOff},
		{in: "off", want: host.LevelOff},
		{in: "Info", want: host.LevelInfo},
		{in: "app_trace", want: host.LevelAppTrace},
		{in: "engine_trace", want: host.LevelEngineTrace},
		{in: "verbose", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := host.ParseDebugLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDebugLevel_String(t *testing.T) {
	assert.Equal(t, "warning", host.LevelWarning.String())
	assert.Equal(t, "level(3)", host.DebugLevel(3).String())
}
