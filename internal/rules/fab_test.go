package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/matapex/internal/dom"
	"github.com/roach88/matapex/internal/fab"
	"github.com/roach88/matapex/internal/testutil"
)

const fabMarkup = `<div id="rb">` +
	`<button class="btn fixed-action-btn fab-position-left fab-direction-left" id="trig"><i class="material-icons">add</i></button>` +
	`<a class="btn" title="Edit" id="b1"><span class="ma-button-label"> Edit </span></a>` +
	`<a class="btn-flat" title="Delete" id="b2"><i class="material-icons">delete</i></a>` +
	`</div>`

func TestFAB_BuildsWidgetStructure(t *testing.T) {
	c, page := newContext(t, fabMarkup)

	apply(t, c, "empty-cleanup", "fab", "fab-tooltips", "fab-relative")
	dom.NormalizeClasses(c.Doc.Selection)

	assert.Equal(t, `<div id="rb">`+
		`<div class="fixed-action-btn fab-position-left">`+
		`<button class="btn fab-direction-left" id="trig"><i class="material-icons">add</i></button>`+
		`<ul>`+
		`<li><a class="btn-floating" title="Edit" id="b1" data-tooltip="Edit" data-position="left"><span class="ma-button-label"> Edit </span></a></li>`+
		`<li><a class="btn-floating" title="Delete" id="b2" data-tooltip="Delete" data-position="left"><i class="material-icons">delete</i></a></li>`+
		`</ul>`+
		`</div>`+
		`</div>`,
		testutil.BodyHTML(t, c.Doc))

	fabs := page.FABs()
	require.Len(t, fabs, 1)
	assert.Equal(t, fab.Config{Position: fab.PositionLeft, Direction: fab.DirectionLeft, HoverEnabled: true}, fabs[0].Config)
	assert.True(t, fabs[0].Wrapper.Is("div.fixed-action-btn"))
}

func TestFAB_SecondRunIsNoop(t *testing.T) {
	c, page := newContext(t, fabMarkup)

	apply(t, c, "fab", "fab-tooltips")
	first := testutil.BodyHTML(t, c.Doc)
	apply(t, c, "fab", "fab-tooltips")

	assert.Equal(t, first, testutil.BodyHTML(t, c.Doc))
	assert.Len(t, page.FABs(), 1)
}

func TestFAB_ToolbarAndAbsolute(t *testing.T) {
	c, page := newContext(t, `<div id="rb"><button class="btn fixed-action-btn fab-position-absolute fab-toolbar fab-open-behavior-click" id="trig"></button></div>`)

	apply(t, c, "fab", "fab-relative")

	wrapper := c.Find("#trig").Parent()
	assert.True(t, wrapper.Is("div"))
	assert.True(t, wrapper.HasClass("fixed-action-btn"))
	assert.True(t, wrapper.HasClass("fab-position-absolute"))
	assert.True(t, wrapper.HasClass("toolbar"))
	assert.True(t, c.Find("#trig").HasClass("fab-toolbar"), "non-position markers stay on the trigger")
	assert.True(t, c.Find("#rb").HasClass("fab-relative"))
	assert.Equal(t, 0, c.Find("#rb ul").Length(), "no floating buttons, no list")

	require.Len(t, page.FABs(), 1)
	cfg := page.FABs()[0].Config
	assert.False(t, cfg.HoverEnabled)
	assert.True(t, cfg.ToolbarEnabled)
}

func TestFAB_TriggerAfterButtons(t *testing.T) {
	c, _ := newContext(t, `<div id="rb"><a class="btn" id="b1">One</a><button class="btn fixed-action-btn" id="trig"></button></div>`)

	apply(t, c, "fab")

	children := c.Find("#rb > div.fixed-action-btn").Children()
	require.Equal(t, 2, children.Length())
	assert.True(t, children.Eq(0).Is("ul"))
	assert.Equal(t, "trig", children.Eq(1).AttrOr("id", ""))
}

func TestFAB_BuiltWrapperIsLeftAlone(t *testing.T) {
	markup := `<div class="fixed-action-btn"><a class="btn-floating btn-large"></a><ul><li><a class="btn-floating"></a></li></ul></div>`
	c, page := newContext(t, markup)
	before := testutil.BodyHTML(t, c.Doc)

	apply(t, c, "fab")

	assert.Equal(t, before, testutil.BodyHTML(t, c.Doc))
	assert.Empty(t, page.FABs())
}

func TestFABTooltips_EmptyTextSkipped(t *testing.T) {
	c, _ := newContext(t, `<div class="fixed-action-btn"><ul><li><a class="btn-floating" title=""><span class="ma-button-label"></span></a></li></ul></div>`)

	apply(t, c, "fab-tooltips")

	_, ok := c.Find(".btn-floating").Attr("data-tooltip")
	assert.False(t, ok)
	_, ok = c.Find(".btn-floating").Attr("data-position")
	assert.False(t, ok)
}
