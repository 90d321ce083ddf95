package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/matapex/internal/testutil"
)

func TestGrid_DropsDefaultWidth(t *testing.T) {
	c, _ := newContext(t, `<div id="a" class="col s12 s6"></div><div id="b" class="col s12"></div>`)

	apply(t, c, "grid")

	assert.False(t, c.Find("#a").HasClass("s12"))
	assert.True(t, c.Find("#a").HasClass("s6"))
	assert.True(t, c.Find("#b").HasClass("s12"))
}

func TestEmptyCleanup(t *testing.T) {
	c, _ := newContext(t, `
		<div class="card"><div class="card-content">  </div><div class="card-action"><a></a></div></div>
		<span class="badge"></span>
		<div class="ma-region-header"><span> </span></div>
		<div class="ma-region-buttons"><button>Go</button></div>`)

	apply(t, c, "empty-cleanup")

	assert.Equal(t, 0, c.Find(".card-content").Length())
	assert.Equal(t, 1, c.Find(".card-action").Length(), "element children keep it")
	assert.Equal(t, 0, c.Find("span.badge").Length())
	assert.Equal(t, 0, c.Find(".ma-region-header").Length(), "whitespace-only is removed regardless of children")
	assert.Equal(t, 1, c.Find(".ma-region-buttons").Length())
}

func TestSwitches(t *testing.T) {
	c, _ := newContext(t, `
		<div class="input-field" id="sw"><div class="switch"></div></div>
		<div class="input-field" id="sel"><select></select></div>
		<div class="input-field" id="txt"><input></div>`)

	apply(t, c, "switches")

	assert.True(t, c.Find("#sw").HasClass("ma-switch-container"))
	assert.False(t, c.Find("#sw").HasClass("input-field"))
	assert.False(t, c.Find("#sel").HasClass("input-field"))
	assert.True(t, c.Find("#txt").HasClass("input-field"))
}

func TestParallax_ClearsGridClasses(t *testing.T) {
	c, _ := newContext(t, `<div class="row" id="r"><div class="col s12" id="c"><div class="parallax-container"></div></div></div>`)

	apply(t, c, "parallax")

	cls, ok := c.Find("#c").Attr("class")
	assert.True(t, ok)
	assert.Empty(t, cls)
	assert.Empty(t, c.Find("#r").AttrOr("class", "x"))
}

func TestParallax_NestedGridIsIdempotent(t *testing.T) {
	c, _ := newContext(t, `
		<div class="row outer" id="ro"><div class="col s12 outer" id="co">
		  <div class="row inner" id="ri"><div class="col s6 inner" id="ci">
		    <div class="parallax-container"></div>
		    <div class="parallax-container"></div>
		  </div></div>
		</div></div>`)

	apply(t, c, "parallax")
	once := testutil.BodyHTML(t, c.Doc)
	apply(t, c, "parallax")

	assert.Equal(t, once, testutil.BodyHTML(t, c.Doc))
	assert.Empty(t, c.Find("#ci").AttrOr("class", "x"))
	assert.Empty(t, c.Find("#ri").AttrOr("class", "x"))
	assert.Equal(t, "col s12 outer", c.Find("#co").AttrOr("class", ""))
	assert.Equal(t, "row outer", c.Find("#ro").AttrOr("class", ""))
}

func TestDisplayOnly(t *testing.T) {
	c, _ := newContext(t, `<div><label>Name</label><span class="display_only">Jane</span></div>`)

	apply(t, c, "display-only")

	assert.True(t, c.Find("label").HasClass("active"))
}

func TestCheckableGroups(t *testing.T) {
	c, _ := newContext(t, `<div class="input-field" id="f"><div class="checkbox_group"></div><label>Pick</label></div>`)

	apply(t, c, "checkable-groups")

	label := c.Find("label")
	assert.True(t, label.HasClass("active"))
	assert.True(t, label.HasClass("label-block"))
	assert.False(t, c.Find("#f").HasClass("input-field"))
}

func TestTextarea(t *testing.T) {
	c, _ := newContext(t, `
		<div class="field">
		  <label for="t">Notes</label>
		  <div class="textarea"><textarea id="t" class="textarea"></textarea></div>
		  <div><span id="t_CHAR_COUNTER">0</span></div>
		</div>`)

	apply(t, c, "textarea")
	apply(t, c, "textarea")

	wrapper := c.Find("div.textarea")
	children := wrapper.Children()
	require.Equal(t, 3, children.Length())
	assert.True(t, children.Eq(0).Is("label"))
	assert.True(t, children.Eq(1).Is("div"))
	assert.True(t, children.Eq(2).Is("textarea"))
	assert.True(t, c.Find("textarea").HasClass("materialize-textarea"))
	assert.True(t, c.Find("#t_CHAR_COUNTER").Parent().HasClass("character-counter"))
	assert.Equal(t, 0, c.Find("textarea").Children().Length())
}

func TestPopupLOV(t *testing.T) {
	c, _ := newContext(t, `<div id="p"><input class="lov"></div>`)

	apply(t, c, "popup-lov")

	assert.True(t, c.Find("#p").HasClass("ma-popuplov"))
}
