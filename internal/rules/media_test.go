package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMedia_MovesCaption(t *testing.T) {
	c, _ := newContext(t, `<div class="apex-materialbox"><a id="p" data-caption="Cat"><img src="c.png"></a></div>`)

	apply(t, c, "media", "media")

	img := c.Find("img")
	assert.True(t, img.HasClass("materialboxed"))
	assert.True(t, img.HasClass("responsive-img"))
	assert.Equal(t, "Cat", img.AttrOr("data-caption", ""))
	_, ok := c.Find("#p").Attr("data-caption")
	assert.False(t, ok)
}

func TestTooltips_CopiedToSiblingIconsAndSpans(t *testing.T) {
	c, _ := newContext(t, `<div><a data-tooltip="Hi"></a><i class="x"></i><span></span><b></b></div><div><a data-tooltip=""></a><i id="none"></i></div>`)

	apply(t, c, "tooltips")

	assert.Equal(t, "Hi", c.Find("i.x").AttrOr("data-tooltip", ""))
	assert.Equal(t, "Hi", c.Find("span").AttrOr("data-tooltip", ""))
	_, ok := c.Find("b").Attr("data-tooltip")
	assert.False(t, ok)
	_, ok = c.Find("#none").Attr("data-tooltip")
	assert.False(t, ok)
}

func TestIcons_RemovesEmptyClassOnly(t *testing.T) {
	c, _ := newContext(t, `<i class="">a</i><i class="material-icons">b</i><i>c</i>`)

	apply(t, c, "icons")

	assert.Equal(t, 2, c.Find("i").Length())
	assert.Equal(t, "bc", c.Find("i").Text())
}
