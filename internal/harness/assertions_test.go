package harness

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const assertionMarkup = `<ul id="list">` +
	`<li class="item done" data-id="1">One</li>` +
	`<li class="item" data-id="2"> Two </li>` +
	`</ul>`

func assertionDoc(t *testing.T) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(assertionMarkup))
	require.NoError(t, err)
	return doc
}

func TestEvaluateAssertions(t *testing.T) {
	result := NewResult()
	result.Successes = []string{"Saved"}

	tests := []struct {
		name      string
		assertion Assertion
		wantErr   string
	}{
		{name: "exists", assertion: Assertion{Type: AssertExists, Selector: "li.done"}},
		{name: "exists fails", assertion: Assertion{Type: AssertExists, Selector: "li.open"}, wantErr: "no match"},
		{name: "count", assertion: Assertion{Type: AssertCount, Selector: "li", Count: 2}},
		{name: "count zero", assertion: Assertion{Type: AssertCount, Selector: "li.open", Count: 0}},
		{name: "count fails", assertion: Assertion{Type: AssertCount, Selector: "li", Count: 3}, wantErr: "2 matches"},
		{name: "attr", assertion: Assertion{Type: AssertAttr, Selector: "li", Attr: "data-id", Value: "1"}},
		{name: "attr value differs", assertion: Assertion{Type: AssertAttr, Selector: "li", Attr: "data-id", Value: "2"}, wantErr: `data-id="1"`},
		{name: "attr missing", assertion: Assertion{Type: AssertAttr, Selector: "li", Attr: "title"}, wantErr: "attribute missing"},
		{name: "attr no match", assertion: Assertion{Type: AssertAttr, Selector: "p", Attr: "title"}, wantErr: "no match"},
		{name: "has_class", assertion: Assertion{Type: AssertHasClass, Selector: "li", Class: "item"}},
		{name: "has_class partial", assertion: Assertion{Type: AssertHasClass, Selector: "li", Class: "done"}, wantErr: "1 of 2 matches differ"},
		{name: "has_class no match", assertion: Assertion{Type: AssertHasClass, Selector: "p", Class: "done"}, wantErr: "no match"},
		{name: "not_has_class", assertion: Assertion{Type: AssertNotHasClass, Selector: "li", Class: "open"}},
		{name: "not_has_class no match", assertion: Assertion{Type: AssertNotHasClass, Selector: "p", Class: "open"}},
		{name: "not_has_class fails", assertion: Assertion{Type: AssertNotHasClass, Selector: "li", Class: "done"}, wantErr: `no match has class "done"`},
		{name: "text trimmed", assertion: Assertion{Type: AssertText, Selector: "li[data-id='2']", Text: "Two"}},
		{name: "text fails", assertion: Assertion{Type: AssertText, Selector: "li", Text: "Two"}, wantErr: `text "One"`},
		{name: "success", assertion: Assertion{Type: AssertSuccess, Text: "Saved"}},
		{name: "success fails", assertion: Assertion{Type: AssertSuccess, Text: "Deleted"}, wantErr: `success message "Deleted"`},
		{name: "unknown", assertion: Assertion{Type: "visible", Selector: "li"}, wantErr: `unknown assertion type "visible"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := EvaluateAssertions(assertionDoc(t), result, []Assertion{tt.assertion})

			if tt.wantErr == "" {
				assert.Empty(t, errs)
				return
			}
			require.Len(t, errs, 1)
			assert.Contains(t, errs[0], tt.wantErr)
		})
	}
}

func TestAssertionError_ShowsFirstMatch(t *testing.T) {
	errs := EvaluateAssertions(assertionDoc(t), NewResult(), []Assertion{
		{Type: AssertHasClass, Selector: "li", Class: "done"},
	})

	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], `Assertion failed: has_class "li"`)
	assert.Contains(t, errs[0], `First match:`)
	assert.Contains(t, errs[0], `<li class="item" data-id="2"> Two </li>`)
}

func TestSnippet_Truncates(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`<p>` + strings.Repeat("x", 500) + `</p>`))
	require.NoError(t, err)

	out := snippet(doc.Find("p"))

	assert.Len(t, out, snippetLimit+len("..."))
	assert.True(t, strings.HasSuffix(out, "..."))
}
