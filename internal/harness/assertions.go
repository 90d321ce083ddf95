package harness

import (
	"fmt"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// snippetLimit caps the markup shown in an AssertionError.
const snippetLimit = 240

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string // Assertion type for categorization
	Selector string // Selector under test, if any
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
	Snippet  string // Markup of the first match, truncated
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s", e.Type)
	if e.Selector != "" {
		fmt.Fprintf(&buf, " %q", e.Selector)
	}
	buf.WriteString("\n")

	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if e.Snippet != "" {
		fmt.Fprintf(&buf, "\nFirst match:\n  %s\n", e.Snippet)
	}

	return buf.String()
}

// EvaluateAssertions checks every assertion against doc and result and
// returns one message per failure.
func EvaluateAssertions(doc *goquery.Document, result *Result, assertions []Assertion) []string {
	var errors []string

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertExists:
			err = assertExists(doc, assertion)
		case AssertCount:
			err = assertCount(doc, assertion)
		case AssertAttr:
			err = assertAttr(doc, assertion)
		case AssertHasClass:
			err = assertClass(doc, assertion, true)
		case AssertNotHasClass:
			err = assertClass(doc, assertion, false)
		case AssertText:
			err = assertText(doc, assertion)
		case AssertSuccess:
			err = assertSuccess(result, assertion)
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}

func assertExists(doc *goquery.Document, a Assertion) error {
	if doc.Find(a.Selector).Length() > 0 {
		return nil
	}
	return &AssertionError{
		Type:     AssertExists,
		Selector: a.Selector,
		Expected: "at least one match",
		Actual:   "no match",
	}
}

func assertCount(doc *goquery.Document, a Assertion) error {
	sel := doc.Find(a.Selector)
	if sel.Length() == a.Count {
		return nil
	}
	return &AssertionError{
		Type:     AssertCount,
		Selector: a.Selector,
		Expected: fmt.Sprintf("%d matches", a.Count),
		Actual:   fmt.Sprintf("%d matches", sel.Length()),
		Snippet:  snippet(sel),
	}
}

func assertAttr(doc *goquery.Document, a Assertion) error {
	sel := doc.Find(a.Selector).First()
	if sel.Length() == 0 {
		return &AssertionError{
			Type:     AssertAttr,
			Selector: a.Selector,
			Expected: fmt.Sprintf("%s=%q", a.Attr, a.Value),
			Actual:   "no match",
		}
	}

	val, ok := sel.Attr(a.Attr)
	if ok && val == a.Value {
		return nil
	}
	actual := "attribute missing"
	if ok {
		actual = fmt.Sprintf("%s=%q", a.Attr, val)
	}
	return &AssertionError{
		Type:     AssertAttr,
		Selector: a.Selector,
		Expected: fmt.Sprintf("%s=%q", a.Attr, a.Value),
		Actual:   actual,
		Snippet:  snippet(sel),
	}
}

// assertClass checks that every match has (want) or lacks (!want) the class.
// An empty selection fails has_class and passes not_has_class.
func assertClass(doc *goquery.Document, a Assertion, want bool) error {
	sel := doc.Find(a.Selector)
	typ := AssertHasClass
	if !want {
		typ = AssertNotHasClass
	}

	if want && sel.Length() == 0 {
		return &AssertionError{
			Type:     typ,
			Selector: a.Selector,
			Expected: fmt.Sprintf("class %q", a.Class),
			Actual:   "no match",
		}
	}

	offending := sel.FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.HasClass(a.Class) != want
	})
	if offending.Length() == 0 {
		return nil
	}

	expected := fmt.Sprintf("every match has class %q", a.Class)
	if !want {
		expected = fmt.Sprintf("no match has class %q", a.Class)
	}
	return &AssertionError{
		Type:     typ,
		Selector: a.Selector,
		Expected: expected,
		Actual:   fmt.Sprintf("%d of %d matches differ", offending.Length(), sel.Length()),
		Snippet:  snippet(offending),
	}
}

func assertText(doc *goquery.Document, a Assertion) error {
	sel := doc.Find(a.Selector).First()
	if sel.Length() == 0 {
		return &AssertionError{
			Type:     AssertText,
			Selector: a.Selector,
			Expected: fmt.Sprintf("text %q", a.Text),
			Actual:   "no match",
		}
	}

	text := strings.TrimSpace(sel.Text())
	if text == a.Text {
		return nil
	}
	return &AssertionError{
		Type:     AssertText,
		Selector: a.Selector,
		Expected: fmt.Sprintf("text %q", a.Text),
		Actual:   fmt.Sprintf("text %q", text),
		Snippet:  snippet(sel),
	}
}

func assertSuccess(result *Result, a Assertion) error {
	if slices.Contains(result.Successes, a.Text) {
		return nil
	}
	return &AssertionError{
		Type:     AssertSuccess,
		Expected: fmt.Sprintf("success message %q", a.Text),
		Actual:   fmt.Sprintf("shown %q", result.Successes),
	}
}

func snippet(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return ""
	}
	out, err := goquery.OuterHtml(sel.First())
	if err != nil {
		return ""
	}
	if len(out) > snippetLimit {
		out = out[:snippetLimit] + "..."
	}
	return out
}
