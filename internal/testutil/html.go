package testutil

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

// ParseHTML parses markup into a document, failing the test on error.
// Fragments are accepted; the parser wraps them in html/head/body.
func ParseHTML(t *testing.T, markup string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	require.NoError(t, err)
	return doc
}

// BodyHTML renders the inner HTML of <body>, failing the test on error.
func BodyHTML(t *testing.T, doc *goquery.Document) string {
	t.Helper()
	out, err := doc.Find("body").Html()
	require.NoError(t, err)
	return out
}
