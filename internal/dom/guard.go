package dom

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Exists reports whether at least one element in the document carries markerClass.
//
// This is the presence guard used to skip whole rule groups on pages that do not
// contain a widget. It walks the node tree directly and stops at the first hit;
// it never compiles a selector.
func Exists(doc *goquery.Document, markerClass string) bool {
	if doc == nil || markerClass == "" {
		return false
	}
	for _, n := range doc.Nodes {
		if findClass(n, markerClass) {
			return true
		}
	}
	return false
}

func findClass(n *html.Node, class string) bool {
	if n.Type == html.ElementNode && hasClassToken(n, class) {
		return true
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if findClass(c, class) {
			return true
		}
	}
	return false
}

func hasClassToken(n *html.Node, class string) bool {
	for _, a := range n.Attr {
		if a.Namespace != "" || a.Key != "class" {
			continue
		}
		for _, tok := range strings.Fields(a.Val) {
			if tok == class {
				return true
			}
		}
	}
	return false
}
