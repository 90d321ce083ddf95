package dom

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RemoveIfEmpty removes every element of sel whose trimmed text is empty and
// which has no element children. An element holding only whitespace and at
// least one (possibly empty) child element is kept.
//
// Returns the removed elements (detached from the document).
func RemoveIfEmpty(sel *goquery.Selection) *goquery.Selection {
	return sel.FilterFunction(func(_ int, s *goquery.Selection) bool {
		return isBlank(s) && s.Children().Length() == 0
	}).Remove()
}

// RemoveIfEmptyOrWhitespace is the looser variant of RemoveIfEmpty: it removes
// every element of sel whose trimmed text is empty, whatever its children.
func RemoveIfEmptyOrWhitespace(sel *goquery.Selection) *goquery.Selection {
	return sel.FilterFunction(func(_ int, s *goquery.Selection) bool {
		return isBlank(s)
	}).Remove()
}

func isBlank(s *goquery.Selection) bool {
	return strings.TrimSpace(s.Text()) == ""
}

// UnwrapInto promotes the contents of every child element to be direct children
// of parent, appended in document order, and drops the emptied wrappers.
//
// Only the first node of parent is used as the target so that content is never
// cloned across several parents.
func UnwrapInto(parent, child *goquery.Selection) {
	if parent.Length() == 0 || child.Length() == 0 {
		return
	}
	target := parent.First()
	child.Each(func(_ int, c *goquery.Selection) {
		target.AppendSelection(c.Contents())
		c.Remove()
	})
}

// MoveToEnd moves every element of sel to be the last child of its own parent.
// Relative order among moved siblings is preserved.
func MoveToEnd(sel *goquery.Selection) {
	sel.Each(func(_ int, s *goquery.Selection) {
		p := s.Parent()
		if p.Length() == 0 {
			return
		}
		p.AppendSelection(s)
	})
}

// AdoptSiblings moves the element siblings of every element of sel inside it,
// ahead of its existing content.
func AdoptSiblings(sel *goquery.Selection) {
	sel.Each(func(_ int, s *goquery.Selection) {
		sibs := s.Siblings()
		if sibs.Length() == 0 {
			return
		}
		s.PrependSelection(sibs)
	})
}

// EnsureIdentity gives every element of sel that has no (or an empty) id a fresh
// id from gen. Existing ids are left untouched.
//
// Returns the id of each element, in selection order.
func EnsureIdentity(sel *goquery.Selection, gen IDGenerator) []string {
	ids := make([]string, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		id, ok := s.Attr("id")
		if !ok || id == "" {
			id = gen.NewID()
			s.SetAttr("id", id)
		}
		ids = append(ids, id)
	})
	return ids
}

// Relabel inserts an empty <label for=forID> immediately after each element of
// sel, unless the element is already followed by a label-like element: a
// <label>, or a <span class="lever"> (switch component).
//
// The check is structural (tag and class), never by content, so running it
// again on its own output inserts nothing.
//
// Returns the number of labels inserted.
func Relabel(sel *goquery.Selection, forID string) int {
	inserted := 0
	sel.Each(func(_ int, s *goquery.Selection) {
		if HasAdjacentLabel(s) {
			return
		}
		s.AfterNodes(newLabel(forID))
		inserted++
	})
	return inserted
}

// HasAdjacentLabel reports whether the next element sibling of s is a label or
// a switch lever.
func HasAdjacentLabel(s *goquery.Selection) bool {
	next := s.Next()
	if next.Length() == 0 {
		return false
	}
	return next.Is("label") || next.Is("span.lever")
}

func newLabel(forID string) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     "label",
		DataAtom: atom.Label,
		Attr:     []html.Attribute{{Key: "for", Val: forID}},
	}
}

// IgnoreClone returns a detached copy of sel with every descendant matching
// selector removed. With an empty selector all element children are dropped,
// leaving only the direct text.
func IgnoreClone(sel *goquery.Selection, selector string) *goquery.Selection {
	clone := sel.Clone()
	if selector == "" {
		clone.Children().Remove()
		return clone
	}
	clone.Find(selector).Remove()
	return clone
}

// NormalizeClasses rewrites every class attribute under root as its tokens
// joined by single spaces, in their original order. Empty class attributes are
// kept.
//
// Returns the number of attributes rewritten.
func NormalizeClasses(root *goquery.Selection) int {
	changed := 0
	for _, n := range root.Nodes {
		changed += normalizeClasses(n)
	}
	return changed
}

func normalizeClasses(n *html.Node) int {
	changed := 0
	if n.Type == html.ElementNode {
		for i := range n.Attr {
			if n.Attr[i].Namespace != "" || n.Attr[i].Key != "class" {
				continue
			}
			tidy := strings.Join(strings.Fields(n.Attr[i].Val), " ")
			if tidy != n.Attr[i].Val {
				n.Attr[i].Val = tidy
				changed++
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		changed += normalizeClasses(c)
	}
	return changed
}
