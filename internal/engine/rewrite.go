package engine

import (
	"fmt"
	"io"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/multierr"
	"golang.org/x/net/html"

	"github.com/roach88/matapex/internal/host"
)

// HostFactory builds the host for a freshly parsed document.
type HostFactory func(doc *goquery.Document) host.Host

// PageHost is a HostFactory producing an in-memory host.Page.
func PageHost(opts ...host.PageOption) HostFactory {
	return func(doc *goquery.Document) host.Host {
		return host.NewPage(doc, opts...)
	}
}

// Rewrite parses an HTML document from r, runs a new pipeline over it and
// renders the result to w.
//
// Rule failures do not stop rendering: the output is written and the rule
// errors are returned alongside any render error. The pipeline is returned so
// callers can inspect outcomes and trigger events.
func Rewrite(r io.Reader, w io.Writer, newHost HostFactory, opts ...Option) (*Pipeline, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	p := New(newHost(doc), opts...)
	runErr := p.Run(doc)

	if err := Render(w, doc); err != nil {
		return p, multierr.Append(runErr, err)
	}
	return p, runErr
}

// Render writes the whole document, doctype included.
func Render(w io.Writer, doc *goquery.Document) error {
	for _, n := range doc.Nodes {
		if err := html.Render(w, n); err != nil {
			return fmt.Errorf("render document: %w", err)
		}
	}
	return nil
}
