package host

import (
	"errors"
	"log/slog"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/roach88/matapex/internal/fab"
)

// ErrNoContainer is returned by the default spinner when neither the requested
// container nor <body> exists.
var ErrNoContainer = errors.New("spinner container not found")

// ConstructedFAB records one floating-action-button constructor call.
type ConstructedFAB struct {
	Wrapper *goquery.Selection
	Config  fab.Config
}

// Page is an in-memory Host bound to one parsed document.
//
// It keeps the message catalog in a golang.org/x/text catalog and records every
// side effect the pipeline asks for (success messages, constructed FABs, focus,
// installed overrides) so they can be inspected afterwards.
//
// Page is not safe for concurrent use; a page is rewritten by one goroutine.
type Page struct {
	doc    *goquery.Document
	tag    language.Tag
	level  DebugLevel
	logger *slog.Logger

	catalog *catalog.Builder
	keys    map[string]struct{}

	spinner    SpinnerFunc
	datepicker *DatepickerHooks
	stickyTop  StickyTopFunc

	successes []string
	fabs      []ConstructedFAB
	focused   *goquery.Selection
}

// PageOption configures a Page.
type PageOption func(*Page)

// WithLanguage sets the catalog language. Default: language.Und.
func WithLanguage(tag language.Tag) PageOption {
	return func(p *Page) {
		p.tag = tag
	}
}

// WithDebugLevel sets the reported debug level. Default: LevelOff.
func WithDebugLevel(level DebugLevel) PageOption {
	return func(p *Page) {
		p.level = level
	}
}

// WithPageLogger sets the logger used for host notifications.
func WithPageLogger(logger *slog.Logger) PageOption {
	return func(p *Page) {
		p.logger = logger
	}
}

// NewPage creates a host for doc. The default spinner is installed.
func NewPage(doc *goquery.Document, opts ...PageOption) *Page {
	p := &Page{
		doc:    doc,
		tag:    language.Und,
		logger: slog.Default(),
		keys:   make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.catalog = catalog.NewBuilder(catalog.Fallback(p.tag))
	p.spinner = p.defaultSpinner
	return p
}

// Document returns the document the page is bound to.
func (p *Page) Document() *goquery.Document {
	return p.doc
}

// Language returns the catalog language.
func (p *Page) Language() language.Tag {
	return p.tag
}

// AddMessages implements Host.
func (p *Page) AddMessages(messages map[string]string) {
	for key, text := range messages {
		// Catalog strings are format strings; escape verbs so text is verbatim.
		if err := p.catalog.SetString(p.tag, key, strings.ReplaceAll(text, "%", "%%")); err != nil {
			p.logger.Warn("message not registered", "key", key, "error", err)
			continue
		}
		p.keys[key] = struct{}{}
	}
}

// Message implements Host.
func (p *Page) Message(key string) string {
	if _, ok := p.keys[key]; !ok {
		return key
	}
	return message.NewPrinter(p.tag, message.Catalog(p.catalog)).Sprintf(key)
}

// MessageKeys returns the registered keys, sorted.
func (p *Page) MessageKeys() []string {
	keys := make([]string, 0, len(p.keys))
	for k := range p.keys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ShowPageSuccess implements Host.
func (p *Page) ShowPageSuccess(text string) {
	p.logger.Info("page success", "text", text)
	p.successes = append(p.successes, text)
}

// Successes returns the success messages shown so far.
func (p *Page) Successes() []string {
	return append([]string(nil), p.successes...)
}

// DebugLevel implements Host.
func (p *Page) DebugLevel() DebugLevel {
	return p.level
}

// Spinner implements Host.
func (p *Page) Spinner() SpinnerFunc {
	return p.spinner
}

// SetSpinner implements Host.
func (p *Page) SetSpinner(fn SpinnerFunc) {
	p.spinner = fn
}

// SetDatepickerDefaults implements Host.
func (p *Page) SetDatepickerDefaults(hooks DatepickerHooks) {
	p.datepicker = &hooks
}

// DatepickerDefaults returns the installed hooks, if any.
func (p *Page) DatepickerDefaults() (DatepickerHooks, bool) {
	if p.datepicker == nil {
		return DatepickerHooks{}, false
	}
	return *p.datepicker, true
}

// SetStickyTop implements Host.
func (p *Page) SetStickyTop(fn StickyTopFunc) {
	p.stickyTop = fn
}

// StickyTop returns the installed sticky-top function, or nil.
func (p *Page) StickyTop() StickyTopFunc {
	return p.stickyTop
}

// FloatingActionButton implements Host.
func (p *Page) FloatingActionButton(wrapper *goquery.Selection, cfg fab.Config) {
	p.fabs = append(p.fabs, ConstructedFAB{Wrapper: wrapper, Config: cfg})
}

// FABs returns the constructor calls made so far, in call order.
func (p *Page) FABs() []ConstructedFAB {
	return append([]ConstructedFAB(nil), p.fabs...)
}

// Focus implements Host.
func (p *Page) Focus(sel *goquery.Selection) {
	if sel.Length() == 0 {
		return
	}
	p.focused = sel.First()
}

// Focused returns the element that last received focus, or nil.
func (p *Page) Focused() *goquery.Selection {
	return p.focused
}

// defaultSpinner appends the APEX processing indicator to container, reusing
// the indicator already shown there.
func (p *Page) defaultSpinner(container string, _ SpinnerOptions) (*goquery.Selection, error) {
	target := p.doc.Find("body")
	if container != "" {
		if c := p.doc.Find(container).First(); c.Length() > 0 {
			target = c
		}
	}
	if target.Length() == 0 {
		return nil, ErrNoContainer
	}
	if existing := target.ChildrenFiltered("span.u-Processing"); existing.Length() > 0 {
		return existing.First(), nil
	}

	target.AppendNodes(processingNode())
	return target.ChildrenFiltered("span.u-Processing").Last(), nil
}

func processingNode() *html.Node {
	outer := &html.Node{
		Type:     html.ElementNode,
		Data:     "span",
		DataAtom: atom.Span,
		Attr: []html.Attribute{
			{Key: "class", Val: "u-Processing"},
			{Key: "role", Val: "alert"},
		},
	}
	outer.AppendChild(&html.Node{
		Type:     html.ElementNode,
		Data:     "span",
		DataAtom: atom.Span,
		Attr:     []html.Attribute{{Key: "class", Val: "u-Processing-spinner"}},
	})
	return outer
}

var _ Host = (*Page)(nil)
