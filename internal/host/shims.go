package host

import (
	"maps"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Message keys registered by RegisterMessages.
const (
	MsgSelect   = "PE.SELECT"
	MsgIGSearch = "APEX.IG.SEARCH"
)

// DefaultMessages are the catalog entries the runtime is missing.
// PE.SELECT is needed by the theme roller.
var DefaultMessages = map[string]string{
	MsgSelect:   "- Select -",
	MsgIGSearch: "Search",
}

// RegisterMessages adds DefaultMessages to the host catalog.
func RegisterMessages(h Host) {
	h.AddMessages(maps.Clone(DefaultMessages))
}

// ProcessingClass marks the indicator element created by the spinner factory.
const ProcessingClass = "u-Processing"

// Spinner layer colours, in rendering order, for the four-colour preloader.
var LayerColors = []string{"blue", "red", "yellow", "green"}

// WrapSpinner returns a SpinnerFunc that calls orig and decorates its result
// with a Materialize preloader.
//
// The element and error returned by orig are passed through unchanged. When
// orig succeeds and no indicator for the container is tagged yet, the returned
// element gets data-container and a preloader-wrapper holding one layer per
// colour. Later calls for the same container add nothing.
func WrapSpinner(doc *goquery.Document, orig SpinnerFunc) SpinnerFunc {
	return func(container string, opts SpinnerOptions) (*goquery.Selection, error) {
		spinner, err := orig(container, opts)
		if err != nil || spinner == nil || spinner.Length() == 0 {
			return spinner, err
		}
		if tagged(doc, container) {
			return spinner, nil
		}
		spinner.SetAttr("data-container", container)
		spinner.AppendNodes(preloader(opts))
		return spinner, nil
	}
}

func tagged(doc *goquery.Document, container string) bool {
	return doc.Find("." + ProcessingClass).FilterFunction(func(_ int, s *goquery.Selection) bool {
		v, ok := s.Attr("data-container")
		return ok && v == container
	}).Length() > 0
}

func preloader(opts SpinnerOptions) *html.Node {
	class := "preloader-wrapper active"
	if opts.Size != "" {
		class = "preloader-wrapper " + opts.Size + " active"
	}
	wrapper := div(class)
	if opts.Color != "" {
		wrapper.AppendChild(spinnerLayer(opts.Color + "-only"))
		return wrapper
	}
	for _, c := range LayerColors {
		wrapper.AppendChild(spinnerLayer(c))
	}
	return wrapper
}

func spinnerLayer(color string) *html.Node {
	layer := div("spinner-layer spinner-" + color)
	layer.AppendChild(withCircle(div("circle-clipper left")))
	layer.AppendChild(withCircle(div("gap-patch")))
	layer.AppendChild(withCircle(div("circle-clipper right")))
	return layer
}

func withCircle(n *html.Node) *html.Node {
	n.AppendChild(div("circle"))
	return n
}

func div(class string) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
		Attr:     []html.Attribute{{Key: "class", Val: class}},
	}
}
