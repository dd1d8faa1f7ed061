package dom

import (
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	headSelector  = cascadia.MustCompile("head")
	styleSelector = cascadia.MustCompile(`style[` + styleAttr + `="` + styleValue + `"]`)
)

// HTML is an HTML5 document surface.
type HTML struct {
	doc   *html.Node
	style *html.Node
	rules rules
}

// NewHTML returns empty HTML document.
func NewHTML() *HTML {
	h, err := ParseHTML(strings.NewReader("<!DOCTYPE html><html><head></head><body></body></html>"))
	if err != nil {
		panic(err)
	}
	return h
}

// ParseHTML reads HTML document. Style element from previous run is reused
// and its rules are kept.
func ParseHTML(r io.Reader) (*HTML, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("unable to parse html: %w", err)
	}
	h := &HTML{doc: doc}

	if n := styleSelector.MatchFirst(doc); n != nil {
		var sb strings.Builder
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				sb.WriteString(c.Data)
			}
		}
		h.style, h.rules = n, parseRules(sb.String())
		return h, nil
	}

	// html.Parse always synthesizes head element
	head := headSelector.MatchFirst(doc)
	if head == nil {
		return nil, fmt.Errorf("unable to find head element")
	}
	h.style = &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Style,
		Data:     "style",
		Attr:     []html.Attribute{{Key: styleAttr, Val: styleValue}},
	}
	head.AppendChild(h.style)
	return h, nil
}

// InsertRule implements target.Sheet.
func (h *HTML) InsertRule(rule string, index int) error {
	if err := h.rules.insert(rule, index); err != nil {
		return err
	}
	for c := h.style.FirstChild; c != nil; c = h.style.FirstChild {
		h.style.RemoveChild(c)
	}
	h.style.AppendChild(&html.Node{Type: html.TextNode, Data: h.rules.text()})
	return nil
}

// SupportsCustomProperties implements target.Sheet.
func (h *HTML) SupportsCustomProperties() bool {
	return true
}

// Rules returns rules of engine style element.
func (h *HTML) Rules() []string {
	return append([]string(nil), h.rules...)
}

// AddClass appends classes to elements matching CSS selector.
func (h *HTML) AddClass(selector, classes string) (int, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return 0, fmt.Errorf("bad selector %q: %w", selector, err)
	}
	nodes := sel.MatchAll(h.doc)
	for _, n := range nodes {
		setClass(n, classes)
	}
	return len(nodes), nil
}

func setClass(n *html.Node, classes string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == "class" {
			n.Attr[i].Val = mergeClasses(a.Val, classes)
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: "class", Val: mergeClasses("", classes)})
}

// Render writes document.
func (h *HTML) Render(w io.Writer) error {
	return html.Render(w, h.doc)
}
