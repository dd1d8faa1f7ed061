package dom

import (
	"fmt"
	"io"

	"github.com/beevik/etree"
)

// XHTML is an XML serialized document surface, as used by e-book readers.
// Their rendering engines are old and do not understand custom properties,
// so styles have to be baked.
type XHTML struct {
	doc   *etree.Document
	style *etree.Element
	rules rules
}

// NewXHTML returns empty XHTML document.
func NewXHTML() *XHTML {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("html")
	root.CreateAttr("xmlns", "http://www.w3.org/1999/xhtml")
	head := root.CreateElement("head")
	root.CreateElement("body")

	x := &XHTML{doc: doc}
	x.style = newStyleElement(head)
	return x
}

// ParseXHTML reads XHTML document. Style element from previous run is
// reused and its rules are kept.
func ParseXHTML(r io.Reader) (*XHTML, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("unable to parse xhtml: %w", err)
	}
	x := &XHTML{doc: doc}

	if el := doc.FindElement(`//style[@` + styleAttr + `='` + styleValue + `']`); el != nil {
		x.style, x.rules = el, parseRules(el.Text())
		return x, nil
	}

	head := doc.FindElement("//head")
	if head == nil {
		root := doc.Root()
		if root == nil {
			return nil, fmt.Errorf("xhtml document has no root element")
		}
		head = etree.NewElement("head")
		root.InsertChildAt(0, head)
	}
	x.style = newStyleElement(head)
	return x, nil
}

func newStyleElement(head *etree.Element) *etree.Element {
	style := head.CreateElement("style")
	style.CreateAttr("type", "text/css")
	style.CreateAttr(styleAttr, styleValue)
	return style
}

// InsertRule implements target.Sheet.
func (x *XHTML) InsertRule(rule string, index int) error {
	if err := x.rules.insert(rule, index); err != nil {
		return err
	}
	x.style.SetText(x.rules.text())
	return nil
}

// SupportsCustomProperties implements target.Sheet.
func (x *XHTML) SupportsCustomProperties() bool {
	return false
}

// Rules returns rules of engine style element.
func (x *XHTML) Rules() []string {
	return append([]string(nil), x.rules...)
}

// AddClass appends classes to elements matching etree path
// ("//div[@id='main']").
func (x *XHTML) AddClass(path, classes string) (int, error) {
	p, err := etree.CompilePath(path)
	if err != nil {
		return 0, fmt.Errorf("bad path %q: %w", path, err)
	}
	elements := x.doc.FindElementsPath(p)
	for _, el := range elements {
		el.CreateAttr("class", mergeClasses(el.SelectAttrValue("class", ""), classes))
	}
	return len(elements), nil
}

// Render writes document.
func (x *XHTML) Render(w io.Writer) error {
	_, err := x.doc.WriteTo(w)
	return err
}
