// Package dom implements rendering surfaces over real documents: rules are
// kept in a dedicated <style> element and class names could be attached to
// selected elements.
package dom

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"go.uber.org/multierr"

	"fcss/common"
	"fcss/css"
)

const (
	// styleAttr marks style element owned by the engine.
	styleAttr  = "fcss"
	styleValue = "rule"
)

// Document is a stylesheet owning document.
type Document interface {
	InsertRule(rule string, index int) error
	SupportsCustomProperties() bool
	// Rules returns rules of engine style element.
	Rules() []string
	// AddClass appends classes to elements matching selector and returns
	// number of elements changed.
	AddClass(selector, classes string) (int, error)
	// Render writes document.
	Render(w io.Writer) error
}

// Open reads document of requested kind. Memory kind is not a document.
func Open(kind common.SurfaceKind, r io.Reader) (Document, error) {
	var (
		doc Document
		err error
	)
	switch kind {
	case common.SurfaceKindHtml:
		doc, err = ParseHTML(r)
	case common.SurfaceKindXhtml:
		doc, err = ParseXHTML(r)
	default:
		return nil, fmt.Errorf("surface kind %s is not a document", kind)
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// DefaultSelector returns selector of document body in the syntax AddClass
// of the kind expects.
func DefaultSelector(kind common.SurfaceKind) string {
	if kind == common.SurfaceKindXhtml {
		return "//body"
	}
	return "body"
}

// New creates empty document of requested kind.
func New(kind common.SurfaceKind) (Document, error) {
	switch kind {
	case common.SurfaceKindHtml:
		return NewHTML(), nil
	case common.SurfaceKindXhtml:
		return NewXHTML(), nil
	}
	return nil, fmt.Errorf("surface kind %s is not a document", kind)
}

// AddClasses applies several selector -> classes assignments, processing
// all of them and combining errors.
func AddClasses(doc Document, assignments map[string]string) (int, error) {
	var (
		total int
		err   error
	)
	selectors := make([]string, 0, len(assignments))
	for sel := range assignments {
		selectors = append(selectors, sel)
	}
	slices.Sort(selectors)
	for _, sel := range selectors {
		n, e := doc.AddClass(sel, assignments[sel])
		total += n
		err = multierr.Append(err, e)
	}
	return total, err
}

// rules is a rule list shared by document implementations.
type rules []string

func (r *rules) insert(rule string, index int) error {
	if index < 0 || index > len(*r) {
		return fmt.Errorf("insert at %d of %d: %w", index, len(*r), css.ErrIndexSize)
	}
	*r = slices.Insert(*r, index, rule)
	return nil
}

func (r rules) text() string {
	if len(r) == 0 {
		return ""
	}
	return "\n" + strings.Join(r, "\n") + "\n"
}

// parseRules splits style element text written by text() back.
func parseRules(text string) rules {
	var out rules
	for line := range strings.Lines(text) {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// mergeClasses appends classes to existing attribute value skipping
// duplicates.
func mergeClasses(existing, classes string) string {
	have := strings.Fields(existing)
	for _, c := range strings.Fields(classes) {
		if !slices.Contains(have, c) {
			have = append(have, c)
		}
	}
	return strings.Join(have, " ")
}
