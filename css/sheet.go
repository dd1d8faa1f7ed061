package css

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
)

// ErrIndexSize is returned when rule is inserted outside of the sheet bounds.
var ErrIndexSize = errors.New("rule index is out of range")

// Sheet is an in-memory stylesheet: an ordered list of rule texts. It is
// what headless and server side rendering surfaces write into.
// NOTE: not to be used concurrently, owners serialize access.
type Sheet struct {
	rules []string
}

// NewSheet returns empty stylesheet.
func NewSheet() *Sheet {
	return &Sheet{}
}

// InsertRule inserts rule text at index, shifting following rules.
func (s *Sheet) InsertRule(rule string, index int) error {
	if index < 0 || index > len(s.rules) {
		return fmt.Errorf("insert at %d of %d: %w", index, len(s.rules), ErrIndexSize)
	}
	s.rules = slices.Insert(s.rules, index, rule)
	return nil
}

// SupportsCustomProperties is always true for in-memory sheets, their text
// is meant for modern browsers.
func (s *Sheet) SupportsCustomProperties() bool {
	return true
}

// Len returns number of rules.
func (s *Sheet) Len() int {
	return len(s.rules)
}

// Rules returns copy of rule texts in sheet order.
func (s *Sheet) Rules() []string {
	return slices.Clone(s.rules)
}

// WriteTo writes the stylesheet to w, one rule per line, implementing
// io.WriterTo.
func (s *Sheet) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, rule := range s.rules {
		n, err := fmt.Fprintln(w, rule)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// String returns the CSS text of the stylesheet.
func (s *Sheet) String() string {
	var sb strings.Builder
	s.WriteTo(&sb) //nolint:errcheck
	return sb.String()
}
