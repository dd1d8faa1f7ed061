// Package tokens gives style functions access to a nested design-token table.
//
// Style functions never read the table directly. They receive an Accessor
// and ask it for a token by path. Depending on the runtime mode the accessor
// either returns the concrete leaf value (baked) or a reference to a CSS
// custom property that the browser resolves at paint time (variables).
package tokens

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"

	"github.com/maruel/natural"
)

// DefaultPrefix is the custom property namespace used for token variables.
const DefaultPrefix = "theme"

var tableSeq atomic.Uint64

// Table is an immutable nested design-token table. Inner nodes are
// map[string]any, leaves are style primitives (strings and numbers).
//
// Tables are compared by identity: caches keyed by a table are only valid for
// that exact table, so a changed theme must be a new Table.
type Table struct {
	id     uint64
	values map[string]any

	fingerprint func() string
}

// NewTable wraps values. The map is not copied and must not be modified
// afterwards.
func NewTable(values map[string]any) *Table {
	if values == nil {
		values = map[string]any{}
	}
	t := &Table{id: tableSeq.Add(1), values: values}
	t.fingerprint = sync.OnceValue(t.computeFingerprint)
	return t
}

// Fingerprint identifies table content. Unlike ID it is stable across
// processes, so maps baked from a table could be stored and recognized
// later.
func (t *Table) Fingerprint() string {
	if t == nil {
		return NewTable(nil).Fingerprint()
	}
	if t.fingerprint == nil {
		return t.computeFingerprint()
	}
	return t.fingerprint()
}

func (t *Table) computeFingerprint() string {
	h := xxhash.New()
	t.Walk(func(path []string, value any) {
		h.WriteString(strings.Join(path, "."))
		h.WriteString("=")
		if text, ok := primitiveText(value); ok {
			h.WriteString(text)
		}
		h.WriteString(";")
	})
	return strconv.FormatUint(h.Sum64(), 36)
}

// ID returns a process unique identifier of the table.
func (t *Table) ID() uint64 {
	if t == nil {
		return 0
	}
	return t.id
}

// Lookup walks path and returns the node found there.
func (t *Table) Lookup(path ...string) (any, bool) {
	if t == nil || len(path) == 0 {
		return nil, false
	}
	var node any = t.values
	for _, key := range path {
		m, ok := asMap(node)
		if !ok {
			return nil, false
		}
		if node, ok = m[key]; !ok {
			return nil, false
		}
	}
	return node, true
}

// Walk calls fn for every leaf of the table in natural key order.
func (t *Table) Walk(fn func(path []string, value any)) {
	if t == nil {
		return
	}
	walk(nil, t.values, fn)
}

func walk(prefix []string, m map[string]any, fn func([]string, any)) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Sort(natural.StringSlice(keys))
	for _, k := range keys {
		path := append(prefix[:len(prefix):len(prefix)], k)
		if sub, ok := asMap(m[k]); ok {
			walk(path, sub, fn)
			continue
		}
		fn(path, m[k])
	}
}

func asMap(node any) (map[string]any, bool) {
	switch v := node.(type) {
	case map[string]any:
		return v, true
	case *Table:
		if v == nil {
			return nil, false
		}
		return v.values, true
	}
	return nil, false
}

// VariableName returns custom property name for a token path,
// e.g. "--theme-colorScheme-green-background".
func VariableName(prefix string, path ...string) string {
	var sb strings.Builder
	sb.WriteString("--")
	sb.WriteString(prefix)
	for _, p := range path {
		sb.WriteByte('-')
		sb.WriteString(p)
	}
	return sb.String()
}

// RootRule renders custom property declarations for every leaf of the table
// as a single ":root" rule. In variables mode this rule is what makes
// "var(...)" references paint with actual values.
func RootRule(t *Table, prefix string) string {
	var sb strings.Builder
	sb.WriteString(":root{")
	t.Walk(func(path []string, value any) {
		text, ok := primitiveText(value)
		if !ok {
			return
		}
		sb.WriteString(VariableName(prefix, path...))
		sb.WriteByte(':')
		sb.WriteString(text)
		sb.WriteByte(';')
	})
	sb.WriteString("}")
	return sb.String()
}

func primitiveText(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, x != ""
	case int:
		return strconv.Itoa(x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32), true
	}
	return "", false
}
