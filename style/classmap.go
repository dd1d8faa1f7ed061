// Package style flattens nested declaration trees into content addressed
// atomic CSS rules.
package style

import "slices"

// Tree is a nested style description. Keys are CSS properties (camelCase or
// hyphenated), nested selectors (":hover", "& svg", "> span", "[dir]"),
// "@media ..." conditions, or "animationName" holding keyframes. Values are
// scalars (strings, numbers, tokens.Ref) or nested maps.
type Tree map[string]any

// Kind distinguishes regular declarations from global blocks.
type Kind int

const (
	// KindRule is a single declaration bound to its class name.
	KindRule Kind = iota
	// KindKeyframes is an "@keyframes" block, it has no class to attach.
	KindKeyframes
)

// Entry is a resolved declaration.
type Entry struct {
	ClassName string
	CSS       string
	RTLCSS    string // empty when declaration does not change in RTL
	RTLPrefix string // class name prefix used in RTLCSS
	Kind      Kind
}

// HasRTL reports whether declaration has direction specific variant.
func (e Entry) HasRTL() bool {
	return e.RTLCSS != ""
}

// Pick returns class name and CSS text to use for requested direction.
func (e Entry) Pick(rtl bool) (string, string) {
	if rtl && e.HasRTL() {
		return e.RTLPrefix + e.ClassName, e.RTLCSS
	}
	return e.ClassName, e.CSS
}

// ClassMap maps declaration keys (scope + property) to entries. It
// remembers first insertion order so that everything produced from it
// (rule insertion order, class strings) is deterministic; replacing an
// existing key keeps its position.
// NOTE: maps returned from resolver and caches are shared, use Clone
// before modifying.
type ClassMap struct {
	keys    []string
	entries map[string]Entry
}

// NewClassMap returns empty map.
func NewClassMap() *ClassMap {
	return &ClassMap{entries: make(map[string]Entry)}
}

// Set stores entry under key, replacing previous one.
func (m *ClassMap) Set(key string, e Entry) {
	if _, ok := m.entries[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.entries[key] = e
}

// Get returns entry for key.
func (m *ClassMap) Get(key string) (Entry, bool) {
	if m == nil {
		return Entry{}, false
	}
	e, ok := m.entries[key]
	return e, ok
}

// Len returns number of keys.
func (m *ClassMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns keys in insertion order.
func (m *ClassMap) Keys() []string {
	if m == nil {
		return nil
	}
	return slices.Clone(m.keys)
}

// Each calls fn for every entry in insertion order.
func (m *ClassMap) Each(fn func(key string, e Entry)) {
	if m == nil {
		return
	}
	for _, k := range m.keys {
		fn(k, m.entries[k])
	}
}

// Merge copies all entries of other into m, entries of other win.
func (m *ClassMap) Merge(other *ClassMap) {
	other.Each(m.Set)
}

// Clone returns independent copy.
func (m *ClassMap) Clone() *ClassMap {
	c := &ClassMap{
		keys:    slices.Clone(m.keys),
		entries: make(map[string]Entry, len(m.entries)),
	}
	for k, e := range m.entries {
		c.entries[k] = e
	}
	return c
}
