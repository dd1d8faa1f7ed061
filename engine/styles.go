package engine

import (
	"strconv"
	"strings"

	"fcss/style"
	"fcss/tokens"
)

// Styles is an ordered cascade of definitions made by Engine.MakeStyles.
type Styles struct {
	engine *Engine
	id     uint64
	name   string
	defs   []Definition
}

// Name returns styles name.
func (s *Styles) Name() string {
	return s.name
}

// Definitions returns copy of styles definitions.
func (s *Styles) Definitions() []Definition {
	return append([]Definition(nil), s.defs...)
}

// Use is Classes with theme taken from provider.
func (s *Styles) Use(p Provider, sel Selectors, classNames ...string) string {
	return s.Classes(p.Theme(), sel, classNames...)
}

// Classes returns class names for selectors, injecting rules target of theme
// is missing. Caller class names which were produced by the engine before
// override matched declarations with the same key, unknown ones are passed
// through in front of the result.
func (s *Styles) Classes(theme Theme, sel Selectors, classNames ...string) string {
	e := s.engine
	tgt := e.targets.Get(theme.Target)
	baked := e.useBaked(tgt)

	var matched []int
	for i, d := range s.defs {
		if d.Match == nil || Matches(d.Match, sel) {
			matched = append(matched, i)
		}
	}

	// caller classes made by the engine override matched declarations, the
	// rest (including keyframes names) pass through unchanged
	var (
		foreign   []string
		overrides []string
		entries   []override
	)
	for _, cn := range classNames {
		for _, f := range strings.Fields(cn) {
			dkey, entry, ok := tgt.Lookup(f)
			if !ok || entry.Kind == style.KindKeyframes {
				foreign = append(foreign, f)
				continue
			}
			overrides = append(overrides, f)
			entries = append(entries, override{key: dkey, entry: entry})
		}
	}

	key := s.memoKey(matched, overrides, theme, baked)
	injected, ok := tgt.Memo(key)
	if !ok {
		acc := style.NewClassMap()
		for _, i := range matched {
			acc.Merge(e.resolve(defKey{styles: s.id, index: i}, s.defs[i].Source, theme.Tokens, baked))
		}
		for _, o := range entries {
			acc.Set(o.key, o.entry)
		}
		injected = tgt.Inject(acc, theme.RTL)
		tgt.Remember(key, injected)
	}
	return strings.TrimSpace(strings.Join(append(foreign, injected), " "))
}

type override struct {
	key   string
	entry style.Entry
}

// memoKey builds combiner cache key. Token table identity matters only
// when tokens are baked. Pass through classes are not part of the key.
func (s *Styles) memoKey(matched []int, overrides []string, theme Theme, baked bool) string {
	var sb strings.Builder
	sb.WriteString(strconv.FormatUint(s.id, 10))
	sb.WriteByte('|')
	for i, m := range matched {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(m))
	}
	sb.WriteByte('|')
	sb.WriteString(strconv.FormatBool(theme.RTL))
	sb.WriteByte('|')
	if baked {
		table := theme.Tokens
		if table == nil {
			table = s.engine.empty
		}
		sb.WriteString(strconv.FormatUint(table.ID(), 10))
	}
	sb.WriteByte('|')
	sb.WriteString(strings.Join(overrides, " "))
	return sb.String()
}

// Compile resolves every definition. With nil table token dependent
// definitions are resolved in variables mode, otherwise tokens are baked
// from table. Results could be stored and later used with Precompiled.
func (s *Styles) Compile(table *tokens.Table) []*style.ClassMap {
	out := make([]*style.ClassMap, len(s.defs))
	for i, d := range s.defs {
		out[i] = s.engine.resolve(defKey{styles: s.id, index: i}, d.Source, table, table != nil)
	}
	return out
}
