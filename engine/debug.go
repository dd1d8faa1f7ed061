package engine

import (
	"maps"

	"fcss/style"
	"fcss/tokens"
	"fcss/utils/debug"
)

// Dump returns readable tree of compiled definitions (see Compile). It
// exists solely for debug reports.
func (s *Styles) Dump(table *tokens.Table) string {
	tw := debug.NewTreeWriter()
	tw.Line(0, "Styles %q: %d definitions", s.name, len(s.defs))
	for i, cm := range s.Compile(table) {
		d := s.defs[i]
		tw.Line(1, "Definition[%d] dynamic[%t] entries[%d]", i, IsDynamic(d.Source), cm.Len())
		if d.Match != nil {
			m := maps.Clone(map[string]any(d.Match))
			for k, v := range m {
				if v == Unset {
					m[k] = "<unset>"
				}
			}
			tw.Map(2, "match", m)
		}
		cm.Each(func(key string, e style.Entry) {
			tw.Line(2, "Key[%q] class[%s]", key, e.ClassName)
			tw.TextBlock(3, "css", e.CSS)
			if e.HasRTL() {
				tw.TextBlock(3, "rtl", e.RTLCSS)
			}
		})
	}
	return tw.String()
}
