package style

import (
	"sort"
	"strconv"
	"strings"

	"github.com/maruel/natural"
	"go.uber.org/zap"

	"fcss/css"
	"fcss/tokens"
)

const (
	// DefaultHashPrefix starts every generated class name, hashes may begin
	// with a digit which is not allowed in CSS identifiers.
	DefaultHashPrefix = "a"
	// DefaultRTLPrefix is prepended to class name of RTL variant.
	DefaultRTLPrefix = "r"

	keyframesPrefix = "k"
	mediaPrefix     = "@media"
)

// Resolver flattens Trees into ClassMaps. It keeps no state between calls and
// could be shared freely.
type Resolver struct {
	hashPrefix string
	rtlPrefix  string
	log        *zap.Logger
}

// NewResolver returns resolver using provided class name prefixes, empty
// prefixes are replaced with defaults.
func NewResolver(hashPrefix, rtlPrefix string, log *zap.Logger) *Resolver {
	if hashPrefix == "" {
		hashPrefix = DefaultHashPrefix
	}
	if rtlPrefix == "" {
		rtlPrefix = DefaultRTLPrefix
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{
		hashPrefix: hashPrefix,
		rtlPrefix:  rtlPrefix,
		log:        log.Named("resolver"),
	}
}

// scope describes where declarations of the current tree level apply.
type scope struct {
	media     []string // conditions, combined with "and"
	selectors []string // normalized nested selectors, "" is the element itself
}

// key is a textual scope identity, used both in ClassMap keys and hashing.
func (s scope) key() string {
	var sb strings.Builder
	if len(s.media) > 0 {
		sb.WriteString(mediaPrefix + " " + strings.Join(s.media, " and "))
	}
	if len(s.selectors) != 1 || s.selectors[0] != "" {
		sb.WriteString(strings.Join(s.selectors, ","))
	}
	return sb.String()
}

func (s scope) nest(sel string) scope {
	parts := css.SplitList(sel)
	next := scope{media: s.media}
	for _, outer := range s.selectors {
		for _, p := range parts {
			next.selectors = append(next.selectors, outer+normalizeNested(p))
		}
	}
	return next
}

func (s scope) withMedia(cond string) scope {
	media := make([]string, 0, len(s.media)+1)
	media = append(media, s.media...)
	return scope{media: append(media, cond), selectors: s.selectors}
}

// rule returns complete rule text for class name and declaration.
func (s scope) rule(className, decl string) string {
	sels := make([]string, 0, len(s.selectors))
	for _, sel := range s.selectors {
		sels = append(sels, "."+className+sel)
	}
	rule := strings.Join(sels, ",") + "{" + decl + "}"
	if len(s.media) > 0 {
		rule = mediaPrefix + " " + strings.Join(s.media, " and ") + "{" + rule + "}"
	}
	return rule
}

// IsNestedSelector reports whether tree key introduces nested selector block.
func IsNestedSelector(key string) bool {
	if key == "" {
		return false
	}
	switch key[0] {
	case ':', '[', '>', '&':
		return true
	}
	return false
}

// IsMedia reports whether tree key is a media query block.
func IsMedia(key string) bool {
	return strings.HasPrefix(key, mediaPrefix)
}

func normalizeNested(sel string) string {
	sel = strings.TrimSpace(sel)
	if rest, ok := strings.CutPrefix(sel, "&"); ok {
		return rest
	}
	return sel
}

// Resolve flattens tree into ClassMap.
func (r *Resolver) Resolve(tree Tree) *ClassMap {
	return r.ResolveScoped(tree, "")
}

// ResolveScoped flattens tree with declarations nested under selector
// (same forms as nested tree keys, i.e. ":hover" or "& > span").
func (r *Resolver) ResolveScoped(tree Tree, selector string) *ClassMap {
	out := NewClassMap()
	sc := scope{selectors: []string{""}}
	if selector != "" {
		sc = sc.nest(selector)
	}
	r.resolve(tree, sc, out)
	return out
}

type decl struct {
	prop     string
	value    string
	expanded bool
}

func (r *Resolver) resolve(tree Tree, sc scope, out *ClassMap) {
	keys := make([]string, 0, len(tree))
	for k := range tree {
		keys = append(keys, k)
	}
	sort.Sort(natural.StringSlice(keys))

	var (
		decls    []decl
		explicit = make(map[string]bool)
		nested   []string
	)

	for _, k := range keys {
		v := tree[k]
		if sub, ok := AsTree(v); ok {
			switch prop := css.Hyphenate(k); {
			case IsNestedSelector(k), IsMedia(k):
				nested = append(nested, k)
			case prop == "animation-name":
				if name, ok := r.keyframes(sub, out); ok {
					decls = append(decls, decl{prop: prop, value: name})
					explicit[prop] = true
				}
			default:
				r.log.Debug("Skipping unsupported block", zap.String("key", k))
			}
			continue
		}

		if IsNestedSelector(k) || IsMedia(k) {
			continue
		}
		prop := css.Hyphenate(k)
		value, expandable, ok := scalar(prop, v)
		if !ok {
			if v != nil {
				r.log.Debug("Skipping unsupported value", zap.String("property", prop), zap.Any("value", v))
			}
			continue
		}
		if expandable && css.IsShorthand(prop) {
			if longhands, ok := css.Expand(prop, value); ok {
				for _, d := range longhands {
					decls = append(decls, decl{prop: d.Prop, value: d.Value, expanded: true})
				}
				continue
			}
		}
		decls = append(decls, decl{prop: prop, value: value})
		explicit[prop] = true
	}

	// longhands written explicitly win over the ones coming from shorthands,
	// regardless of key order
	for _, d := range decls {
		if d.expanded && explicit[d.prop] {
			continue
		}
		r.add(sc, d, out)
	}

	for _, k := range nested {
		sub, _ := AsTree(tree[k])
		if IsMedia(k) {
			cond := strings.TrimSpace(strings.TrimPrefix(k, mediaPrefix))
			if cond == "" {
				continue
			}
			r.resolve(sub, sc.withMedia(cond), out)
			continue
		}
		r.resolve(sub, sc.nest(k), out)
	}
}

func (r *Resolver) add(sc scope, d decl, out *ClassMap) {
	skey := sc.key()
	className := r.hashPrefix + css.Hash(skey+d.prop+d.value)
	e := Entry{
		ClassName: className,
		CSS:       sc.rule(className, css.Declaration(d.prop, d.value)),
		Kind:      KindRule,
	}
	if fprop, fvalue := css.Flip(d.prop, d.value); fprop != d.prop || fvalue != d.value {
		e.RTLPrefix = r.rtlPrefix
		e.RTLCSS = sc.rule(r.rtlPrefix+className, css.Declaration(fprop, fvalue))
	}
	out.Set(skey+d.prop, e)
}

// keyframes registers keyframes entry built from stop -> declarations map
// and returns generated animation name.
func (r *Resolver) keyframes(stops Tree, out *ClassMap) (string, bool) {
	keys := make([]string, 0, len(stops))
	for k := range stops {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		pi, pj := stopPosition(keys[i]), stopPosition(keys[j])
		if pi != pj {
			return pi < pj
		}
		return natural.Less(keys[i], keys[j])
	})

	var body strings.Builder
	for _, stop := range keys {
		frame, ok := AsTree(stops[stop])
		if !ok {
			continue
		}
		props := make([]string, 0, len(frame))
		for p := range frame {
			props = append(props, p)
		}
		sort.Sort(natural.StringSlice(props))

		var decls strings.Builder
		for _, p := range props {
			prop := css.Hyphenate(p)
			if value, _, ok := scalar(prop, frame[p]); ok {
				decls.WriteString(css.Declaration(prop, value))
			}
		}
		if decls.Len() == 0 {
			continue
		}
		body.WriteString(strings.TrimSpace(stop) + "{" + decls.String() + "}")
	}
	if body.Len() == 0 {
		return "", false
	}

	name := keyframesPrefix + css.Hash(body.String())
	out.Set("@keyframes "+name, Entry{
		ClassName: name,
		CSS:       "@keyframes " + name + "{" + body.String() + "}",
		Kind:      KindKeyframes,
	})
	return name, true
}

func stopPosition(stop string) float64 {
	switch s := strings.ToLower(strings.TrimSpace(stop)); s {
	case "from":
		return 0
	case "to":
		return 100
	default:
		if f, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64); err == nil {
			return f
		}
	}
	return 101
}

// scalar converts leaf value to CSS text. Token references are never
// expanded as shorthands: variable expression could hold several
// components and results must not depend on the token mode.
func scalar(prop string, v any) (string, bool, bool) {
	if ref, ok := v.(tokens.Ref); ok {
		if !ref.Valid() {
			return "", false, false
		}
		s, ok := css.FormatValue(prop, ref.Value())
		return s, false, ok
	}
	s, ok := css.FormatValue(prop, v)
	if !ok {
		return "", false, false
	}
	return s, !strings.Contains(s, "var("), true
}

// AsTree returns v as Tree when it is a nested map.
func AsTree(v any) (Tree, bool) {
	switch m := v.(type) {
	case Tree:
		return m, true
	case map[string]any:
		return Tree(m), true
	case map[string]string:
		t := make(Tree, len(m))
		for k, v := range m {
			t[k] = v
		}
		return t, true
	}
	return nil, false
}
