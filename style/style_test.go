package style_test

import (
	"strings"
	"testing"

	"go.uber.org/zap"

	"fcss/style"
	"fcss/tokens"
)

func newResolver() *style.Resolver {
	return style.NewResolver("", "", zap.NewNop())
}

func TestResolve_Deterministic(t *testing.T) {
	tree := style.Tree{"color": "red", "marginLeft": 4}

	a := newResolver().Resolve(tree)
	b := style.NewResolver("a", "r", nil).Resolve(style.Tree{"marginLeft": "4px", "color": "red"})

	for _, key := range []string{"color", "margin-left"} {
		ea, ok := a.Get(key)
		if !ok {
			t.Fatalf("expected key %q in %v", key, a.Keys())
		}
		eb, _ := b.Get(key)
		if ea != eb {
			t.Errorf("expected identical entries for %q, got %#v and %#v", key, ea, eb)
		}
		if !strings.HasPrefix(ea.ClassName, "a") {
			t.Errorf("expected class name to start with hash prefix, got %q", ea.ClassName)
		}
	}

	e, _ := a.Get("color")
	if want := "." + e.ClassName + "{color:red;}"; e.CSS != want {
		t.Errorf("expected %q, got %q", want, e.CSS)
	}
	if e.HasRTL() {
		t.Errorf("expected no RTL variant for color, got %q", e.RTLCSS)
	}
}

func TestResolve_RTL(t *testing.T) {
	m := newResolver().Resolve(style.Tree{"marginLeft": "4px"})
	e, ok := m.Get("margin-left")
	if !ok {
		t.Fatalf("expected margin-left entry, got keys %v", m.Keys())
	}
	if !e.HasRTL() {
		t.Fatalf("expected RTL variant")
	}

	cls, text := e.Pick(false)
	if cls != e.ClassName || text != "."+cls+"{margin-left:4px;}" {
		t.Errorf("unexpected LTR pick: %q %q", cls, text)
	}
	rcls, rtext := e.Pick(true)
	if rcls != "r"+e.ClassName {
		t.Errorf("expected RTL class r%s, got %q", e.ClassName, rcls)
	}
	if rtext != "."+rcls+"{margin-right:4px;}" {
		t.Errorf("unexpected RTL css %q", rtext)
	}
}

func TestResolve_Shorthands(t *testing.T) {
	m := newResolver().Resolve(style.Tree{
		"margin":     "4px",
		"marginLeft": "8px",
	})
	if m.Len() != 4 {
		t.Fatalf("expected 4 longhands, got %v", m.Keys())
	}
	if _, ok := m.Get("margin"); ok {
		t.Errorf("expected shorthand to be expanded")
	}
	e, _ := m.Get("margin-left")
	if !strings.Contains(e.CSS, "margin-left:8px;") {
		t.Errorf("expected explicit longhand to win, got %q", e.CSS)
	}
	e, _ = m.Get("margin-top")
	if !strings.Contains(e.CSS, "margin-top:4px;") {
		t.Errorf("expected expanded longhand, got %q", e.CSS)
	}
}

func TestResolve_ShorthandWithTokenRef(t *testing.T) {
	ref := tokens.Variables("theme").Get("spacing", "medium")
	m := newResolver().Resolve(style.Tree{"padding": ref})
	e, ok := m.Get("padding")
	if !ok || m.Len() != 1 {
		t.Fatalf("expected token reference to stay shorthand, got %v", m.Keys())
	}
	if !strings.Contains(e.CSS, "padding:var(--theme-spacing-medium);") {
		t.Errorf("unexpected css %q", e.CSS)
	}

	table := tokens.NewTable(map[string]any{"spacing": map[string]any{"medium": "4px 8px"}})
	baked := newResolver().Resolve(style.Tree{"padding": tokens.Baked(table).Get("spacing", "medium")})
	if strings.Join(baked.Keys(), ",") != strings.Join(m.Keys(), ",") {
		t.Errorf("expected same keys in both modes, got %v and %v", baked.Keys(), m.Keys())
	}
}

func TestResolve_NestedSelectors(t *testing.T) {
	m := newResolver().Resolve(style.Tree{
		"color":  "black",
		":hover": style.Tree{"color": "blue"},
		"& svg":  map[string]any{"fill": "red"},
		"&:focus, &:active": style.Tree{
			"outline": "none",
		},
	})

	e, ok := m.Get(":hovercolor")
	if !ok {
		t.Fatalf("expected :hover entry, got keys %v", m.Keys())
	}
	if want := "." + e.ClassName + ":hover{color:blue;}"; e.CSS != want {
		t.Errorf("expected %q, got %q", want, e.CSS)
	}
	base, _ := m.Get("color")
	if base.ClassName == e.ClassName {
		t.Errorf("expected scoped declaration to hash differently")
	}

	e, ok = m.Get(" svgfill")
	if !ok {
		t.Fatalf("expected descendant entry, got keys %v", m.Keys())
	}
	if want := "." + e.ClassName + " svg{fill:red;}"; e.CSS != want {
		t.Errorf("expected %q, got %q", want, e.CSS)
	}

	e, ok = m.Get(":focus,:activeoutline-style")
	if !ok {
		t.Fatalf("expected selector list entry, got keys %v", m.Keys())
	}
	if want := "." + e.ClassName + ":focus,." + e.ClassName + ":active{outline-style:none;}"; e.CSS != want {
		t.Errorf("expected %q, got %q", want, e.CSS)
	}
}

func TestResolve_Media(t *testing.T) {
	m := newResolver().Resolve(style.Tree{
		"width": "10px",
		"@media (min-width: 600px)": style.Tree{
			"width":  "20px",
			":hover": style.Tree{"width": "30px"},
		},
	})
	if m.Len() != 3 {
		t.Fatalf("expected 3 entries, got %v", m.Keys())
	}
	e, ok := m.Get("@media (min-width: 600px)width")
	if !ok {
		t.Fatalf("expected media scoped key, got %v", m.Keys())
	}
	if want := "@media (min-width: 600px){." + e.ClassName + "{width:20px;}}"; e.CSS != want {
		t.Errorf("expected %q, got %q", want, e.CSS)
	}
	e, ok = m.Get("@media (min-width: 600px):hoverwidth")
	if !ok {
		t.Fatalf("expected media+hover key, got %v", m.Keys())
	}
	if want := "@media (min-width: 600px){." + e.ClassName + ":hover{width:30px;}}"; e.CSS != want {
		t.Errorf("expected %q, got %q", want, e.CSS)
	}
}

func TestResolve_Keyframes(t *testing.T) {
	tree := style.Tree{
		"animationName": style.Tree{
			"to":   style.Tree{"opacity": 1},
			"from": style.Tree{"opacity": 0},
			"50%":  style.Tree{"opacity": 0.5},
		},
		"animationDuration": "1s",
	}
	m := newResolver().Resolve(tree)

	var frames []style.Entry
	m.Each(func(_ string, e style.Entry) {
		if e.Kind == style.KindKeyframes {
			frames = append(frames, e)
		}
	})
	if len(frames) != 1 {
		t.Fatalf("expected one keyframes entry, got %d", len(frames))
	}
	kf := frames[0]
	want := "@keyframes " + kf.ClassName + "{from{opacity:0;}50%{opacity:0.5;}to{opacity:1;}}"
	if kf.CSS != want {
		t.Errorf("expected %q, got %q", want, kf.CSS)
	}
	if kf.HasRTL() {
		t.Errorf("keyframes must not have RTL variant")
	}

	e, ok := m.Get("animation-name")
	if !ok || !strings.Contains(e.CSS, "animation-name:"+kf.ClassName+";") {
		t.Errorf("expected animation-name to reference %q, got %q", kf.ClassName, e.CSS)
	}

	again := newResolver().Resolve(tree)
	if e2, _ := again.Get("animation-name"); e2 != e {
		t.Errorf("expected deterministic keyframes naming")
	}
}

func TestResolve_SkipsUnsupported(t *testing.T) {
	m := newResolver().Resolve(style.Tree{
		"color":   "",
		"display": []string{"flex"},
		"hidden":  true,
		"margin":  nil,
		":hover":  "red",
		"zIndex":  2,
	})
	if m.Len() != 1 {
		t.Fatalf("expected only z-index, got %v", m.Keys())
	}
	e, _ := m.Get("z-index")
	if !strings.Contains(e.CSS, "z-index:2;") {
		t.Errorf("expected unitless number, got %q", e.CSS)
	}
}

func TestResolveScoped(t *testing.T) {
	r := newResolver()
	m := r.ResolveScoped(style.Tree{"color": "red"}, "&:hover")
	nested := r.Resolve(style.Tree{":hover": style.Tree{"color": "red"}})

	a, ok := m.Get(":hovercolor")
	if !ok {
		t.Fatalf("expected scoped key, got %v", m.Keys())
	}
	b, _ := nested.Get(":hovercolor")
	if a != b {
		t.Errorf("expected scoped resolve to equal nested one, got %#v and %#v", a, b)
	}
}

func TestClassMap(t *testing.T) {
	m := style.NewClassMap()
	m.Set("b", style.Entry{ClassName: "b1"})
	m.Set("a", style.Entry{ClassName: "a1"})
	m.Set("b", style.Entry{ClassName: "b2"})

	if got := strings.Join(m.Keys(), ","); got != "b,a" {
		t.Errorf("expected replacement to keep position, got %s", got)
	}
	e, _ := m.Get("b")
	if e.ClassName != "b2" {
		t.Errorf("expected b2, got %s", e.ClassName)
	}

	c := m.Clone()
	c.Set("c", style.Entry{ClassName: "c1"})
	if m.Len() != 2 || c.Len() != 3 {
		t.Errorf("expected clone to be independent, got %d and %d", m.Len(), c.Len())
	}

	other := style.NewClassMap()
	other.Set("a", style.Entry{ClassName: "a2"})
	m.Merge(other)
	if e, _ := m.Get("a"); e.ClassName != "a2" {
		t.Errorf("expected merged entry to win, got %s", e.ClassName)
	}

	var nilMap *style.ClassMap
	if nilMap.Len() != 0 || nilMap.Keys() != nil {
		t.Errorf("expected nil map to be empty")
	}
}
