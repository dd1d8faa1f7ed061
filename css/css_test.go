package css_test

import (
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"fcss/css"
)

func TestHyphenate(t *testing.T) {
	tests := map[string]string{
		"color":               "color",
		"marginLeft":          "margin-left",
		"margin-left":         "margin-left",
		"WebkitTransform":     "-webkit-transform",
		"msFlexAlign":         "-ms-flex-align",
		"--themeColor":        "--themeColor",
		"borderTopLeftRadius": "border-top-left-radius",
	}
	for in, want := range tests {
		if got := css.Hyphenate(in); got != want {
			t.Errorf("Hyphenate(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestHash_Deterministic(t *testing.T) {
	a := css.Hash("colorred")
	b := css.Hash("colorred")
	if a != b {
		t.Fatalf("expected equal hashes, got %q and %q", a, b)
	}
	if a == css.Hash("colorgreen") {
		t.Errorf("expected different inputs to hash differently")
	}
	for _, r := range a {
		if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'z') {
			t.Fatalf("expected base36 hash, got %q", a)
		}
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		prop  string
		value any
		want  string
		ok    bool
	}{
		{"color", "  red ", "red", true},
		{"width", 10, "10px", true},
		{"width", 0, "0", true},
		{"width", 1.5, "1.5px", true},
		{"opacity", 0.5, "0.5", true},
		{"z-index", 3, "3", true},
		{"--custom", 3, "3", true},
		{"color", "", "", false},
		{"color", true, "", false},
		{"color", []string{"red"}, "", false},
		{"color", nil, "", false},
	}
	for _, tt := range tests {
		got, ok := css.FormatValue(tt.prop, tt.value)
		if ok != tt.ok || got != tt.want {
			t.Errorf("FormatValue(%q, %#v): expected (%q, %v), got (%q, %v)", tt.prop, tt.value, tt.want, tt.ok, got, ok)
		}
	}
}

func TestFields(t *testing.T) {
	got := css.Fields("1px calc(2px + 3px) var(--a, 4px)  5px")
	want := []string{"1px", "calc(2px + 3px)", "var(--a, 4px)", "5px"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("expected %q, got %q", want, got)
	}

	list := css.SplitList("1px 2px red, inset 0 0 3px rgba(0, 0, 0, .5)")
	if len(list) != 2 || list[1] != "inset 0 0 3px rgba(0, 0, 0, .5)" {
		t.Errorf("unexpected list split: %q", list)
	}
}

func declString(decls []css.Decl) string {
	var parts []string
	for _, d := range decls {
		parts = append(parts, d.Prop+"="+d.Value)
	}
	return strings.Join(parts, ";")
}

func TestExpand(t *testing.T) {
	tests := []struct {
		prop, value string
		want        string
		ok          bool
	}{
		{"margin", "4px", "margin-top=4px;margin-right=4px;margin-bottom=4px;margin-left=4px", true},
		{"padding", "1px 2px", "padding-top=1px;padding-right=2px;padding-bottom=1px;padding-left=2px", true},
		{"margin", "1px 2px 3px", "margin-top=1px;margin-right=2px;margin-bottom=3px;margin-left=2px", true},
		{"inset", "0 1px 2px 3px", "top=0;right=1px;bottom=2px;left=3px", true},
		{"border-radius", "9999px", "border-top-left-radius=9999px;border-top-right-radius=9999px;border-bottom-right-radius=9999px;border-bottom-left-radius=9999px", true},
		{"border-radius", "1px / 2px", "", false},
		{"gap", "1px 2px", "row-gap=1px;column-gap=2px", true},
		{"overflow", "hidden", "overflow-x=hidden;overflow-y=hidden", true},
		{"border-left", "1px solid red", "border-left-width=1px;border-left-style=solid;border-left-color=red", true},
		{"outline", "dashed", "outline-style=dashed", true},
		{"flex", "1", "flex-grow=1;flex-shrink=1;flex-basis=0%", true},
		{"flex", "none", "flex-grow=0;flex-shrink=0;flex-basis=auto", true},
		{"flex", "2 30px", "flex-grow=2;flex-shrink=1;flex-basis=30px", true},
		{"margin", "1px 2px 3px 4px 5px", "", false},
		{"margin", "4px !important", "", false},
		{"color", "red", "", false},
	}
	for _, tt := range tests {
		decls, ok := css.Expand(tt.prop, tt.value)
		if ok != tt.ok {
			t.Errorf("Expand(%q, %q): expected ok=%v, got %v", tt.prop, tt.value, tt.ok, ok)
			continue
		}
		if got := declString(decls); got != tt.want {
			t.Errorf("Expand(%q, %q):\nexpected %s\n     got %s", tt.prop, tt.value, tt.want, got)
		}
	}

	border, ok := css.Expand("border", "2px dotted blue")
	if !ok || len(border) != 12 {
		t.Fatalf("expected 12 longhands for border, got %d (%v)", len(border), ok)
	}
}

func TestFlip(t *testing.T) {
	tests := []struct {
		prop, value         string
		wantProp, wantValue string
	}{
		{"margin-left", "4px", "margin-right", "4px"},
		{"padding-right", "2px", "padding-left", "2px"},
		{"left", "0", "right", "0"},
		{"border-top-left-radius", "3px", "border-top-right-radius", "3px"},
		{"border-right-color", "red", "border-left-color", "red"},
		{"float", "left", "float", "right"},
		{"text-align", "right", "text-align", "left"},
		{"text-align", "center", "text-align", "center"},
		{"cursor", "e-resize", "cursor", "w-resize"},
		{"background-position", "left top", "background-position", "right top"},
		{"box-shadow", "2px 0 4px red", "box-shadow", "-2px 0 4px red"},
		{"box-shadow", "inset -1px 1px black, 0 0 1px blue", "box-shadow", "inset 1px 1px black,0 0 1px blue"},
		{"color", "red", "color", "red"},
		{"--left", "1px", "--left", "1px"},
	}
	for _, tt := range tests {
		p, v := css.Flip(tt.prop, tt.value)
		if p != tt.wantProp || v != tt.wantValue {
			t.Errorf("Flip(%q, %q): expected (%q, %q), got (%q, %q)", tt.prop, tt.value, tt.wantProp, tt.wantValue, p, v)
		}
	}
}

func TestSheet_InsertRule(t *testing.T) {
	s := css.NewSheet()
	if err := s.InsertRule(".b{}", 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.InsertRule(".a{}", 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.InsertRule(".c{}", 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.InsertRule(".x{}", 5); !errors.Is(err, css.ErrIndexSize) {
		t.Errorf("expected ErrIndexSize, got %v", err)
	}
	if got, want := s.String(), ".a{}\n.b{}\n.c{}\n"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestParser_Declarations(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	block := p.Parse([]byte(`color: red; margin: 0 4px; --brand: #fff; width: 1px !important`), "test")
	if len(block.Decls) != 4 {
		t.Fatalf("expected 4 declarations, got %d: %#v", len(block.Decls), block.Decls)
	}
	m := block.Map()
	if m["color"] != "red" {
		t.Errorf("expected color red, got %v", m["color"])
	}
	if m["margin"] != "0 4px" {
		t.Errorf("expected margin '0 4px', got %v", m["margin"])
	}
	if m["width"] != "1px" {
		t.Errorf("expected width '1px', got %v", m["width"])
	}
	if len(block.Warnings) != 1 {
		t.Errorf("expected one warning for !important, got %v", block.Warnings)
	}
}
