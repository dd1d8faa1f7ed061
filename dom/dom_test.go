package dom_test

import (
	"errors"
	"strings"
	"testing"

	"fcss/common"
	"fcss/css"
	"fcss/dom"
)

const page = `<!DOCTYPE html><html><head><title>t</title></head><body><span class="status x">s</span><p>p</p></body></html>`

func render(t *testing.T, d dom.Document) string {
	t.Helper()
	var sb strings.Builder
	if err := d.Render(&sb); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	return sb.String()
}

func TestHTML_InsertRule(t *testing.T) {
	h, err := dom.ParseHTML(strings.NewReader(page))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := h.InsertRule(".b{color:red;}", 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := h.InsertRule(".a>span{color:blue;}", 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := h.InsertRule(".c{}", 7); !errors.Is(err, css.ErrIndexSize) {
		t.Errorf("expected ErrIndexSize, got %v", err)
	}

	out := render(t, h)
	if !strings.Contains(out, `<style fcss="rule">`+"\n.a>span{color:blue;}\n.b{color:red;}\n</style>") {
		t.Errorf("unexpected document:\n%s", out)
	}

	again, err := dom.ParseHTML(strings.NewReader(out))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := again.Rules(); len(got) != 2 || got[0] != ".a>span{color:blue;}" {
		t.Errorf("expected rules to survive round trip, got %q", got)
	}
	if strings.Count(render(t, again), "<style") != 1 {
		t.Errorf("expected existing style element to be reused")
	}
}

func TestHTML_AddClass(t *testing.T) {
	h, err := dom.ParseHTML(strings.NewReader(page))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n, err := h.AddClass("span.status", "a1 x")
	if err != nil || n != 1 {
		t.Fatalf("expected one element, got %d (%v)", n, err)
	}
	if _, err := h.AddClass("p", "a2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := render(t, h)
	if !strings.Contains(out, `<span class="status x a1">`) || !strings.Contains(out, `<p class="a2">`) {
		t.Errorf("unexpected document:\n%s", out)
	}
	if _, err := h.AddClass("span[", "x"); err == nil {
		t.Errorf("expected selector error")
	}
}

func TestXHTML(t *testing.T) {
	x := dom.NewXHTML()
	if x.SupportsCustomProperties() {
		t.Errorf("xhtml must require baked values")
	}
	if err := x.InsertRule(".a{color:red;}", 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := x.AddClass("//body", "a"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := render(t, x)
	if !strings.Contains(out, `fcss="rule"`) || !strings.Contains(out, ".a{color:red;}") || !strings.Contains(out, `<body class="a"`) {
		t.Errorf("unexpected document:\n%s", out)
	}

	again, err := dom.ParseXHTML(strings.NewReader(out))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := again.Rules(); len(got) != 1 || got[0] != ".a{color:red;}" {
		t.Errorf("expected rules to survive round trip, got %q", got)
	}
}

func TestXHTML_NoHead(t *testing.T) {
	x, err := dom.ParseXHTML(strings.NewReader(`<html xmlns="http://www.w3.org/1999/xhtml"><body/></html>`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := x.InsertRule(".a{}", 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out := render(t, x); !strings.Contains(out, "<head><style") {
		t.Errorf("expected head to be created:\n%s", out)
	}
}

func TestOpenAndAddClasses(t *testing.T) {
	if _, err := dom.New(common.SurfaceKindMemory); err == nil {
		t.Errorf("expected error for memory surface")
	}
	d, err := dom.Open(common.SurfaceKindHtml, strings.NewReader(page))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n, err := dom.AddClasses(d, map[string]string{"p": "a", "span": "b", "div[": "c"})
	if err == nil {
		t.Errorf("expected combined error for bad selector")
	}
	if n != 2 {
		t.Errorf("expected 2 elements changed, got %d", n)
	}
}
