package store_test

import (
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"fcss/common"
	"fcss/engine"
	"fcss/store"
	"fcss/style"
	"fcss/target"
	"fcss/tokens"
)

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "styles.db")
	st, err := store.Open(path, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	e := engine.New(engine.Options{}, nil)
	status := e.MakeStyles("status", engine.StatusDefinitions()...)
	compiled := status.Compile(nil)
	if err := st.Save(status.Name(), compiled, ""); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	// saving again replaces previous version
	if err := st.Save(status.Name(), compiled, ""); err != nil {
		t.Fatalf("second save failed: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	st, err = store.Open(path, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer st.Close()

	names, err := st.Names()
	if err != nil || len(names) != 1 || names[0] != "status" {
		t.Fatalf("expected single stored styles, got %v (%v)", names, err)
	}

	maps, bakedFrom, err := st.Load("status")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if bakedFrom != "" {
		t.Errorf("expected variables mode maps, got tokens %q", bakedFrom)
	}
	if len(maps) != len(compiled) {
		t.Fatalf("expected %d maps, got %d", len(compiled), len(maps))
	}
	for i := range maps {
		want, got := compiled[i].Keys(), maps[i].Keys()
		if len(want) != len(got) {
			t.Fatalf("definition %d: expected keys %v, got %v", i, want, got)
		}
		for j, k := range want {
			if got[j] != k {
				t.Errorf("definition %d: expected key order %v, got %v", i, want, got)
				break
			}
			we, _ := compiled[i].Get(k)
			ge, _ := maps[i].Get(k)
			if we != ge {
				t.Errorf("definition %d key %q: expected %#v, got %#v", i, k, we, ge)
			}
		}
	}
}

func TestLoadMissing(t *testing.T) {
	st, err := store.Open(":memory:", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer st.Close()

	maps, _, err := st.Load("nothing")
	if err != nil || maps != nil {
		t.Errorf("expected nothing, got %v (%v)", maps, err)
	}
}

func TestPrecompile(t *testing.T) {
	st, err := store.Open(":memory:", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer st.Close()

	e := engine.New(engine.Options{}, nil)
	status := e.MakeStyles("status", engine.StatusDefinitions()...)

	defs, err := st.Precompile(status)
	if err != nil || len(defs) != len(status.Definitions()) {
		t.Fatalf("expected definitions unchanged without stored maps, got %d (%v)", len(defs), err)
	}

	if err := st.Save("status", status.Compile(nil), ""); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	defs, err = st.Precompile(status)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !engine.IsDynamic(defs[1].Source) {
		t.Errorf("expected wrapped source to keep its nature")
	}

	sel := engine.Selectors{"state": "warning", "size": "small"}
	fresh := engine.New(engine.Options{}, nil)
	surface := target.NewMemorySurface("doc")
	want := status.Classes(engine.Theme{}, sel)
	got := fresh.MakeStyles("status", defs...).Classes(engine.Theme{Target: surface}, sel)
	if got != want {
		t.Errorf("expected precompiled styles to produce %q, got %q", want, got)
	}
}

func TestPrecompile_TokenMode(t *testing.T) {
	st, err := store.Open(":memory:", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer st.Close()

	blue := tokens.NewTable(map[string]any{"brand": "blue"})
	baker := engine.New(engine.Options{Mode: common.RuntimeModeBaked}, nil)
	brand := baker.MakeStyles("brand", engine.StatusDefinitions()[0], engine.Definition{Source: engine.Dynamic(func(a tokens.Accessor) style.Tree {
		return style.Tree{"color": a.Get("brand")}
	})})
	if err := st.Save("brand", brand.Compile(blue), blue.Fingerprint()); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if _, bakedFrom, _ := st.Load("brand"); bakedFrom != blue.Fingerprint() {
		t.Errorf("expected tokens %q, got %q", blue.Fingerprint(), bakedFrom)
	}

	defs, err := st.Precompile(brand)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name  string
		mode  common.RuntimeMode
		table *tokens.Table
		want  string
	}{
		{"same table", common.RuntimeModeBaked, tokens.NewTable(map[string]any{"brand": "blue"}), "color:blue;"},
		{"other table", common.RuntimeModeBaked, tokens.NewTable(map[string]any{"brand": "black"}), "color:black;"},
		{"variables", common.RuntimeModeVariables, blue, "color:var(--theme-brand);"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			surface := target.NewMemorySurface("doc")
			s := engine.New(engine.Options{Mode: tt.mode}, nil).MakeStyles("brand", defs...)
			s.Classes(engine.Theme{Tokens: tt.table, Target: surface}, nil)
			rules := strings.Join(surface.Sheet().(interface{ Rules() []string }).Rules(), "\n")
			if !strings.Contains(rules, tt.want) {
				t.Errorf("expected %q in rules:\n%s", tt.want, rules)
			}
		})
	}
}
