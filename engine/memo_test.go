package engine

import (
	"runtime"
	"testing"
	"time"

	"fcss/common"
	"fcss/style"
	"fcss/target"
	"fcss/tokens"
)

func TestMemoGraph_ReusePerTable(t *testing.T) {
	e := New(Options{Mode: common.RuntimeModeBaked}, nil)
	calls := 0
	s := e.MakeStyles("test", Definition{Source: Dynamic(func(a tokens.Accessor) style.Tree {
		calls++
		return style.Tree{"color": a.Get("brand")}
	})})

	table := tokens.NewTable(map[string]any{"brand": "red"})
	first := s.Compile(table)[0]
	second := s.Compile(table)[0]
	if first != second || calls != 1 {
		t.Errorf("expected memoized map for same table, got %d calls", calls)
	}

	s.Compile(tokens.NewTable(map[string]any{"brand": "red"}))
	if calls != 2 {
		t.Errorf("expected new table to be resolved again, got %d calls", calls)
	}

	// the same surface sees different tables through the combiner as well
	surface := target.NewMemorySurface("doc")
	s.Classes(Theme{Tokens: table, Target: surface}, nil)
	if calls != 2 {
		t.Errorf("expected combiner to reuse memo graph, got %d calls", calls)
	}
	runtime.KeepAlive(table)
}

func TestMemoGraph_Variables(t *testing.T) {
	e := New(Options{Mode: common.RuntimeModeVariables}, nil)
	calls := 0
	s := e.MakeStyles("test", Definition{Source: Dynamic(func(a tokens.Accessor) style.Tree {
		calls++
		return style.Tree{"color": a.Get("brand")}
	})})

	s.Classes(Theme{Tokens: tokens.NewTable(nil)}, nil)
	s.Classes(Theme{Tokens: tokens.NewTable(nil), RTL: true}, nil)
	if calls != 1 || e.memoTables() != 0 {
		t.Errorf("expected single variable resolution and no memo rows, got %d calls and %d rows", calls, e.memoTables())
	}
}

func compileWithTransientTable(s *Styles) {
	s.Compile(tokens.NewTable(map[string]any{"brand": "blue"}))
}

func TestMemoGraph_ReleasesCollectedTables(t *testing.T) {
	e := New(Options{Mode: common.RuntimeModeBaked}, nil)
	s := e.MakeStyles("test", Definition{Source: Dynamic(func(a tokens.Accessor) style.Tree {
		return style.Tree{"color": a.Get("brand")}
	})})

	compileWithTransientTable(s)
	if e.memoTables() != 1 {
		t.Fatalf("expected one memo row, got %d", e.memoTables())
	}

	deadline := time.Now().Add(5 * time.Second)
	for e.memoTables() != 0 && time.Now().Before(deadline) {
		runtime.GC()
		time.Sleep(10 * time.Millisecond)
	}
	if e.memoTables() != 0 {
		t.Errorf("expected memo row to be released with its table")
	}
}

func TestClose(t *testing.T) {
	e := New(Options{Mode: common.RuntimeModeBaked}, nil)
	s := e.MakeStyles("test", Definition{Source: Static(style.Tree{"color": "red"})})
	surface := target.NewMemorySurface("doc")
	s.Classes(Theme{Target: surface}, nil)
	e.Close()
	if e.Targets().Len() != 0 || len(e.resolved) != 0 {
		t.Errorf("expected caches to be dropped")
	}
	if s.Classes(Theme{Target: surface}, nil) == "" {
		t.Errorf("expected engine to stay usable after close")
	}
}
