// Package engine turns ordered style definitions and component state into
// class names, injecting rules they need into the rendering surface.
package engine

import (
	"runtime"
	"sync"
	"sync/atomic"
	"weak"

	"go.uber.org/zap"

	"fcss/common"
	"fcss/style"
	"fcss/target"
	"fcss/tokens"
)

// Options configure engine.
type Options struct {
	Mode           common.RuntimeMode
	HashPrefix     string
	RTLPrefix      string
	VariablePrefix string
}

// defKey identifies definition: Styles it belongs to and its position.
type defKey struct {
	styles uint64
	index  int
}

// bakedRow is memo graph level of a single token table.
type bakedRow struct {
	maps    map[defKey]*style.ClassMap
	cleanup runtime.Cleanup
}

// Engine owns all caches: resolved definitions, memo graph of baked token
// dependent definitions and per surface targets. Everything it hands out is
// safe for concurrent use.
type Engine struct {
	opts     Options
	resolver *style.Resolver
	targets  *target.Registry
	empty    *tokens.Table

	mu       sync.Mutex
	resolved map[defKey]*style.ClassMap // token independent and variable mode results
	baked    map[weak.Pointer[tokens.Table]]*bakedRow

	seq atomic.Uint64
	log *zap.Logger
}

// New creates engine.
func New(opts Options, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	if !opts.Mode.IsValid() {
		opts.Mode = common.RuntimeModeAuto
	}
	if opts.VariablePrefix == "" {
		opts.VariablePrefix = tokens.DefaultPrefix
	}
	log = log.Named("engine")
	e := &Engine{
		opts:     opts,
		resolver: style.NewResolver(opts.HashPrefix, opts.RTLPrefix, log),
		targets:  target.NewRegistry(log),
		empty:    tokens.NewTable(nil),
		resolved: make(map[defKey]*style.ClassMap),
		baked:    make(map[weak.Pointer[tokens.Table]]*bakedRow),
		log:      log,
	}
	log.Debug("Engine created", zap.Stringer("mode", opts.Mode), zap.String("prefix", opts.VariablePrefix))
	return e
}

// Close drops all caches and targets. Engine stays usable.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	for key, row := range e.baked {
		row.cleanup.Stop()
		delete(e.baked, key)
	}
	clear(e.resolved)
	e.targets.Close()
}

// Targets returns target registry of the engine.
func (e *Engine) Targets() *target.Registry {
	return e.targets
}

// Resolver returns style resolver engine uses.
func (e *Engine) Resolver() *style.Resolver {
	return e.resolver
}

// RootRule returns ":root" rule declaring table tokens as custom properties
// referenced in variables mode.
func (e *Engine) RootRule(t *tokens.Table) string {
	return tokens.RootRule(t, e.opts.VariablePrefix)
}

// MakeStyles registers ordered definitions. Definitions are copied, caller
// is free to reuse the slice.
func (e *Engine) MakeStyles(name string, defs ...Definition) *Styles {
	return &Styles{
		engine: e,
		id:     e.seq.Add(1),
		name:   name,
		defs:   append([]Definition(nil), defs...),
	}
}

// BakesTokens reports whether token values are substituted into rules
// injected into surface. When false rules reference custom properties and
// RootRule is needed to paint them.
func (e *Engine) BakesTokens(s *target.Surface) bool {
	return e.useBaked(e.targets.Get(s))
}

// useBaked decides token mode for target.
func (e *Engine) useBaked(t *target.Target) bool {
	switch e.opts.Mode {
	case common.RuntimeModeBaked:
		return true
	case common.RuntimeModeVariables:
		return false
	}
	if !t.SupportsCustomProperties() {
		e.log.Debug("Surface lacks custom properties, baking tokens", zap.String("target", t.Name()))
		return true
	}
	return false
}

// resolve returns ClassMap of a definition. Token independent definitions
// and variable mode results are computed once, baked results once per
// token table.
func (e *Engine) resolve(key defKey, src Source, table *tokens.Table, baked bool) *style.ClassMap {
	switch s := src.(type) {
	case precompiledSource:
		if s.usable(table, baked) {
			return s.cm
		}
		e.log.Debug("Precompiled map does not fit token mode, resolving", zap.Uint64("styles", key.styles), zap.Int("definition", key.index))
		return e.resolve(key, s.src, table, baked)
	case staticSource:
		return e.cached(key, func() *style.ClassMap { return e.resolver.Resolve(s.tree) })
	case dynamicSource:
		if !baked {
			return e.cached(key, func() *style.ClassMap {
				return e.resolver.Resolve(s.fn(tokens.Variables(e.opts.VariablePrefix)))
			})
		}
		if table == nil {
			table = e.empty
		}
		return e.memo(table, key, func() *style.ClassMap {
			return e.resolver.Resolve(s.fn(tokens.Baked(table)))
		})
	}
	return style.NewClassMap()
}

func (e *Engine) cached(key defKey, compute func() *style.ClassMap) *style.ClassMap {
	e.mu.Lock()
	cm, ok := e.resolved[key]
	e.mu.Unlock()
	if ok {
		return cm
	}

	// resolution is pure, racing callers compute identical maps
	cm = compute()

	e.mu.Lock()
	defer e.mu.Unlock()
	if prev, ok := e.resolved[key]; ok {
		return prev
	}
	e.resolved[key] = cm
	return cm
}

func (e *Engine) memo(table *tokens.Table, key defKey, compute func() *style.ClassMap) *style.ClassMap {
	tkey := weak.Make(table)

	e.mu.Lock()
	if row, ok := e.baked[tkey]; ok {
		if cm, ok := row.maps[key]; ok {
			e.mu.Unlock()
			return cm
		}
	}
	e.mu.Unlock()

	e.log.Debug("Memo graph miss", zap.Uint64("table", table.ID()), zap.Uint64("styles", key.styles), zap.Int("definition", key.index))
	cm := compute()

	e.mu.Lock()
	defer e.mu.Unlock()
	row, ok := e.baked[tkey]
	if !ok {
		row = &bakedRow{maps: make(map[defKey]*style.ClassMap)}
		row.cleanup = runtime.AddCleanup(table, e.release, tkey)
		e.baked[tkey] = row
	}
	if prev, ok := row.maps[key]; ok {
		return prev
	}
	row.maps[key] = cm
	return cm
}

func (e *Engine) release(key weak.Pointer[tokens.Table]) {
	e.mu.Lock()
	defer e.mu.Unlock()

	delete(e.baked, key)
}

// memoTables returns number of token tables memo graph holds rows for.
func (e *Engine) memoTables() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return len(e.baked)
}
