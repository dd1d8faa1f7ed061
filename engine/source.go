package engine

import (
	"fcss/style"
	"fcss/tokens"
)

// Source produces declaration tree of a definition. It is either Static,
// Dynamic or Precompiled.
type Source interface {
	source()
}

type staticSource struct {
	tree style.Tree
}

type dynamicSource struct {
	fn func(tokens.Accessor) style.Tree
}

type precompiledSource struct {
	src Source
	cm  *style.ClassMap
	// fingerprint of the table tokens were baked from, empty when map was
	// compiled in variables mode
	bakedFrom string
}

func (staticSource) source()      {}
func (dynamicSource) source()     {}
func (precompiledSource) source() {}

// Static returns source for token independent declarations.
func Static(tree style.Tree) Source {
	return staticSource{tree: tree}
}

// Dynamic returns source computing declarations from tokens. Function is
// called with variable accessor once per engine, or with baked accessor
// once per token table.
func Dynamic(fn func(tokens.Accessor) style.Tree) Source {
	return dynamicSource{fn: fn}
}

// Precompiled wraps src with ClassMap resolved ahead of time (see
// Styles.Compile). bakedFrom is tokens.Table.Fingerprint of the table map
// was baked from, or empty for variables mode maps. Token dependent maps are
// used only when call mode and table match, otherwise src is resolved.
func Precompiled(src Source, cm *style.ClassMap, bakedFrom string) Source {
	return precompiledSource{src: src, cm: cm, bakedFrom: bakedFrom}
}

// usable reports whether stored map matches requested mode and table.
func (s precompiledSource) usable(table *tokens.Table, baked bool) bool {
	if !IsDynamic(s.src) {
		return true
	}
	if !baked {
		return s.bakedFrom == ""
	}
	return s.bakedFrom != "" && s.bakedFrom == table.Fingerprint()
}

// IsDynamic reports whether source depends on token values.
func IsDynamic(src Source) bool {
	switch s := src.(type) {
	case dynamicSource:
		return true
	case precompiledSource:
		return IsDynamic(s.src)
	}
	return false
}

// Definition is one step of a cascade: declarations applied when Match is
// satisfied by selectors.
type Definition struct {
	Match  Matcher
	Source Source
}
