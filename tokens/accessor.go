package tokens

import (
	"slices"
	"strings"
)

// Ref is a reference to a single token produced by an Accessor.
type Ref struct {
	path     []string
	value    any
	variable bool
	valid    bool
}

// Path returns the token path the reference was built from.
func (r Ref) Path() []string {
	return slices.Clone(r.path)
}

// Valid is false when baked lookup did not find a primitive leaf.
func (r Ref) Valid() bool {
	return r.valid
}

// IsVariable reports whether the reference is a "var(...)" expression.
func (r Ref) IsVariable() bool {
	return r.variable
}

// Value returns what should be used as the declaration value: either the
// baked leaf (string or number) or the variable expression string.
func (r Ref) Value() any {
	return r.value
}

// String returns CSS text of the reference.
func (r Ref) String() string {
	if !r.valid {
		return ""
	}
	if s, ok := r.value.(string); ok {
		return s
	}
	s, _ := primitiveText(r.value)
	return s
}

// Accessor is handed to token dependent style functions.
type Accessor interface {
	// Get returns reference to the token under path (relative to accessor).
	Get(path ...string) Ref
	// Sub returns accessor rooted at path.
	Sub(path ...string) Accessor
	// Baked reports whether references carry concrete values.
	Baked() bool
}

// Variables returns accessor producing custom property references. It never
// reads token values, so results computed with it do not depend on a table.
func Variables(prefix string) Accessor {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return variables{prefix: prefix}
}

type variables struct {
	prefix string
	base   []string
}

func (v variables) Get(path ...string) Ref {
	full := join(v.base, path)
	if len(full) == 0 {
		return Ref{}
	}
	return Ref{
		path:     full,
		value:    "var(" + VariableName(v.prefix, full...) + ")",
		variable: true,
		valid:    true,
	}
}

func (v variables) Sub(path ...string) Accessor {
	return variables{prefix: v.prefix, base: join(v.base, path)}
}

func (variables) Baked() bool { return false }

// Baked returns accessor substituting concrete leaf values from t.
func Baked(t *Table) Accessor {
	return baked{table: t}
}

type baked struct {
	table *Table
	base  []string
}

func (b baked) Get(path ...string) Ref {
	full := join(b.base, path)
	ref := Ref{path: full}
	node, ok := b.table.Lookup(full...)
	if !ok {
		return ref
	}
	if _, ok := primitiveText(node); !ok {
		return ref
	}
	ref.value, ref.valid = node, true
	return ref
}

func (b baked) Sub(path ...string) Accessor {
	return baked{table: b.table, base: join(b.base, path)}
}

func (baked) Baked() bool { return true }

func join(base, path []string) []string {
	out := make([]string, 0, len(base)+len(path))
	out = append(out, base...)
	for _, p := range path {
		// allow dotted paths: Get("colorScheme.green.background")
		for part := range strings.SplitSeq(p, ".") {
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
