// The only reason this package exists is because enums are shared between
// configuration and the engine, and I do not want the engine to depend on
// program configuration. So I have to separate enums into package.
package common

// Strategy used to substitute design tokens into style declarations.
// ENUM(auto, variables, baked)
type RuntimeMode int

// ForceBaked reports whether token values must be substituted at resolution
// time regardless of what rendering surface supports.
func (m RuntimeMode) ForceBaked() bool {
	return m == RuntimeModeBaked
}

// Kind of document rendering surface the CLI injects styles into.
// ENUM(memory, html, xhtml)
type SurfaceKind int
