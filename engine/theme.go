package engine

import (
	"fcss/target"
	"fcss/tokens"
)

// Theme is rendering context of a call.
type Theme struct {
	RTL    bool
	Tokens *tokens.Table
	Target *target.Surface // nil renders headless
}

// Theme makes Theme its own Provider.
func (t Theme) Theme() Theme {
	return t
}

// Provider supplies rendering context, usually from whatever carries
// application theme.
type Provider interface {
	Theme() Theme
}

// A11yProvider computes accessibility attributes for component parts.
// Components call it, the engine never does.
type A11yProvider interface {
	Props(part string, base map[string]any) map[string]any
}
