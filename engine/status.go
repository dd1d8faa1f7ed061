package engine

import (
	"maps"
	"math"
	"strconv"

	"fcss/style"
	"fcss/tokens"
)

// StatusClassName is static class every status root carries.
const StatusClassName = "ui-status"

// PxToRem converts pixels to rem assuming 14px root font size.
func PxToRem(px float64) string {
	if px == 0 {
		return "0"
	}
	return strconv.FormatFloat(math.Round(px/14*10000)/10000, 'f', -1, 64) + "rem"
}

func statusColor(prop string, path ...string) Source {
	return Dynamic(func(t tokens.Accessor) style.Tree {
		return style.Tree{prop: t.Sub("colorScheme").Get(path...)}
	})
}

func square(px float64) Source {
	return Static(style.Tree{"width": PxToRem(px), "height": PxToRem(px)})
}

// StatusDefinitions returns cascade of status indicator root.
func StatusDefinitions() []Definition {
	return []Definition{
		{Source: Static(style.Tree{
			"alignItems":     "center",
			"display":        "inline-flex",
			"justifyContent": "center",
			"verticalAlign":  "middle",
			"borderRadius":   "9999px",
		})},
		{Source: statusColor("backgroundColor", "default", "background5")},

		{Match: Matcher{"state": "success"}, Source: statusColor("backgroundColor", "green", "background")},
		{Match: Matcher{"state": "info"}, Source: statusColor("backgroundColor", "brand", "background")},
		{Match: Matcher{"state": "warning"}, Source: statusColor("backgroundColor", "yellow", "background")},
		{Match: Matcher{"state": "error"}, Source: statusColor("backgroundColor", "red", "background")},

		{Match: Matcher{"size": "smallest"}, Source: square(6)},
		{Match: Matcher{"size": "smaller"}, Source: square(10)},
		{Match: Matcher{"size": "small"}, Source: square(10)},
		{Match: Matcher{"size": "medium"}, Source: square(10)},
		{Match: Matcher{"size": "large"}, Source: square(10)},
		{Match: Matcher{"size": "larger"}, Source: square(16)},
		{Match: Matcher{"size": "largest"}, Source: square(0)},
	}
}

// StatusIconDefinitions returns cascade of status indicator icon.
func StatusIconDefinitions() []Definition {
	return []Definition{
		{Source: Static(style.Tree{
			"alignItems":     "center",
			"display":        "inline-flex",
			"justifyContent": "center",
			"width":          PxToRem(7),
			"height":         PxToRem(7),
			"& > :first-child": style.Tree{
				"height": "100%",
				"width":  "100%",
				"& svg": style.Tree{
					"height": "100%",
					"width":  "100%",
				},
			},
		})},
		{Source: statusColor("color", "default", "foreground4")},

		{Match: Matcher{"state": "success"}, Source: statusColor("color", "green", "foreground1")},
		{Match: Matcher{"state": "info"}, Source: statusColor("color", "default", "foreground2")},
		{Match: Matcher{"state": "warning"}, Source: statusColor("color", "yellow", "foreground2")},
		{Match: Matcher{"state": "error"}, Source: statusColor("color", "red", "foreground2")},
	}
}

// StatusBehavior is default accessibility of status: root is an image,
// icon is decorative.
type StatusBehavior struct{}

// Props implements A11yProvider.
func (StatusBehavior) Props(part string, base map[string]any) map[string]any {
	out := maps.Clone(base)
	if out == nil {
		out = make(map[string]any)
	}
	switch part {
	case "root":
		out["role"] = "img"
	case "icon":
		out["aria-hidden"] = "true"
	}
	return out
}

// StatusProps are status indicator inputs.
type StatusProps struct {
	State     string // success, info, warning, error, unknown
	Size      string // smallest ... largest
	ClassName string
	A11y      A11yProvider
}

// StatusParts are attributes of status elements.
type StatusParts struct {
	Root map[string]any
	Icon map[string]any
}

// Status is a state indicator showing how components consume the engine.
type Status struct {
	root *Styles
	icon *Styles
}

// NewStatus registers status styles with engine.
func NewStatus(e *Engine) *Status {
	return &Status{
		root: e.MakeStyles("status", StatusDefinitions()...),
		icon: e.MakeStyles("status-icon", StatusIconDefinitions()...),
	}
}

// Render computes attributes of status root and icon.
func (s *Status) Render(p Provider, props StatusProps) StatusParts {
	if props.State == "" {
		props.State = "unknown"
	}
	if props.Size == "" {
		props.Size = "medium"
	}
	a11y := props.A11y
	if a11y == nil {
		a11y = StatusBehavior{}
	}

	sel := Selectors{"state": props.State, "size": props.Size}
	theme := p.Theme()
	return StatusParts{
		Root: a11y.Props("root", map[string]any{"class": s.root.Classes(theme, sel, StatusClassName, props.ClassName)}),
		Icon: a11y.Props("icon", map[string]any{"class": s.icon.Classes(theme, sel), "as": "span"}),
	}
}
