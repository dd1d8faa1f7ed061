package css

import "strings"

// Decl is a single property/value pair in CSS form.
type Decl struct {
	Prop  string
	Value string
}

var (
	sides   = [4]string{"top", "right", "bottom", "left"}
	corners = [4]string{"top-left", "top-right", "bottom-right", "bottom-left"}
)

// box shorthands expanding into 4 longhands with the usual 1-4 value rules
var boxShorthands = map[string]func(side string) string{
	"margin":         func(s string) string { return "margin-" + s },
	"padding":        func(s string) string { return "padding-" + s },
	"inset":          func(s string) string { return s },
	"border-width":   func(s string) string { return "border-" + s + "-width" },
	"border-style":   func(s string) string { return "border-" + s + "-style" },
	"border-color":   func(s string) string { return "border-" + s + "-color" },
	"scroll-margin":  func(s string) string { return "scroll-margin-" + s },
	"scroll-padding": func(s string) string { return "scroll-padding-" + s },
}

var borderStyles = map[string]bool{
	"none": true, "hidden": true, "dotted": true, "dashed": true, "solid": true,
	"double": true, "groove": true, "ridge": true, "inset": true, "outset": true,
}

var borderWidths = map[string]bool{"thin": true, "medium": true, "thick": true}

// IsShorthand reports whether Expand knows how to split prop.
func IsShorthand(prop string) bool {
	if _, ok := boxShorthands[prop]; ok {
		return true
	}
	switch prop {
	case "border-radius", "gap", "overflow", "border", "outline", "flex",
		"border-top", "border-right", "border-bottom", "border-left":
		return true
	}
	return false
}

// Expand splits shorthand declaration into longhands. It returns false when
// prop is not a known shorthand or value cannot be split unambiguously, in
// which case the declaration should be used as is.
func Expand(prop, value string) ([]Decl, bool) {
	if strings.Contains(value, "!important") {
		return nil, false
	}
	fields := Fields(value)
	if len(fields) == 0 {
		return nil, false
	}

	if name, ok := boxShorthands[prop]; ok {
		vals, ok := box(fields)
		if !ok {
			return nil, false
		}
		out := make([]Decl, 0, 4)
		for i, s := range sides {
			out = append(out, Decl{Prop: name(s), Value: vals[i]})
		}
		return out, true
	}

	switch prop {
	case "border-radius":
		if strings.Contains(value, "/") {
			return nil, false
		}
		vals, ok := box(fields)
		if !ok {
			return nil, false
		}
		out := make([]Decl, 0, 4)
		for i, c := range corners {
			out = append(out, Decl{Prop: "border-" + c + "-radius", Value: vals[i]})
		}
		return out, true

	case "gap":
		return pair(fields, "row-gap", "column-gap")

	case "overflow":
		return pair(fields, "overflow-x", "overflow-y")

	case "border":
		parts, ok := borderParts(fields)
		if !ok {
			return nil, false
		}
		var out []Decl
		for _, s := range sides {
			out = append(out, sideDecls("border-"+s, parts)...)
		}
		return out, true

	case "border-top", "border-right", "border-bottom", "border-left", "outline":
		parts, ok := borderParts(fields)
		if !ok {
			return nil, false
		}
		return sideDecls(prop, parts), true

	case "flex":
		return flex(fields)
	}
	return nil, false
}

func box(fields []string) ([4]string, bool) {
	switch len(fields) {
	case 1:
		return [4]string{fields[0], fields[0], fields[0], fields[0]}, true
	case 2:
		return [4]string{fields[0], fields[1], fields[0], fields[1]}, true
	case 3:
		return [4]string{fields[0], fields[1], fields[2], fields[1]}, true
	case 4:
		return [4]string{fields[0], fields[1], fields[2], fields[3]}, true
	}
	return [4]string{}, false
}

func pair(fields []string, first, second string) ([]Decl, bool) {
	switch len(fields) {
	case 1:
		return []Decl{{first, fields[0]}, {second, fields[0]}}, true
	case 2:
		return []Decl{{first, fields[0]}, {second, fields[1]}}, true
	}
	return nil, false
}

// borderParts classifies "1px solid red" components into width, style and
// color. Missing components stay empty.
func borderParts(fields []string) ([3]string, bool) {
	var parts [3]string
	if len(fields) > 3 {
		return parts, false
	}
	for _, f := range fields {
		idx := 2
		switch {
		case borderStyles[strings.ToLower(f)]:
			idx = 1
		case isLength(f) || borderWidths[strings.ToLower(f)]:
			idx = 0
		}
		if parts[idx] != "" {
			return parts, false
		}
		parts[idx] = f
	}
	return parts, true
}

func sideDecls(prefix string, parts [3]string) []Decl {
	var out []Decl
	for i, suffix := range [3]string{"-width", "-style", "-color"} {
		if parts[i] != "" {
			out = append(out, Decl{Prop: prefix + suffix, Value: parts[i]})
		}
	}
	return out
}

func flex(fields []string) ([]Decl, bool) {
	grow, shrink, basis := "", "1", "0%"
	switch len(fields) {
	case 1:
		switch strings.ToLower(fields[0]) {
		case "auto":
			grow, basis = "1", "auto"
		case "none":
			grow, shrink, basis = "0", "0", "auto"
		case "initial":
			grow, basis = "0", "auto"
		default:
			if !isNumber(fields[0]) {
				return nil, false
			}
			grow = fields[0]
		}
	case 2:
		grow = fields[0]
		if isNumber(fields[1]) {
			shrink = fields[1]
		} else {
			basis = fields[1]
		}
	case 3:
		grow, shrink, basis = fields[0], fields[1], fields[2]
	default:
		return nil, false
	}
	return []Decl{{"flex-grow", grow}, {"flex-shrink", shrink}, {"flex-basis", basis}}, true
}

func isNumber(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.':
		case (r == '-' || r == '+') && i == 0:
		default:
			return false
		}
	}
	return true
}
