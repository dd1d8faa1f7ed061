package css

import "strings"

var (
	// properties whose keyword values mirror horizontally
	mirroredValues = map[string]bool{
		"float":        true,
		"clear":        true,
		"text-align":   true,
		"caption-side": true,
	}

	cursorFlips = map[string]string{
		"e-resize":  "w-resize",
		"w-resize":  "e-resize",
		"ne-resize": "nw-resize",
		"nw-resize": "ne-resize",
		"se-resize": "sw-resize",
		"sw-resize": "se-resize",
	}
)

// Flip returns direction mirrored property and value for right-to-left
// rendering. Direction insensitive declarations are returned unchanged.
func Flip(prop, value string) (string, string) {
	fprop := flipProperty(prop)

	switch {
	case mirroredValues[prop]:
		value = swapWord(value)
	case prop == "cursor":
		if v, ok := cursorFlips[strings.ToLower(value)]; ok {
			value = v
		}
	case prop == "background-position", prop == "background-position-x",
		prop == "transform-origin", prop == "object-position":
		value = swapWords(value)
	case prop == "box-shadow", prop == "text-shadow":
		value = flipShadows(value)
	}
	return fprop, value
}

// flipProperty swaps "left" and "right" name segments: "margin-left" ->
// "margin-right", "border-top-left-radius" -> "border-top-right-radius".
func flipProperty(prop string) string {
	if strings.HasPrefix(prop, "--") || !strings.Contains(prop, "left") && !strings.Contains(prop, "right") {
		return prop
	}
	parts := strings.Split(prop, "-")
	for i, p := range parts {
		parts[i] = swapWord(p)
	}
	return strings.Join(parts, "-")
}

func swapWord(w string) string {
	switch strings.ToLower(w) {
	case "left":
		return "right"
	case "right":
		return "left"
	}
	return w
}

func swapWords(value string) string {
	fields := Fields(value)
	changed := false
	for i, f := range fields {
		if s := swapWord(f); s != f {
			fields[i], changed = s, true
		}
	}
	if !changed {
		return value
	}
	return strings.Join(fields, " ")
}

// flipShadows negates horizontal offset of every shadow in the list.
func flipShadows(value string) string {
	if strings.EqualFold(strings.TrimSpace(value), "none") {
		return value
	}
	shadows := SplitList(value)
	changed := false
	for i, sh := range shadows {
		fields := Fields(sh)
		for j, f := range fields {
			if !isLength(f) {
				continue
			}
			if n := negate(f); n != f {
				fields[j], changed = n, true
			}
			break
		}
		shadows[i] = strings.Join(fields, " ")
	}
	if !changed {
		return value
	}
	return strings.Join(shadows, ",")
}

func negate(length string) string {
	switch {
	case strings.HasPrefix(length, "-"):
		return length[1:]
	case strings.HasPrefix(length, "+"):
		return "-" + length[1:]
	case strings.Trim(length, "0.") == "" || isZeroWithUnit(length):
		return length
	case strings.HasPrefix(length, "calc("):
		return "calc(-1 * " + strings.TrimSuffix(strings.TrimPrefix(length, "calc("), ")") + ")"
	case strings.Contains(length, "("):
		return length
	}
	return "-" + length
}

func isZeroWithUnit(s string) bool {
	i := strings.IndexFunc(s, func(r rune) bool { return (r < '0' || r > '9') && r != '.' })
	if i <= 0 {
		return false
	}
	return strings.Trim(s[:i], "0.") == ""
}
