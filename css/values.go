package css

import (
	"math"
	"strconv"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Properties which take plain numbers. Numbers for all other properties are
// treated as pixels.
var unitless = map[string]bool{
	"animation-iteration-count": true,
	"aspect-ratio":              true,
	"column-count":              true,
	"columns":                   true,
	"fill-opacity":              true,
	"flex":                      true,
	"flex-grow":                 true,
	"flex-shrink":               true,
	"font-weight":               true,
	"grid-column":               true,
	"grid-column-end":           true,
	"grid-column-start":         true,
	"grid-row":                  true,
	"grid-row-end":              true,
	"grid-row-start":            true,
	"line-clamp":                true,
	"line-height":               true,
	"opacity":                   true,
	"order":                     true,
	"orphans":                   true,
	"stroke-opacity":            true,
	"stroke-width":              true,
	"tab-size":                  true,
	"widows":                    true,
	"z-index":                   true,
	"zoom":                      true,
}

// IsUnitless reports whether numbers for prop are written without unit.
func IsUnitless(prop string) bool {
	return unitless[prop] || strings.HasPrefix(prop, "--")
}

// FormatValue converts scalar declaration value to CSS text. It returns false
// for values which cannot be represented (non scalars, empty strings, NaN).
func FormatValue(prop string, v any) (string, bool) {
	var f float64
	switch x := v.(type) {
	case string:
		s := strings.TrimSpace(x)
		return s, s != ""
	case int:
		f = float64(x)
	case int8:
		f = float64(x)
	case int16:
		f = float64(x)
	case int32:
		f = float64(x)
	case int64:
		f = float64(x)
	case uint:
		f = float64(x)
	case uint8:
		f = float64(x)
	case uint16:
		f = float64(x)
	case uint32:
		f = float64(x)
	case uint64:
		f = float64(x)
	case float32:
		f = float64(x)
	case float64:
		f = x
	default:
		return "", false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", false
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if f == 0 || IsUnitless(prop) {
		return s, true
	}
	return s + "px", true
}

// Fields splits CSS value into space separated components, keeping function
// arguments ("calc(1px + 2px)", "var(--a, 1px)") together.
func Fields(value string) []string {
	return split(value, css.WhitespaceToken)
}

// SplitList splits comma separated list on top level commas, trimming items.
func SplitList(value string) []string {
	items := split(value, css.CommaToken)
	for i := range items {
		items[i] = strings.TrimSpace(items[i])
	}
	return items
}

func split(value string, sep css.TokenType) []string {
	l := css.NewLexer(parse.NewInputString(value))

	var (
		out   []string
		cur   strings.Builder
		depth int
	)
	flush := func() {
		if s := strings.TrimSpace(cur.String()); s != "" {
			out = append(out, s)
		}
		cur.Reset()
	}
	for {
		tt, data := l.Next()
		switch tt {
		case css.ErrorToken:
			flush()
			return out
		case css.CommentToken:
			continue
		case css.FunctionToken, css.LeftParenthesisToken, css.LeftBracketToken:
			depth++
		case css.RightParenthesisToken, css.RightBracketToken:
			if depth > 0 {
				depth--
			}
		}
		if tt == sep && depth == 0 {
			flush()
			continue
		}
		cur.Write(data)
	}
}

// isLength reports whether a value component looks like a number or length.
func isLength(s string) bool {
	if s == "" {
		return false
	}
	switch s[0] {
	case '-', '+', '.', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return true
	}
	return strings.HasPrefix(s, "calc(") || strings.HasPrefix(s, "clamp(") ||
		strings.HasPrefix(s, "min(") || strings.HasPrefix(s, "max(")
}
