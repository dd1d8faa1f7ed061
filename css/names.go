// Package css has low level helpers to turn style declarations into CSS text:
// property naming, value formatting, shorthand expansion, direction flipping,
// content hashing and an in-memory stylesheet.
package css

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/cespare/xxhash/v2"
)

// Hyphenate converts camelCase property names to CSS form:
// "marginLeft" -> "margin-left", "WebkitTransform" -> "-webkit-transform",
// "msFlex" -> "-ms-flex". Names already in CSS form are returned unchanged.
func Hyphenate(prop string) string {
	if strings.HasPrefix(prop, "--") {
		return prop
	}
	if strings.IndexFunc(prop, unicode.IsUpper) < 0 {
		return prop
	}
	var sb strings.Builder
	sb.Grow(len(prop) + 4)
	for _, r := range prop {
		if unicode.IsUpper(r) {
			sb.WriteByte('-')
			sb.WriteRune(unicode.ToLower(r))
			continue
		}
		sb.WriteRune(r)
	}
	out := sb.String()
	if strings.HasPrefix(out, "ms-") {
		out = "-" + out
	}
	return out
}

// Hash returns content address for s suitable as a part of class name.
func Hash(s string) string {
	return strconv.FormatUint(xxhash.Sum64String(s), 36)
}

// Declaration returns canonical declaration text "prop:value;".
func Declaration(prop, value string) string {
	return prop + ":" + value + ";"
}
