package engine

import (
	"github.com/spf13/cast"
)

// Selectors is a snapshot of component state definitions are matched
// against. These are not CSS selectors.
type Selectors map[string]any

// Matcher lists selector values definition requires. Nil matcher always
// applies.
type Matcher map[string]any

type unset struct{}

// Unset used as matcher value requires selector to be missing or nil.
var Unset any = unset{}

// Matches reports whether every key of m is satisfied by sel. Values are
// compared loosely: 1, 1.0 and "1" are equal, so are true and "true". A
// false matcher value is also satisfied by missing or nil selector.
func Matches(m Matcher, sel Selectors) bool {
	for key, want := range m {
		got := sel[key]
		if want == Unset {
			if got != nil {
				return false
			}
			continue
		}
		if b, ok := want.(bool); ok && !b && got == nil {
			continue
		}
		if !looseEqual(want, got) {
			return false
		}
	}
	return true
}

func looseEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	sa, err := cast.ToStringE(a)
	if err != nil {
		return false
	}
	sb, err := cast.ToStringE(b)
	if err != nil {
		return false
	}
	return sa == sb
}
