package tokens

import (
	"golang.org/x/text/language"
)

// scripts written right to left
var rtlScripts = map[string]bool{
	"Adlm": true, "Arab": true, "Hebr": true, "Mand": true, "Nkoo": true,
	"Rohg": true, "Samr": true, "Syrc": true, "Thaa": true, "Yezi": true,
}

// IsRTL reports whether language tag ("ar", "he-IL", "az-Arab") is written
// right to left. Unparsable tags are treated as left to right.
func IsRTL(tag string) bool {
	t, err := language.Parse(tag)
	if err != nil {
		return false
	}
	script, _ := t.Script()
	return rtlScripts[script.String()]
}
