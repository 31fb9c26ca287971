// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package nim

// reservedKeywords contains all Nim keywords.
var reservedKeywords = map[string]struct{}{
	"addr":      {},
	"and":       {},
	"as":        {},
	"asm":       {},
	"bind":      {},
	"block":     {},
	"break":     {},
	"case":      {},
	"cast":      {},
	"concept":   {},
	"const":     {},
	"continue":  {},
	"converter": {},
	"defer":     {},
	"discard":   {},
	"distinct":  {},
	"div":       {},
	"do":        {},
	"elif":      {},
	"else":      {},
	"end":       {},
	"enum":      {},
	"except":    {},
	"export":    {},
	"finally":   {},
	"for":       {},
	"from":      {},
	"func":      {},
	"if":        {},
	"import":    {},
	"in":        {},
	"include":   {},
	"interface": {},
	"is":        {},
	"isnot":     {},
	"iterator":  {},
	"let":       {},
	"macro":     {},
	"method":    {},
	"mixin":     {},
	"mod":       {},
	"nil":       {},
	"not":       {},
	"notin":     {},
	"object":    {},
	"of":        {},
	"or":        {},
	"out":       {},
	"proc":      {},
	"ptr":       {},
	"raise":     {},
	"ref":       {},
	"return":    {},
	"shl":       {},
	"shr":       {},
	"static":    {},
	"template":  {},
	"try":       {},
	"tuple":     {},
	"type":      {},
	"using":     {},
	"var":       {},
	"when":      {},
	"while":     {},
	"xor":       {},
	"yield":     {},
}

// IsReserved checks if a name is a Nim keyword.
func IsReserved(name string) bool {
	_, ok := reservedKeywords[name]
	return ok
}

// Escape returns name as a usable Nim identifier. Keywords are wrapped in
// backticks.
func Escape(name string) string {
	if IsReserved(name) {
		return "`" + name + "`"
	}
	return name
}
