package gbnf

import (
	"strings"

	"github.com/iancoleman/strcase"
)

// SymbolFrom turns an arbitrary name into a GBNF symbol: kebab-case, with any
// character outside [A-Za-z0-9-] dropped. "JSONValue" and "json_value" both
// become "json-value". The result is empty if nothing usable remains.
func SymbolFrom(name string) string {
	kebab := strcase.ToKebab(name)
	kebab = strings.Map(func(c rune) rune {
		if isSymbolChar(c) {
			return c
		}
		return -1
	}, kebab)
	return strings.Trim(kebab, "-")
}
