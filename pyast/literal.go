// By Navid M (c)
// Date: 2025
// License: GPL3
//
// Literal spelling helpers shared by the parser backends.

package pyast

import "strings"

// NumberKind classifies a numeric literal by its spelling.
func NumberKind(spelling string) ConstKind {
	s := strings.ToLower(spelling)
	switch {
	case strings.HasSuffix(s, "j"):
		return Imaginary
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0o"), strings.HasPrefix(s, "0b"):
		return Int
	case strings.ContainsAny(s, ".e"):
		return Float
	}
	return Int
}

// StringKind classifies a string literal by its prefix. Formatted strings
// are not constants and report NotConst.
func StringKind(spelling string) ConstKind {
	quote := strings.IndexAny(spelling, `'"`)
	if quote < 0 {
		return NotConst
	}
	prefix := strings.ToLower(spelling[:quote])
	switch {
	case strings.Contains(prefix, "f"):
		return NotConst
	case strings.Contains(prefix, "b"):
		return Bytes
	}
	return String
}
