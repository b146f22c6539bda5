// By Navid M (c)
// Date: 2025
// License: GPL3
//
// Prior to parsing (therefore: raw input) source processing.
// Contains functions to normalise source text before it reaches a parser.

package preprocessor

import "strings"

const bom = "\uFEFF"

// NormalizeSource applies every source-level pass in order.
func NormalizeSource(source string) string {
	source = StripBOM(source)
	source = NormalizeNewlines(source)
	source = EnsureTrailingNewline(source)
	return source
}

func StripBOM(source string) string {
	return strings.TrimPrefix(source, bom)
}

// NormalizeNewlines rewrites CRLF and lone CR line endings to LF.
func NormalizeNewlines(source string) string {
	if !strings.Contains(source, "\r") {
		return source
	}
	source = strings.ReplaceAll(source, "\r\n", "\n")
	return strings.ReplaceAll(source, "\r", "\n")
}

func EnsureTrailingNewline(source string) string {
	if source == "" || strings.HasSuffix(source, "\n") {
		return source
	}
	return source + "\n"
}
