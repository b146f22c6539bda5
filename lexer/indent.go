// By Navid M (c)
// Date: 2025
// License: GPL3
//
// Resolves physical lines into logical lines with INDENT and DEDENT markers.

package lexer

import (
	"pytoc/pyast"
)

const tabSize = 8

func getIndentation(ws string) int {
	indent := 0
	for _, char := range ws {
		switch char {
		case ' ':
			indent++
		case '\t':
			indent += tabSize - indent%tabSize
		case '\f':
			indent = 0
		}
	}
	return indent
}

var closers = map[string]string{")": "(", "]": "[", "}": "{"}

func layout(file string, raw []Token) ([]Token, error) {
	var (
		out            []Token
		indents        = []int{0}
		brackets       []Token
		atLineStart    = true
		lineIndent     = 0
		lineHasContent = false
		last           Token
	)

	for _, tok := range raw {
		switch tok.Type {
		case "Comment", "Continuation":
			continue
		case "Whitespace":
			if atLineStart {
				lineIndent = getIndentation(tok.Value)
			}
			continue
		case "Newline":
			if len(brackets) > 0 {
				continue
			}
			if lineHasContent {
				out = append(out, Token{Type: NewlineTok, Line: tok.Line, Col: tok.Col})
			}
			atLineStart = true
			lineIndent = 0
			lineHasContent = false
			continue
		}

		if atLineStart {
			atLineStart = false
			lineHasContent = true
			top := indents[len(indents)-1]
			switch {
			case lineIndent > top:
				indents = append(indents, lineIndent)
				out = append(out, Token{Type: IndentTok, Line: tok.Line, Col: 1})
			case lineIndent < top:
				for lineIndent < indents[len(indents)-1] {
					indents = indents[:len(indents)-1]
					out = append(out, Token{Type: DedentTok, Line: tok.Line, Col: 1})
				}
				if lineIndent != indents[len(indents)-1] {
					return nil, pyast.NewSyntaxError(file, tok.pos(), "unindent does not match any outer indentation level")
				}
			}
		}

		if tok.Type == "Op" {
			switch tok.Value {
			case "(", "[", "{":
				brackets = append(brackets, tok)
			case ")", "]", "}":
				if len(brackets) == 0 {
					return nil, pyast.NewSyntaxError(file, tok.pos(), "unmatched '%s'", tok.Value)
				}
				open := brackets[len(brackets)-1]
				if open.Value != closers[tok.Value] {
					return nil, pyast.NewSyntaxError(file, tok.pos(), "closing parenthesis '%s' does not match opening parenthesis '%s'", tok.Value, open.Value)
				}
				brackets = brackets[:len(brackets)-1]
			}
		}
		out = append(out, tok)
		last = tok
	}

	if len(brackets) > 0 {
		open := brackets[len(brackets)-1]
		return nil, pyast.NewSyntaxError(file, open.pos(), "'%s' was never closed", open.Value)
	}
	if lineHasContent {
		out = append(out, Token{Type: NewlineTok, Line: last.Line, Col: last.Col + len(last.Value)})
	}
	for len(indents) > 1 {
		indents = indents[:len(indents)-1]
		out = append(out, Token{Type: DedentTok, Line: last.Line + 1, Col: 1})
	}
	out = append(out, Token{Type: EndMarkerTok, Line: last.Line + 1, Col: 1})
	return out, nil
}
