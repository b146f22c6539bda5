// By Navid M (c)
// Date: 2025
// License: GPL3
//
// Contains expression shape classification for the native parser.

package lexer

import (
	"strings"

	"pytoc/pyast"
)

var keywords = map[string]bool{
	"False": true, "None": true, "True": true, "and": true, "as": true, "assert": true,
	"async": true, "await": true, "break": true, "class": true, "continue": true,
	"def": true, "del": true, "elif": true, "else": true, "except": true, "finally": true,
	"for": true, "from": true, "global": true, "if": true, "import": true, "in": true,
	"is": true, "lambda": true, "nonlocal": true, "not": true, "or": true, "pass": true,
	"raise": true, "return": true, "try": true, "while": true, "with": true, "yield": true,
}

var binaryOps = map[string]bool{
	"|": true, "^": true, "&": true, "<<": true, ">>": true, "+": true, "-": true,
	"*": true, "/": true, "//": true, "%": true, "@": true, "**": true,
}

var compareOps = map[string]bool{
	"<": true, ">": true, "==": true, ">=": true, "<=": true, "!=": true,
}

// endsOperand reports whether t can be the last token of an operand, which
// makes a following + or - binary rather than unary.
func endsOperand(t Token) bool {
	switch t.Type {
	case "Number", "String":
		return true
	case "Name":
		return !keywords[t.Value] || t.Value == "True" || t.Value == "False" || t.Value == "None"
	case "Op":
		return t.Value == ")" || t.Value == "]" || t.Value == "}" || t.Value == "..."
	}
	return false
}

func isOpen(t Token) bool {
	return t.Type == "Op" && (t.Value == "(" || t.Value == "[" || t.Value == "{")
}

func isClose(t Token) bool {
	return t.Type == "Op" && (t.Value == ")" || t.Value == "]" || t.Value == "}")
}

// topLevel calls fn with the index of every token outside brackets.
// Bracket tokens themselves are not reported. fn returns false to stop.
func topLevel(toks []Token, fn func(i int, t Token) bool) {
	depth := 0
	for i, t := range toks {
		switch {
		case isOpen(t):
			depth++
		case isClose(t):
			depth--
		case depth == 0:
			if !fn(i, t) {
				return
			}
		}
	}
}

func splitTop(toks []Token, sep string) [][]Token {
	var (
		parts [][]Token
		start = 0
	)
	topLevel(toks, func(i int, t Token) bool {
		if t.Type == "Op" && t.Value == sep {
			parts = append(parts, toks[start:i])
			start = i + 1
		}
		return true
	})
	return append(parts, toks[start:])
}

// wraps reports whether toks[0] is an opening bracket closed by the last token.
func wraps(toks []Token) bool {
	if len(toks) < 2 || !isOpen(toks[0]) {
		return false
	}
	depth := 0
	for i, t := range toks {
		switch {
		case isOpen(t):
			depth++
		case isClose(t):
			depth--
			if depth == 0 {
				return i == len(toks)-1
			}
		}
	}
	return false
}

func hasTop(toks []Token, pred func(Token) bool) bool {
	found := false
	topLevel(toks, func(_ int, t Token) bool {
		if pred(t) {
			found = true
			return false
		}
		return true
	})
	return found
}

func (p *parser) classify(toks []Token) (*pyast.Expr, error) {
	if len(toks) == 0 {
		return nil, p.errorf(p.ts.Current(), "invalid syntax")
	}
	e := &pyast.Expr{Pos: toks[0].pos()}

	if hasTop(toks, func(t Token) bool { return t.is(",") }) {
		e.Kind = pyast.Tuple
		return p.elements(e, toks)
	}

	head := toks[0]
	switch {
	case head.is("lambda"):
		e.Kind = pyast.Lambda
		return e, nil
	case head.is("*") && len(toks) > 1:
		e.Kind = pyast.Starred
		return e, nil
	case head.is("yield"), head.is("await"):
		e.Kind = pyast.Other
		return e, nil
	}

	if wraps(toks) {
		return p.classifyDisplay(e, toks)
	}

	if len(toks) == 1 {
		classifyAtom(e, head)
		return e, nil
	}

	if allStrings(toks) {
		classifyAtom(e, head)
		if e.Kind == pyast.Constant {
			parts := make([]string, len(toks))
			for i, t := range toks {
				parts[i] = t.Value
			}
			e.Literal = strings.Join(parts, " ")
		}
		return e, nil
	}

	e.Kind = classifyOperators(toks)
	return e, nil
}

// classifyOperators picks the shape of a multi-token expression from its
// lowest-precedence top-level operator, falling back to its trailer.
func classifyOperators(toks []Token) pyast.ExprKind {
	var boolOp, notOp, compare, binary, ternary, walrus bool
	topLevel(toks, func(i int, t Token) bool {
		switch {
		case t.is("if"):
			ternary = true
		case t.is(":="):
			walrus = true
		case t.is("or"), t.is("and"):
			boolOp = true
		case t.is("not") && i == 0:
			notOp = true
		case t.is("in"), t.is("is"), t.Type == "Op" && compareOps[t.Value]:
			compare = true
		case t.Type == "Op" && binaryOps[t.Value] && i > 0 && endsOperand(toks[i-1]):
			binary = true
		}
		return true
	})

	switch {
	case ternary, walrus:
		return pyast.Other
	case boolOp:
		return pyast.BoolOp
	case notOp:
		return pyast.UnaryOp
	case compare:
		return pyast.Compare
	case binary:
		return pyast.BinOp
	}

	head, last := toks[0], toks[len(toks)-1]
	switch {
	case head.Type == "Op" && (head.Value == "-" || head.Value == "+" || head.Value == "~"):
		return pyast.UnaryOp
	case last.is(")"):
		return pyast.Call
	case last.is("]"):
		return pyast.Subscript
	case last.Type == "Name" && toks[len(toks)-2].is("."):
		return pyast.Attribute
	}
	return pyast.Other
}

func (p *parser) classifyDisplay(e *pyast.Expr, toks []Token) (*pyast.Expr, error) {
	inner := toks[1 : len(toks)-1]
	comprehension := hasTop(inner, func(t Token) bool { return t.is("for") })

	switch toks[0].Value {
	case "(":
		if len(inner) == 0 {
			e.Kind = pyast.Tuple
			return e, nil
		}
		if comprehension {
			e.Kind = pyast.Other
			return e, nil
		}
		inExpr, err := p.classify(inner)
		if err != nil {
			return nil, err
		}
		inExpr.Pos = e.Pos
		return inExpr, nil
	case "[":
		if comprehension {
			e.Kind = pyast.Other
			return e, nil
		}
		e.Kind = pyast.List
	default:
		if comprehension {
			e.Kind = pyast.Other
			return e, nil
		}
		if len(inner) == 0 || hasTop(inner, func(t Token) bool { return t.is(":") || t.is("**") }) {
			e.Kind = pyast.Dict
			return e, nil
		}
		e.Kind = pyast.Set
	}
	if len(inner) == 0 {
		return e, nil
	}
	return p.elements(e, inner)
}

func (p *parser) elements(e *pyast.Expr, toks []Token) (*pyast.Expr, error) {
	parts := splitTop(toks, ",")
	for i, part := range parts {
		if len(part) == 0 {
			if i == len(parts)-1 && i > 0 {
				break
			}
			return nil, p.errorf(toks[0], "invalid syntax")
		}
		elt, err := p.classify(part)
		if err != nil {
			return nil, err
		}
		e.Elts = append(e.Elts, elt)
	}
	return e, nil
}

func allStrings(toks []Token) bool {
	for _, t := range toks {
		if t.Type != "String" {
			return false
		}
	}
	return true
}

func classifyAtom(e *pyast.Expr, t Token) {
	switch t.Type {
	case "Name":
		switch t.Value {
		case "True", "False":
			e.Kind, e.Const, e.Literal = pyast.Constant, pyast.Bool, t.Value
		case "None":
			e.Kind, e.Const, e.Literal = pyast.Constant, pyast.None, t.Value
		default:
			if keywords[t.Value] {
				e.Kind = pyast.Other
				return
			}
			e.Kind, e.ID = pyast.Name, t.Value
		}
	case "Number":
		e.Kind, e.Const, e.Literal = pyast.Constant, pyast.NumberKind(t.Value), t.Value
	case "String":
		kind := pyast.StringKind(t.Value)
		if kind == pyast.NotConst {
			e.Kind = pyast.Other
			return
		}
		e.Kind, e.Const, e.Literal = pyast.Constant, kind, t.Value
	case "Op":
		if t.Value == "..." {
			e.Kind, e.Const, e.Literal = pyast.Constant, pyast.Ellipsis, t.Value
			return
		}
		e.Kind = pyast.Other
	default:
		e.Kind = pyast.Other
	}
}
