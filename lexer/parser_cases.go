// By Navid M (c)
// Date: 2025
// License: GPL3
//
// Contains the simple statement cases of the native parser.

package lexer

import (
	"pytoc/pyast"
)

var augOps = map[string]bool{
	"+=": true, "-=": true, "*=": true, "/=": true, "//=": true, "%=": true, "@=": true,
	"&=": true, "|=": true, "^=": true, ">>=": true, "<<=": true, "**=": true,
}

var compoundKeywords = map[string]bool{
	"def": true, "class": true, "if": true, "elif": true, "else": true, "while": true,
	"for": true, "with": true, "try": true, "except": true, "finally": true, "async": true,
}

// parseSimpleLine parses `;`-separated simple statements up to and
// including the NEWLINE that ends the logical line.
func (p *parser) parseSimpleLine() ([]*pyast.Stmt, error) {
	line := p.ts.line()
	if len(line) == 0 {
		return nil, p.errorf(p.ts.Current(), "invalid syntax")
	}
	segments := splitTop(line, ";")

	var stmts []*pyast.Stmt
	for i, seg := range segments {
		if len(seg) == 0 {
			if i == len(segments)-1 && i > 0 {
				break
			}
			return nil, p.errorf(line[0], "invalid syntax")
		}
		stmt, err := p.parseSimple(seg)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}

	p.ts.position += len(line)
	p.ts.Next()
	return stmts, nil
}

func (p *parser) parseSimple(seg []Token) (*pyast.Stmt, error) {
	var (
		head = seg[0]
		stmt = &pyast.Stmt{Pos: head.pos()}
		err  error
	)

	if head.Type == "Name" {
		switch head.Value {
		case "pass", "break", "continue":
			if len(seg) > 1 {
				return nil, p.errorf(seg[1], "invalid syntax")
			}
			stmt.Kind = map[string]pyast.Kind{"pass": pyast.Pass, "break": pyast.Break, "continue": pyast.Continue}[head.Value]
			return stmt, nil
		case "return":
			stmt.Kind = pyast.Return
			if len(seg) > 1 {
				stmt.Value, err = p.classify(seg[1:])
			}
			return stmt, err
		case "del":
			stmt.Kind = pyast.Delete
			return stmt, p.requireOperand(seg)
		case "raise":
			stmt.Kind = pyast.Raise
			return stmt, nil
		case "assert":
			stmt.Kind = pyast.Assert
			return stmt, p.requireOperand(seg)
		case "global", "nonlocal":
			stmt.Kind = pyast.Global
			if head.Value == "nonlocal" {
				stmt.Kind = pyast.Nonlocal
			}
			return stmt, p.requireOperand(seg)
		case "import":
			stmt.Kind = pyast.Import
			return stmt, p.requireOperand(seg)
		case "from":
			stmt.Kind = pyast.ImportFrom
			if !hasTop(seg, func(t Token) bool { return t.is("import") }) {
				return nil, p.errorf(head, "invalid syntax: expected 'import'")
			}
			return stmt, nil
		case "type":
			if len(seg) >= 4 && seg[1].Type == "Name" && !keywords[seg[1].Value] && (seg[2].is("=") || seg[2].is("[")) {
				stmt.Kind, stmt.Name = pyast.TypeAlias, seg[1].Value
				return stmt, nil
			}
		default:
			if compoundKeywords[head.Value] {
				return nil, p.errorf(head, "invalid syntax")
			}
		}
	}

	var (
		eqs   []int
		aug   = -1
		colon = -1
	)
	topLevel(seg, func(i int, t Token) bool {
		if t.is("lambda") {
			return false
		}
		if t.Type != "Op" {
			return true
		}
		switch {
		case t.Value == "=":
			eqs = append(eqs, i)
		case augOps[t.Value] && aug < 0 && len(eqs) == 0:
			aug = i
		case t.Value == ":" && colon < 0 && len(eqs) == 0 && aug < 0:
			colon = i
		}
		return true
	})

	switch {
	case aug >= 0:
		if len(eqs) > 0 {
			return nil, p.errorf(seg[eqs[0]], "invalid syntax")
		}
		stmt.Kind = pyast.AugAssign
		return p.assignment(stmt, seg[:aug], seg[aug+1:])
	case colon >= 0:
		stmt.Kind = pyast.AnnAssign
		end := len(seg)
		if len(eqs) > 1 {
			return nil, p.errorf(seg[eqs[1]], "invalid syntax")
		}
		if len(eqs) == 1 {
			end = eqs[0]
		}
		if end == colon+1 {
			return nil, p.errorf(seg[colon], "expected annotation")
		}
		var value []Token
		if len(eqs) == 1 {
			value = seg[eqs[0]+1:]
			if len(value) == 0 {
				return nil, p.errorf(seg[eqs[0]], "invalid syntax")
			}
		}
		return p.assignment(stmt, seg[:colon], value)
	case len(eqs) > 0:
		stmt.Kind = pyast.Assign
		start := 0
		for _, eq := range eqs {
			target, err := p.target(seg[start:eq], seg[eq])
			if err != nil {
				return nil, err
			}
			stmt.Targets = append(stmt.Targets, target)
			start = eq + 1
		}
		if start == len(seg) {
			return nil, p.errorf(seg[len(seg)-1], "invalid syntax")
		}
		stmt.Value, err = p.classify(seg[start:])
		return stmt, err
	}

	stmt.Kind = pyast.ExprStmt
	stmt.Value, err = p.classify(seg)
	return stmt, err
}

func (p *parser) requireOperand(seg []Token) error {
	if len(seg) < 2 {
		return p.errorf(seg[0], "invalid syntax")
	}
	return nil
}

func (p *parser) assignment(stmt *pyast.Stmt, target, value []Token) (*pyast.Stmt, error) {
	at := p.ts.Current()
	if len(target) > 0 {
		at = target[0]
	}
	t, err := p.target(target, at)
	if err != nil {
		return nil, err
	}
	stmt.Targets = []*pyast.Expr{t}
	if value == nil {
		return stmt, nil
	}
	if len(value) == 0 {
		return nil, p.errorf(at, "invalid syntax")
	}
	stmt.Value, err = p.classify(value)
	return stmt, err
}

// target classifies an assignment target and rejects unassignable shapes.
func (p *parser) target(toks []Token, at Token) (*pyast.Expr, error) {
	if len(toks) == 0 {
		return nil, p.errorf(at, "invalid syntax")
	}
	e, err := p.classify(toks)
	if err != nil {
		return nil, err
	}
	if err := p.assignable(e, toks[0]); err != nil {
		return nil, err
	}
	return e, nil
}

func (p *parser) assignable(e *pyast.Expr, at Token) error {
	switch e.Kind {
	case pyast.Name, pyast.Attribute, pyast.Subscript, pyast.Starred:
		return nil
	case pyast.Tuple, pyast.List:
		for _, elt := range e.Elts {
			if err := p.assignable(elt, at); err != nil {
				return err
			}
		}
		return nil
	case pyast.Constant:
		return p.errorf(at, "cannot assign to literal")
	}
	return p.errorf(at, "cannot assign to expression")
}
