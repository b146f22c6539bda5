// By Navid M (c)
// Date: 2025
// License: GPL3
//
// Contains the recursive descent statement parser for the source language.

package lexer

import (
	"pytoc/pyast"
)

type parser struct {
	file string
	ts   *TokenStream
}

// Parser is the native pyast.Parser backend.
type Parser struct{}

// Parse implements pyast.Parser.
func (Parser) Parse(name string, src []byte) (*pyast.File, error) {
	return ParseFile(name, string(src))
}

// ParseFile tokenizes and parses one source unit.
func ParseFile(name, src string) (*pyast.File, error) {
	ts, err := NewTokenStream(name, src)
	if err != nil {
		return nil, err
	}
	p := &parser{file: name, ts: ts}
	body, err := p.parseStatements(false)
	if err != nil {
		return nil, err
	}
	return &pyast.File{Name: name, Body: body}, nil
}

func (p *parser) errorf(tok Token, format string, args ...interface{}) error {
	return pyast.NewSyntaxError(p.file, tok.pos(), format, args...)
}

func (p *parser) expect(v string) (Token, error) {
	tok := p.ts.Current()
	if !tok.is(v) {
		if tok.Type == NewlineTok || tok.Type == EndMarkerTok {
			return tok, p.errorf(tok, "expected '%s'", v)
		}
		return tok, p.errorf(tok, "invalid syntax: expected '%s', got %s", v, tok)
	}
	p.ts.Next()
	return tok, nil
}

func (p *parser) parseStatements(inBlock bool) ([]*pyast.Stmt, error) {
	var stmts []*pyast.Stmt
	for {
		tok := p.ts.Current()
		switch tok.Type {
		case EndMarkerTok:
			return stmts, nil
		case DedentTok:
			if !inBlock {
				return nil, p.errorf(tok, "unexpected unindent")
			}
			p.ts.Next()
			return stmts, nil
		case IndentTok:
			return nil, p.errorf(tok, "unexpected indent")
		case NewlineTok:
			p.ts.Next()
			continue
		}

		parsed, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, parsed...)
	}
}

func one(s *pyast.Stmt, err error) ([]*pyast.Stmt, error) {
	if err != nil {
		return nil, err
	}
	return []*pyast.Stmt{s}, nil
}

func (p *parser) parseStatement() ([]*pyast.Stmt, error) {
	tok := p.ts.Current()
	if tok.is("@") {
		return one(p.parseDecorated())
	}
	if tok.Type == "Name" {
		switch tok.Value {
		case "def":
			return one(p.parseFunctionDef(pyast.FunctionDef, tok))
		case "class":
			return one(p.parseClassDef(tok))
		case "if":
			return one(p.parseIf())
		case "while":
			return one(p.parseLoop(pyast.While, tok))
		case "for":
			return one(p.parseLoop(pyast.For, tok))
		case "with":
			return one(p.parseWith(pyast.With, tok))
		case "try":
			return one(p.parseTry())
		case "async":
			next := p.ts.Next()
			switch {
			case next.is("def"):
				return one(p.parseFunctionDef(pyast.AsyncFunctionDef, tok))
			case next.is("for"):
				return one(p.parseLoop(pyast.AsyncFor, tok))
			case next.is("with"):
				return one(p.parseWith(pyast.AsyncWith, tok))
			}
			return nil, p.errorf(next, "invalid syntax")
		case "match":
			if p.isMatchHeader() {
				return one(p.parseMatch())
			}
		case "elif", "else", "except", "finally", "case":
			return nil, p.errorf(tok, "invalid syntax: unexpected '%s'", tok.Value)
		}
	}
	return p.parseSimpleLine()
}

// isMatchHeader tells the soft keyword `match` apart from a name.
func (p *parser) isMatchHeader() bool {
	line := p.ts.line()
	if len(line) < 3 || !line[len(line)-1].is(":") {
		return false
	}
	next := line[1]
	switch next.Type {
	case "Name", "Number", "String":
		return true
	case "Op":
		switch next.Value {
		case "(", "[", "{", "-", "+", "~", "*":
			return true
		}
	}
	return false
}

// skipHeader advances past the colon that ends a compound statement header.
func (p *parser) skipHeader() error {
	var (
		depth   = 0
		lambdas = 0
	)
	for {
		tok := p.ts.Current()
		switch {
		case tok.Type == NewlineTok || tok.Type == EndMarkerTok:
			return p.errorf(tok, "expected ':'")
		case isOpen(tok):
			depth++
		case isClose(tok):
			depth--
		case depth == 0 && tok.is("lambda"):
			lambdas++
		case depth == 0 && tok.is(":"):
			if lambdas == 0 {
				p.ts.Next()
				return nil
			}
			lambdas--
		}
		p.ts.Next()
	}
}

// collectGroup consumes a bracketed group starting at the current token and
// returns the tokens between the brackets.
func (p *parser) collectGroup() []Token {
	start := p.ts.position + 1
	depth := 0
	for {
		tok := p.ts.Current()
		switch {
		case isOpen(tok):
			depth++
		case isClose(tok):
			depth--
			if depth == 0 {
				inner := p.ts.tokens[start:p.ts.position]
				p.ts.Next()
				return inner
			}
		}
		p.ts.Next()
	}
}

func (p *parser) parseSuite() ([]*pyast.Stmt, error) {
	tok := p.ts.Current()
	if tok.Type != NewlineTok {
		return p.parseSimpleLine()
	}
	p.ts.Next()
	if !p.ts.Match(IndentTok) {
		return nil, p.errorf(p.ts.Current(), "expected an indented block")
	}
	p.ts.Next()
	return p.parseStatements(true)
}

func (p *parser) parseDecorated() (*pyast.Stmt, error) {
	var decorators []*pyast.Expr
	for p.ts.Current().is("@") {
		at := p.ts.Current()
		p.ts.Next()
		line := p.ts.line()
		if len(line) == 0 {
			return nil, p.errorf(at, "invalid syntax")
		}
		dec, err := p.classify(line)
		if err != nil {
			return nil, err
		}
		decorators = append(decorators, dec)
		p.ts.position += len(line)
		p.ts.Next()
	}

	tok := p.ts.Current()
	var (
		stmt *pyast.Stmt
		err  error
	)
	switch {
	case tok.is("def"):
		stmt, err = p.parseFunctionDef(pyast.FunctionDef, tok)
	case tok.is("async") && p.ts.Peek(1).is("def"):
		p.ts.Next()
		stmt, err = p.parseFunctionDef(pyast.AsyncFunctionDef, tok)
	case tok.is("class"):
		stmt, err = p.parseClassDef(tok)
	default:
		return nil, p.errorf(tok, "invalid syntax: expected a definition after decorator")
	}
	if err != nil {
		return nil, err
	}
	stmt.Decorators = decorators
	return stmt, nil
}

func (p *parser) parseName() (Token, error) {
	tok := p.ts.Current()
	if tok.Type != "Name" || keywords[tok.Value] {
		return tok, p.errorf(tok, "invalid syntax: expected a name, got %s", tok)
	}
	p.ts.Next()
	return tok, nil
}

// parseFunctionDef parses from the `def` token; start is where the statement
// begins (the `async` token for coroutines).
func (p *parser) parseFunctionDef(kind pyast.Kind, start Token) (*pyast.Stmt, error) {
	p.ts.Next()
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	if p.ts.Current().is("[") {
		p.collectGroup()
	}
	open := p.ts.Current()
	if !open.is("(") {
		return nil, p.errorf(open, "invalid syntax: expected '('")
	}
	args, err := p.parseParams(open, p.collectGroup())
	if err != nil {
		return nil, err
	}
	if p.ts.Current().is("->") {
		p.ts.Next()
		if p.ts.Current().is(":") {
			return nil, p.errorf(p.ts.Current(), "expected return annotation")
		}
		if err := p.skipHeader(); err != nil {
			return nil, err
		}
	} else if _, err := p.expect(":"); err != nil {
		return nil, err
	}
	body, err := p.parseSuite()
	if err != nil {
		return nil, err
	}
	return &pyast.Stmt{Kind: kind, Pos: start.pos(), Name: name.Value, Args: args, Body: body}, nil
}

func (p *parser) parseClassDef(start Token) (*pyast.Stmt, error) {
	p.ts.Next()
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	if p.ts.Current().is("[") {
		p.collectGroup()
	}
	stmt := &pyast.Stmt{Kind: pyast.ClassDef, Pos: start.pos(), Name: name.Value}
	if p.ts.Current().is("(") {
		group := p.collectGroup()
		if len(group) > 0 {
			bases := &pyast.Expr{}
			if _, err := p.elements(bases, group); err != nil {
				return nil, err
			}
			stmt.Bases = bases.Elts
		}
	}
	if _, err := p.expect(":"); err != nil {
		return nil, err
	}
	if stmt.Body, err = p.parseSuite(); err != nil {
		return nil, err
	}
	return stmt, nil
}

// parseIf handles both `if` and the `elif` that continues a chain.
func (p *parser) parseIf() (*pyast.Stmt, error) {
	start := p.ts.Current()
	p.ts.Next()
	if err := p.skipHeader(); err != nil {
		return nil, err
	}
	body, err := p.parseSuite()
	if err != nil {
		return nil, err
	}
	stmt := &pyast.Stmt{Kind: pyast.If, Pos: start.pos(), Body: body}

	switch cur := p.ts.Current(); {
	case cur.is("elif"):
		elif, err := p.parseIf()
		if err != nil {
			return nil, err
		}
		stmt.Orelse = []*pyast.Stmt{elif}
	case cur.is("else"):
		if stmt.Orelse, err = p.parseElse(); err != nil {
			return nil, err
		}
	}
	return stmt, nil
}

func (p *parser) parseElse() ([]*pyast.Stmt, error) {
	p.ts.Next()
	if _, err := p.expect(":"); err != nil {
		return nil, err
	}
	return p.parseSuite()
}

func (p *parser) parseLoop(kind pyast.Kind, start Token) (*pyast.Stmt, error) {
	p.ts.Next()
	if err := p.skipHeader(); err != nil {
		return nil, err
	}
	body, err := p.parseSuite()
	if err != nil {
		return nil, err
	}
	stmt := &pyast.Stmt{Kind: kind, Pos: start.pos(), Body: body}
	if p.ts.Current().is("else") {
		if stmt.Orelse, err = p.parseElse(); err != nil {
			return nil, err
		}
	}
	return stmt, nil
}

func (p *parser) parseWith(kind pyast.Kind, start Token) (*pyast.Stmt, error) {
	p.ts.Next()
	if err := p.skipHeader(); err != nil {
		return nil, err
	}
	body, err := p.parseSuite()
	if err != nil {
		return nil, err
	}
	return &pyast.Stmt{Kind: kind, Pos: start.pos(), Body: body}, nil
}

func (p *parser) parseTry() (*pyast.Stmt, error) {
	start := p.ts.Current()
	p.ts.Next()
	if _, err := p.expect(":"); err != nil {
		return nil, err
	}
	body, err := p.parseSuite()
	if err != nil {
		return nil, err
	}
	stmt := &pyast.Stmt{Kind: pyast.Try, Pos: start.pos(), Body: body}

	handlers, final := 0, false
	for {
		cur := p.ts.Current()
		var clause []*pyast.Stmt
		switch {
		case cur.is("except") && !final:
			p.ts.Next()
			if err := p.skipHeader(); err != nil {
				return nil, err
			}
			clause, err = p.parseSuite()
			handlers++
		case cur.is("else") && handlers > 0 && !final:
			clause, err = p.parseElse()
		case cur.is("finally") && !final:
			clause, err = p.parseElse()
			final = true
		default:
			if handlers == 0 && !final {
				return nil, p.errorf(cur, "expected 'except' or 'finally' block")
			}
			return stmt, nil
		}
		if err != nil {
			return nil, err
		}
		stmt.Orelse = append(stmt.Orelse, clause...)
	}
}

func (p *parser) parseMatch() (*pyast.Stmt, error) {
	start := p.ts.Current()
	p.ts.Next()
	if err := p.skipHeader(); err != nil {
		return nil, err
	}
	if !p.ts.Match(NewlineTok) || p.ts.Peek(1).Type != IndentTok {
		return nil, p.errorf(p.ts.Current(), "expected an indented block")
	}
	p.ts.Next()
	p.ts.Next()

	stmt := &pyast.Stmt{Kind: pyast.Match, Pos: start.pos()}
	for !p.ts.Match(DedentTok) {
		cur := p.ts.Current()
		if cur.Type == EndMarkerTok || !cur.is("case") {
			return nil, p.errorf(cur, "invalid syntax: expected 'case'")
		}
		p.ts.Next()
		if err := p.skipHeader(); err != nil {
			return nil, err
		}
		body, err := p.parseSuite()
		if err != nil {
			return nil, err
		}
		stmt.Body = append(stmt.Body, body...)
	}
	p.ts.Next()
	return stmt, nil
}
