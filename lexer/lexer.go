// By Navid M (c)
// Date: 2025
// License: GPL3
//
// Contains the tokenizer for the native source parser.

package lexer

import (
	"fmt"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/cockroachdb/errors"

	"pytoc/pyast"
)

var pyLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Continuation", Pattern: `\\\r?\n`},
	{Name: "String", Pattern: `(?i:rb|br|fr|rf|r|b|u|f)?(?:'''(?s:\\.|.)*?'''|"""(?s:\\.|.)*?"""|'(?:\\.|[^'\\\n])*'|"(?:\\.|[^"\\\n])*")`},
	{Name: "Number", Pattern: `(?i:0x(?:_?[0-9a-f])+|0o(?:_?[0-7])+|0b(?:_?[01])+|(?:\d(?:_?\d)*(?:\.(?:\d(?:_?\d)*)?)?|\.\d(?:_?\d)*)(?:e[+-]?\d(?:_?\d)*)?j?)`},
	{Name: "Name", Pattern: `[\p{L}_][\p{L}\p{N}_]*`},
	{Name: "Newline", Pattern: `\r?\n`},
	{Name: "Whitespace", Pattern: `[ \t\f\r]+`},
	{Name: "Op", Pattern: `\*\*=|//=|>>=|<<=|->|:=|\.\.\.|\*\*|//|>>|<<|<=|>=|==|!=|[-+*/%@&|^~]=|[-+*/%@&|^~<>=.,:;()\[\]{}!]`},
})

// Synthetic token types produced from layout.
const (
	NewlineTok   = "NEWLINE"
	IndentTok    = "INDENT"
	DedentTok    = "DEDENT"
	EndMarkerTok = "ENDMARKER"
)

// Token represents a lexical token
type Token struct {
	Type  string
	Value string
	Line  int
	Col   int
}

func (t Token) pos() pyast.Pos {
	return pyast.Pos{Line: t.Line, Column: t.Col}
}

// is reports whether the token is the operator or name spelled v.
func (t Token) is(v string) bool {
	return (t.Type == "Op" || t.Type == "Name") && t.Value == v
}

func (t Token) String() string {
	if t.Value == "" {
		return t.Type
	}
	return fmt.Sprintf("%s %q", t.Type, t.Value)
}

// TokenStream represents a stream of tokens with current position
type TokenStream struct {
	tokens   []Token
	position int
}

// NewTokenStream creates a layout-resolved token stream from input text
func NewTokenStream(file, input string) (*TokenStream, error) {
	raw, err := tokenize(file, input)
	if err != nil {
		return nil, err
	}
	tokens, err := layout(file, raw)
	if err != nil {
		return nil, err
	}
	return &TokenStream{tokens: tokens}, nil
}

// Current returns the current token. The stream always ends in ENDMARKER,
// which is returned for any position past the end.
func (ts *TokenStream) Current() Token {
	if ts.position >= len(ts.tokens) {
		return ts.tokens[len(ts.tokens)-1]
	}
	return ts.tokens[ts.position]
}

// Next advances to the next token
func (ts *TokenStream) Next() Token {
	if ts.position < len(ts.tokens) {
		ts.position++
	}
	return ts.Current()
}

// Peek returns the token at offset positions ahead without advancing
func (ts *TokenStream) Peek(offset int) Token {
	pos := ts.position + offset
	if pos >= len(ts.tokens) {
		return ts.tokens[len(ts.tokens)-1]
	}
	return ts.tokens[pos]
}

// Match checks if current token matches any of the given types
func (ts *TokenStream) Match(tokenTypes ...string) bool {
	current := ts.Current()
	for _, tokenType := range tokenTypes {
		if current.Type == tokenType {
			return true
		}
	}
	return false
}

// IsAtEnd checks if we're at the end of the token stream
func (ts *TokenStream) IsAtEnd() bool {
	return ts.Current().Type == EndMarkerTok
}

// line returns the tokens up to, not including, the next NEWLINE.
func (ts *TokenStream) line() []Token {
	end := ts.position
	for end < len(ts.tokens) && ts.tokens[end].Type != NewlineTok && ts.tokens[end].Type != EndMarkerTok {
		end++
	}
	return ts.tokens[ts.position:end]
}

var symbolNames = func() map[lexer.TokenType]string {
	names := make(map[lexer.TokenType]string)
	for name, t := range pyLexer.Symbols() {
		names[t] = name
	}
	return names
}()

// tokenTypeToName converts a lexer.TokenType to its corresponding rule name.
func tokenTypeToName(tt lexer.TokenType) string {
	if name, ok := symbolNames[tt]; ok {
		return name
	}
	return fmt.Sprintf("%d", tt)
}

func tokenize(file, input string) ([]Token, error) {
	lex, err := pyLexer.LexString(file, input)
	if err != nil {
		return nil, lexError(file, err)
	}

	var tokens []Token
	for {
		token, err := lex.Next()
		if err != nil {
			return nil, lexError(file, err)
		}
		if token.EOF() {
			break
		}

		tok := Token{
			Type:  tokenTypeToName(token.Type),
			Value: token.Value,
			Line:  token.Pos.Line,
			Col:   token.Pos.Column,
		}
		if n := len(tokens); n > 0 && gluedToNumber(tokens[n-1], tok) {
			return nil, pyast.NewSyntaxError(file, tokens[n-1].pos(), "invalid number literal %q", tokens[n-1].Value+tok.Value)
		}
		tokens = append(tokens, tok)
	}

	return tokens, nil
}

// gluedToNumber reports whether tok continues the number prev without a
// separator, as in `1_`, `0x` or `1.5.2`. Keywords may follow directly.
func gluedToNumber(prev, tok Token) bool {
	if prev.Type != "Number" || tok.Line != prev.Line || tok.Col != prev.Col+len(prev.Value) {
		return false
	}
	switch tok.Type {
	case "Number":
		return true
	case "Name":
		return !keywords[tok.Value]
	}
	return false
}

func lexError(file string, err error) error {
	var lerr *lexer.Error
	if errors.As(err, &lerr) {
		return pyast.NewSyntaxError(file, pyast.Pos{Line: lerr.Pos.Line, Column: lerr.Pos.Column}, "%s", lerr.Msg)
	}
	return pyast.NewSyntaxError(file, pyast.Pos{}, "%v", err)
}
