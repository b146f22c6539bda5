// By Navid M (c)
// Date: 2025
// License: GPL3
//
// Contains parameter list parsing and validation for function definitions.

package lexer

import (
	"pytoc/pyast"
)

// parseParams reads the tokens between the parentheses of a def header.
func (p *parser) parseParams(open Token, toks []Token) (*pyast.Arguments, error) {
	var (
		args   = &pyast.Arguments{}
		kwOnly = false
		parts  = splitTop(toks, ",")
	)

	for i, part := range parts {
		if len(part) == 0 {
			if i == len(parts)-1 {
				break
			}
			return nil, p.errorf(open, "invalid syntax")
		}
		head := part[0]
		switch {
		case head.is("/") && len(part) == 1:
			if kwOnly || len(args.PosOnly) > 0 || len(args.Args) == 0 {
				return nil, p.errorf(head, "/ must be ahead of *")
			}
			args.PosOnly, args.Args = args.Args, nil
		case head.is("*") && len(part) == 1:
			if kwOnly {
				return nil, p.errorf(head, "* argument may appear only once")
			}
			kwOnly = true
		case head.is("*"):
			if kwOnly {
				return nil, p.errorf(head, "* argument may appear only once")
			}
			param, err := p.parseParam(part[1:], false)
			if err != nil {
				return nil, err
			}
			args.VarArg = &param
			kwOnly = true
		case head.is("**"):
			param, err := p.parseParam(part[1:], false)
			if err != nil {
				return nil, err
			}
			if i != len(parts)-1 && !(i == len(parts)-2 && len(parts[i+1]) == 0) {
				return nil, p.errorf(head, "arguments cannot follow var-keyword argument")
			}
			args.KwArg = &param
		default:
			param, err := p.parseParam(part, true)
			if err != nil {
				return nil, err
			}
			if kwOnly {
				args.KwOnly = append(args.KwOnly, param)
			} else {
				args.Args = append(args.Args, param)
			}
		}
	}

	if kwOnly && args.VarArg == nil && len(args.KwOnly) == 0 {
		return nil, p.errorf(open, "named arguments must follow bare *")
	}
	if err := args.Validate(); err != nil {
		return nil, p.errorf(open, "%s", err)
	}
	return args, nil
}

// parseParam reads `name [: annotation] [= default]`.
func (p *parser) parseParam(toks []Token, defaultable bool) (pyast.Param, error) {
	if len(toks) == 0 || toks[0].Type != "Name" || keywords[toks[0].Value] {
		tok := p.ts.Current()
		if len(toks) > 0 {
			tok = toks[0]
		}
		return pyast.Param{}, p.errorf(tok, "invalid parameter")
	}
	param := pyast.Param{Name: toks[0].Value}
	rest := toks[1:]

	if len(rest) > 0 && rest[0].is(":") {
		end := len(rest)
		topLevel(rest, func(i int, t Token) bool {
			if t.is("=") {
				end = i
				return false
			}
			return true
		})
		if end == 1 {
			return pyast.Param{}, p.errorf(rest[0], "expected annotation")
		}
		param.Annotated = true
		rest = rest[end:]
	}

	if len(rest) > 0 {
		if !rest[0].is("=") || len(rest) == 1 {
			return pyast.Param{}, p.errorf(rest[0], "invalid parameter")
		}
		if !defaultable {
			return pyast.Param{}, p.errorf(rest[0], "var-positional argument cannot have default value")
		}
		param.HasDefault = true
	}
	return param, nil
}
