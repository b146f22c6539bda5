// By Navid M (c)
// Date: 2025
// License: GPL3
//
// Conversion from the tree-sitter concrete tree to the generic source tree.

package treesitter

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"pytoc/pyast"
)

type converter struct {
	file string
	src  []byte
}

func (c *converter) text(n *sitter.Node) string {
	return n.Utf8Text(c.src)
}

func (c *converter) errorf(n *sitter.Node, format string, args ...interface{}) error {
	return pyast.NewSyntaxError(c.file, position(n), format, args...)
}

func isExtra(n *sitter.Node) bool {
	switch n.Kind() {
	case "comment", "line_continuation":
		return true
	}
	return false
}

// namedChildren returns the named children of n without comments.
func namedChildren(n *sitter.Node) []*sitter.Node {
	var out []*sitter.Node
	for i := uint(0); i < n.NamedChildCount(); i++ {
		child := n.NamedChild(i)
		if child == nil || isExtra(child) {
			continue
		}
		out = append(out, child)
	}
	return out
}

func childOfKind(n *sitter.Node, kind string) *sitter.Node {
	for _, child := range namedChildren(n) {
		if child.Kind() == kind {
			return child
		}
	}
	return nil
}

func isAsync(n *sitter.Node) bool {
	first := n.Child(0)
	return first != nil && first.Kind() == "async"
}

func (c *converter) statements(n *sitter.Node) ([]*pyast.Stmt, error) {
	if n == nil {
		return nil, nil
	}
	if err := c.checkLayout(n); err != nil {
		return nil, err
	}
	var out []*pyast.Stmt
	for _, child := range namedChildren(n) {
		stmt, err := c.stmt(child)
		if err != nil {
			return nil, err
		}
		out = append(out, stmt)
	}
	return out, nil
}

func (c *converter) stmt(n *sitter.Node) (*pyast.Stmt, error) {
	stmt := &pyast.Stmt{Pos: position(n)}
	var err error

	switch n.Kind() {
	case "expression_statement":
		return c.expressionStatement(n)
	case "function_definition":
		return c.functionDef(n)
	case "class_definition":
		return c.classDef(n)
	case "decorated_definition":
		return c.decorated(n)
	case "if_statement":
		return c.ifStatement(n)
	case "for_statement", "while_statement":
		stmt.Kind = pyast.While
		if n.Kind() == "for_statement" {
			stmt.Kind = pyast.For
			if isAsync(n) {
				stmt.Kind = pyast.AsyncFor
			}
		}
		if stmt.Body, err = c.statements(n.ChildByFieldName("body")); err != nil {
			return nil, err
		}
		if alt := n.ChildByFieldName("alternative"); alt != nil {
			stmt.Orelse, err = c.statements(alt.ChildByFieldName("body"))
		}
	case "with_statement":
		stmt.Kind = pyast.With
		if isAsync(n) {
			stmt.Kind = pyast.AsyncWith
		}
		stmt.Body, err = c.statements(n.ChildByFieldName("body"))
	case "try_statement":
		return c.tryStatement(n)
	case "match_statement":
		stmt.Kind = pyast.Match
		if body := n.ChildByFieldName("body"); body != nil {
			for _, clause := range namedChildren(body) {
				inner, err := c.statements(clause.ChildByFieldName("consequence"))
				if err != nil {
					return nil, err
				}
				stmt.Body = append(stmt.Body, inner...)
			}
		}
	case "return_statement":
		stmt.Kind = pyast.Return
		if children := namedChildren(n); len(children) > 0 {
			stmt.Value = c.exprList(n, children)
		}
	case "pass_statement":
		stmt.Kind = pyast.Pass
	case "break_statement":
		stmt.Kind = pyast.Break
	case "continue_statement":
		stmt.Kind = pyast.Continue
	case "delete_statement":
		stmt.Kind = pyast.Delete
	case "raise_statement":
		stmt.Kind = pyast.Raise
	case "assert_statement":
		stmt.Kind = pyast.Assert
	case "global_statement":
		stmt.Kind = pyast.Global
	case "nonlocal_statement":
		stmt.Kind = pyast.Nonlocal
	case "import_statement":
		stmt.Kind = pyast.Import
	case "import_from_statement", "future_import_statement":
		stmt.Kind = pyast.ImportFrom
	case "type_alias_statement":
		stmt.Kind = pyast.TypeAlias
		if left := n.ChildByFieldName("left"); left != nil {
			stmt.Name = c.text(left)
		}
	default:
		stmt.Kind = pyast.ExprStmt
		stmt.Value = &pyast.Expr{Kind: pyast.Other, Pos: position(n)}
	}
	if err != nil {
		return nil, err
	}
	return stmt, nil
}

func (c *converter) expressionStatement(n *sitter.Node) (*pyast.Stmt, error) {
	children := namedChildren(n)
	if len(children) == 1 {
		switch child := children[0]; child.Kind() {
		case "assignment":
			return c.assignment(n, child)
		case "augmented_assignment":
			return &pyast.Stmt{
				Kind:    pyast.AugAssign,
				Pos:     position(n),
				Targets: []*pyast.Expr{c.expr(child.ChildByFieldName("left"))},
				Value:   c.expr(child.ChildByFieldName("right")),
			}, nil
		}
	}
	return &pyast.Stmt{Kind: pyast.ExprStmt, Pos: position(n), Value: c.exprList(n, children)}, nil
}

// assignment flattens chained `a = b = 1` into one Assign with every target.
func (c *converter) assignment(stmtNode, n *sitter.Node) (*pyast.Stmt, error) {
	stmt := &pyast.Stmt{Pos: position(stmtNode)}
	if n.ChildByFieldName("type") != nil {
		stmt.Kind = pyast.AnnAssign
		stmt.Targets = []*pyast.Expr{c.expr(n.ChildByFieldName("left"))}
		if right := n.ChildByFieldName("right"); right != nil {
			stmt.Value = c.expr(right)
		}
		return stmt, nil
	}

	stmt.Kind = pyast.Assign
	for cur := n; ; {
		stmt.Targets = append(stmt.Targets, c.expr(cur.ChildByFieldName("left")))
		right := cur.ChildByFieldName("right")
		if right == nil {
			return nil, c.errorf(cur, "invalid syntax")
		}
		if right.Kind() == "assignment" && right.ChildByFieldName("type") == nil {
			cur = right
			continue
		}
		stmt.Value = c.expr(right)
		return stmt, nil
	}
}

func (c *converter) functionDef(n *sitter.Node) (*pyast.Stmt, error) {
	stmt := &pyast.Stmt{Kind: pyast.FunctionDef, Pos: position(n)}
	if isAsync(n) {
		stmt.Kind = pyast.AsyncFunctionDef
	}
	stmt.Name = c.text(n.ChildByFieldName("name"))

	var err error
	if stmt.Args, err = c.parameters(n.ChildByFieldName("parameters")); err != nil {
		return nil, err
	}
	if stmt.Body, err = c.statements(n.ChildByFieldName("body")); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (c *converter) parameters(n *sitter.Node) (*pyast.Arguments, error) {
	args := &pyast.Arguments{}
	if n == nil {
		return args, nil
	}
	kwOnly := false
	add := func(p pyast.Param) {
		if kwOnly {
			args.KwOnly = append(args.KwOnly, p)
		} else {
			args.Args = append(args.Args, p)
		}
	}
	splat := func(p *sitter.Node, annotated bool) *pyast.Param {
		param := &pyast.Param{Annotated: annotated}
		if inner := namedChildren(p); len(inner) > 0 {
			param.Name = c.text(inner[0])
		}
		return param
	}

	for _, child := range namedChildren(n) {
		switch child.Kind() {
		case "identifier":
			add(pyast.Param{Name: c.text(child)})
		case "typed_parameter":
			inner := namedChildren(child)
			if len(inner) == 0 {
				return nil, c.errorf(child, "invalid parameter")
			}
			switch inner[0].Kind() {
			case "list_splat_pattern":
				args.VarArg = splat(inner[0], true)
				kwOnly = true
			case "dictionary_splat_pattern":
				args.KwArg = splat(inner[0], true)
			default:
				add(pyast.Param{Name: c.text(inner[0]), Annotated: true})
			}
		case "default_parameter", "typed_default_parameter":
			name := child.ChildByFieldName("name")
			if name == nil || name.Kind() != "identifier" {
				return nil, c.errorf(child, "invalid parameter")
			}
			add(pyast.Param{
				Name:       c.text(name),
				Annotated:  child.Kind() == "typed_default_parameter",
				HasDefault: true,
			})
		case "list_splat_pattern":
			args.VarArg = splat(child, false)
			kwOnly = true
		case "dictionary_splat_pattern":
			args.KwArg = splat(child, false)
		case "keyword_separator":
			kwOnly = true
		case "positional_separator":
			args.PosOnly, args.Args = args.Args, nil
		default:
			return nil, c.errorf(child, "invalid parameter")
		}
	}

	if err := args.Validate(); err != nil {
		return nil, c.errorf(n, "%s", err)
	}
	return args, nil
}

func (c *converter) classDef(n *sitter.Node) (*pyast.Stmt, error) {
	stmt := &pyast.Stmt{Kind: pyast.ClassDef, Pos: position(n), Name: c.text(n.ChildByFieldName("name"))}
	if supers := n.ChildByFieldName("superclasses"); supers != nil {
		for _, base := range namedChildren(supers) {
			stmt.Bases = append(stmt.Bases, c.expr(base))
		}
	}
	var err error
	if stmt.Body, err = c.statements(n.ChildByFieldName("body")); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (c *converter) decorated(n *sitter.Node) (*pyast.Stmt, error) {
	def := n.ChildByFieldName("definition")
	if def == nil {
		return nil, c.errorf(n, "invalid syntax: expected a definition after decorator")
	}
	stmt, err := c.stmt(def)
	if err != nil {
		return nil, err
	}
	for _, child := range namedChildren(n) {
		if child.Kind() != "decorator" {
			continue
		}
		if inner := namedChildren(child); len(inner) > 0 {
			stmt.Decorators = append(stmt.Decorators, c.expr(inner[0]))
		}
	}
	return stmt, nil
}

func (c *converter) ifStatement(n *sitter.Node) (*pyast.Stmt, error) {
	stmt := &pyast.Stmt{Kind: pyast.If, Pos: position(n)}
	var err error
	if stmt.Body, err = c.statements(n.ChildByFieldName("consequence")); err != nil {
		return nil, err
	}

	cursor := n.Walk()
	defer cursor.Close()
	alts := n.ChildrenByFieldName("alternative", cursor)

	// elif clauses nest: each one owns the clauses after it.
	var tail []*pyast.Stmt
	for i := len(alts) - 1; i >= 0; i-- {
		alt := &alts[i]
		switch alt.Kind() {
		case "else_clause":
			if tail, err = c.statements(alt.ChildByFieldName("body")); err != nil {
				return nil, err
			}
		case "elif_clause":
			elif := &pyast.Stmt{Kind: pyast.If, Pos: position(alt), Orelse: tail}
			if elif.Body, err = c.statements(alt.ChildByFieldName("consequence")); err != nil {
				return nil, err
			}
			tail = []*pyast.Stmt{elif}
		}
	}
	stmt.Orelse = tail
	return stmt, nil
}

func (c *converter) tryStatement(n *sitter.Node) (*pyast.Stmt, error) {
	stmt := &pyast.Stmt{Kind: pyast.Try, Pos: position(n)}
	var err error
	if stmt.Body, err = c.statements(n.ChildByFieldName("body")); err != nil {
		return nil, err
	}
	for _, clause := range namedChildren(n) {
		var body *sitter.Node
		switch clause.Kind() {
		case "except_clause", "except_group_clause", "finally_clause":
			body = childOfKind(clause, "block")
		case "else_clause":
			body = clause.ChildByFieldName("body")
		default:
			continue
		}
		inner, err := c.statements(body)
		if err != nil {
			return nil, err
		}
		stmt.Orelse = append(stmt.Orelse, inner...)
	}
	return stmt, nil
}

// exprList converts the comma-separated expressions of a statement.
func (c *converter) exprList(n *sitter.Node, children []*sitter.Node) *pyast.Expr {
	if len(children) == 1 {
		return c.expr(children[0])
	}
	e := &pyast.Expr{Kind: pyast.Tuple, Pos: position(n)}
	for _, child := range children {
		e.Elts = append(e.Elts, c.expr(child))
	}
	return e
}

func (c *converter) expr(n *sitter.Node) *pyast.Expr {
	if n == nil {
		return &pyast.Expr{Kind: pyast.Other}
	}
	e := &pyast.Expr{Pos: position(n)}

	switch n.Kind() {
	case "identifier":
		e.Kind, e.ID = pyast.Name, c.text(n)
	case "integer", "float":
		e.Kind, e.Literal = pyast.Constant, c.text(n)
		e.Const = pyast.NumberKind(e.Literal)
	case "string":
		e.Literal = c.text(n)
		if e.Const = pyast.StringKind(e.Literal); e.Const != pyast.NotConst {
			e.Kind = pyast.Constant
		}
	case "concatenated_string":
		var parts []string
		for _, part := range namedChildren(n) {
			parts = append(parts, c.text(part))
		}
		e.Literal = strings.Join(parts, " ")
		if e.Const = pyast.StringKind(e.Literal); e.Const != pyast.NotConst {
			for _, part := range parts[1:] {
				if pyast.StringKind(part) == pyast.NotConst {
					e.Const = pyast.NotConst
				}
			}
		}
		if e.Const != pyast.NotConst {
			e.Kind = pyast.Constant
		}
	case "true", "false":
		e.Kind, e.Const, e.Literal = pyast.Constant, pyast.Bool, c.text(n)
	case "none":
		e.Kind, e.Const, e.Literal = pyast.Constant, pyast.None, c.text(n)
	case "ellipsis":
		e.Kind, e.Const, e.Literal = pyast.Constant, pyast.Ellipsis, c.text(n)
	case "attribute":
		e.Kind = pyast.Attribute
	case "subscript":
		e.Kind = pyast.Subscript
	case "call":
		e.Kind = pyast.Call
	case "tuple", "pattern_list", "tuple_pattern", "expression_list":
		e.Kind = pyast.Tuple
		e.Elts = c.elements(n)
	case "list", "list_pattern":
		e.Kind = pyast.List
		e.Elts = c.elements(n)
	case "set":
		e.Kind = pyast.Set
		e.Elts = c.elements(n)
	case "dictionary":
		e.Kind = pyast.Dict
	case "unary_operator", "not_operator":
		e.Kind = pyast.UnaryOp
	case "binary_operator":
		e.Kind = pyast.BinOp
	case "boolean_operator":
		e.Kind = pyast.BoolOp
	case "comparison_operator":
		e.Kind = pyast.Compare
	case "lambda":
		e.Kind = pyast.Lambda
	case "list_splat", "list_splat_pattern":
		e.Kind = pyast.Starred
	case "parenthesized_expression":
		if inner := namedChildren(n); len(inner) == 1 {
			in := c.expr(inner[0])
			in.Pos = e.Pos
			return in
		}
		e.Kind = pyast.Other
	default:
		e.Kind = pyast.Other
	}
	return e
}

func (c *converter) elements(n *sitter.Node) []*pyast.Expr {
	var out []*pyast.Expr
	for _, child := range namedChildren(n) {
		out = append(out, c.expr(child))
	}
	return out
}
