package projector

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pytoc/pyast"
	"pytoc/renderer"
)

func name(id string) *pyast.Expr {
	return &pyast.Expr{Kind: pyast.Name, ID: id}
}

func intLit(s string) *pyast.Expr {
	return &pyast.Expr{Kind: pyast.Constant, Const: pyast.Int, Literal: s}
}

func assign(target, value string) *pyast.Stmt {
	return &pyast.Stmt{Kind: pyast.Assign, Targets: []*pyast.Expr{name(target)}, Value: intLit(value)}
}

func def(fn string, params []string, body ...*pyast.Stmt) *pyast.Stmt {
	args := &pyast.Arguments{}
	for _, p := range params {
		args.Args = append(args.Args, pyast.Param{Name: p})
	}
	return &pyast.Stmt{Kind: pyast.FunctionDef, Name: fn, Args: args, Body: body}
}

func class(cls string, body ...*pyast.Stmt) *pyast.Stmt {
	return &pyast.Stmt{Kind: pyast.ClassDef, Name: cls, Body: body}
}

func file(body ...*pyast.Stmt) *pyast.File {
	return &pyast.File{Name: "test.py", Body: body}
}

func TestProjectFunction(t *testing.T) {
	p := &Projector{}
	roots, err := p.ProjectModule(file(def("f", []string{"a", "b"}, assign("x", "1"))))
	require.NoError(t, err)

	assert.Equal(t, []renderer.Node{
		&renderer.Function{
			Name:   "f",
			Params: []string{"a", "b"},
			Body:   []renderer.Node{&renderer.Assignment{Name: "x", Value: "1"}},
		},
	}, roots)
}

func TestProjectClass(t *testing.T) {
	p := &Projector{}
	roots, err := p.ProjectModule(file(class("Point", assign("x", "0"), assign("y", "0"))))
	require.NoError(t, err)

	assert.Equal(t, []renderer.Node{
		&renderer.Struct{
			Name: "Point",
			Members: []renderer.Node{
				&renderer.Assignment{Name: "x", Value: "0"},
				&renderer.Assignment{Name: "y", Value: "0"},
			},
		},
	}, roots)
}

func TestProjectRootAssignment(t *testing.T) {
	p := &Projector{}
	roots, err := p.ProjectModule(file(assign("x", "0x10")))
	require.NoError(t, err)
	assert.Equal(t, []renderer.Node{&renderer.Assignment{Name: "x", Value: "16"}}, roots)
}

func TestBodyIgnoredStatementsKept(t *testing.T) {
	ret := &pyast.Stmt{Kind: pyast.Return, Value: intLit("1")}
	p := &Projector{}
	roots, err := p.ProjectModule(file(def("f", nil, ret)))
	require.NoError(t, err)

	fn := roots[0].(*renderer.Function)
	require.Len(t, fn.Body, 1)
	assert.True(t, renderer.IsIgnored(fn.Body[0]))
	assert.Equal(t, "void f() {\n}\n", fn.Render())
}

func TestNestedDefinitionsIgnored(t *testing.T) {
	inner := def("inner", nil, assign("z", "3"))
	p := &Projector{}
	roots, err := p.ProjectModule(file(class("C", assign("a", "1"), inner, class("D"))))
	require.NoError(t, err)

	s := roots[0].(*renderer.Struct)
	require.Len(t, s.Members, 3)
	assert.True(t, renderer.IsIgnored(s.Members[1]))
	assert.True(t, renderer.IsIgnored(s.Members[2]))
}

func TestRootIgnoredIsMismatch(t *testing.T) {
	for _, kind := range []pyast.Kind{pyast.ExprStmt, pyast.Import, pyast.If, pyast.Pass, pyast.AsyncFunctionDef, pyast.AnnAssign} {
		t.Run(kind.String(), func(t *testing.T) {
			p := &Projector{}
			_, err := p.ProjectModule(file(assign("x", "1"), &pyast.Stmt{Kind: kind, Pos: pyast.Pos{Line: 2, Column: 1}}))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrStructuralMismatch))
			assert.Contains(t, err.Error(), "test.py:2:1")
			assert.NotEmpty(t, errors.GetAllHints(err))
		})
	}
}

func TestUnsupportedAssignments(t *testing.T) {
	str := &pyast.Expr{Kind: pyast.Constant, Const: pyast.String, Literal: `"hello"`}
	tests := []struct {
		name string
		stmt *pyast.Stmt
	}{
		{"string value", &pyast.Stmt{Kind: pyast.Assign, Targets: []*pyast.Expr{name("x")}, Value: str}},
		{"float value", &pyast.Stmt{Kind: pyast.Assign, Targets: []*pyast.Expr{name("x")}, Value: &pyast.Expr{Kind: pyast.Constant, Const: pyast.Float, Literal: "1.5"}}},
		{"name value", &pyast.Stmt{Kind: pyast.Assign, Targets: []*pyast.Expr{name("x")}, Value: name("y")}},
		{"negative value", &pyast.Stmt{Kind: pyast.Assign, Targets: []*pyast.Expr{name("x")}, Value: &pyast.Expr{Kind: pyast.UnaryOp}}},
		{"chained", &pyast.Stmt{Kind: pyast.Assign, Targets: []*pyast.Expr{name("a"), name("b")}, Value: intLit("1")}},
		{"tuple target", &pyast.Stmt{Kind: pyast.Assign, Targets: []*pyast.Expr{{Kind: pyast.Tuple}}, Value: intLit("1")}},
		{"attribute target", &pyast.Stmt{Kind: pyast.Assign, Targets: []*pyast.Expr{{Kind: pyast.Attribute}}, Value: intLit("1")}},
		{"too large", assign("x", "4294967296")},
		{"leading zero", assign("x", "010")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Projector{}
			_, err := p.ProjectModule(file(tt.stmt))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrUnsupportedConstruct), "got %v", err)
			assert.False(t, errors.Is(err, ErrStructuralMismatch))
		})
	}
}

func TestUnsupportedInBodyAbortsUnit(t *testing.T) {
	bad := &pyast.Stmt{Kind: pyast.Assign, Targets: []*pyast.Expr{name("s")}, Value: &pyast.Expr{Kind: pyast.Constant, Const: pyast.String}}
	p := &Projector{}
	roots, err := p.ProjectModule(file(assign("ok", "1"), class("C", bad)))
	require.Error(t, err)
	assert.Nil(t, roots)
	assert.True(t, errors.Is(err, ErrUnsupportedConstruct))
}

func TestParametersPositionalOnly(t *testing.T) {
	fn := &pyast.Stmt{
		Kind: pyast.FunctionDef,
		Name: "f",
		Args: &pyast.Arguments{
			PosOnly: []pyast.Param{{Name: "a"}},
			Args:    []pyast.Param{{Name: "b", Annotated: true}, {Name: "c", HasDefault: true}},
			VarArg:  &pyast.Param{Name: "rest"},
			KwOnly:  []pyast.Param{{Name: "k"}},
			KwArg:   &pyast.Param{Name: "kw"},
		},
		Decorators: []*pyast.Expr{name("staticmethod")},
	}

	p := &Projector{}
	roots, err := p.ProjectModule(file(fn))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, roots[0].(*renderer.Function).Params)
}

func TestStrictMode(t *testing.T) {
	decorated := def("f", nil)
	decorated.Decorators = []*pyast.Expr{name("cache")}

	starred := def("g", []string{"a"})
	starred.Args.VarArg = &pyast.Param{Name: "rest"}

	tests := []struct {
		name string
		stmt *pyast.Stmt
	}{
		{"return in body", def("f", nil, &pyast.Stmt{Kind: pyast.Return})},
		{"pass in class", class("C", &pyast.Stmt{Kind: pyast.Pass})},
		{"nested def", class("C", def("m", nil))},
		{"decorated", decorated},
		{"starred", starred},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lenient := &Projector{}
			_, err := lenient.ProjectModule(file(tt.stmt))
			require.NoError(t, err)

			strict := &Projector{Strict: true}
			_, err = strict.ProjectModule(file(tt.stmt))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrUnsupportedConstruct))
		})
	}
}

func TestProjectNilFile(t *testing.T) {
	p := &Projector{}
	_, err := p.ProjectModule(nil)
	assert.Error(t, err)
}

func TestProjectEmptyFile(t *testing.T) {
	p := &Projector{}
	roots, err := p.ProjectModule(file())
	require.NoError(t, err)
	assert.Empty(t, roots)
}
