package treesitter

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pytoc/pyast"
)

func parse(t *testing.T, src string) (*pyast.File, error) {
	t.Helper()
	p, err := New()
	require.NoError(t, err)
	t.Cleanup(p.Close)
	return p.Parse("ts.py", []byte(src))
}

func kinds(stmts []*pyast.Stmt) []pyast.Kind {
	var out []pyast.Kind
	for _, s := range stmts {
		out = append(out, s.Kind)
	}
	return out
}

func TestParseDeclarations(t *testing.T) {
	src := "x = 1\n\n# comment\ndef f(a, b):\n    y = 0x10\n\nclass Point(Base):\n    \"\"\"doc\"\"\"\n    px = 0\n"
	f, err := parse(t, src)
	require.NoError(t, err)
	require.Equal(t, []pyast.Kind{pyast.Assign, pyast.FunctionDef, pyast.ClassDef}, kinds(f.Body))

	assign := f.Body[0]
	assert.Equal(t, pyast.Pos{Line: 1, Column: 1}, assign.Pos)
	require.Len(t, assign.Targets, 1)
	assert.Equal(t, "x", assign.Targets[0].ID)
	assert.Equal(t, pyast.Int, assign.Value.Const)
	assert.Equal(t, "1", assign.Value.Literal)

	fn := f.Body[1]
	assert.Equal(t, "f", fn.Name)
	assert.Equal(t, pyast.Pos{Line: 4, Column: 1}, fn.Pos)
	assert.Equal(t, []string{"a", "b"}, fn.Args.Names())
	require.Len(t, fn.Body, 1)
	assert.Equal(t, "0x10", fn.Body[0].Value.Literal)

	cls := f.Body[2]
	assert.Equal(t, "Point", cls.Name)
	assert.Len(t, cls.Bases, 1)
	assert.Equal(t, []pyast.Kind{pyast.ExprStmt, pyast.Assign}, kinds(cls.Body))
}

func TestParseStatementKinds(t *testing.T) {
	tests := []struct {
		src  string
		kind pyast.Kind
	}{
		{"return 1", pyast.Return},
		{"pass", pyast.Pass},
		{"import os", pyast.Import},
		{"from os import path", pyast.ImportFrom},
		{"x += 1", pyast.AugAssign},
		{"x: int = 1", pyast.AnnAssign},
		{"print(x)", pyast.ExprStmt},
		{"if x:\n    pass\nelse:\n    pass", pyast.If},
		{"while x:\n    pass", pyast.While},
		{"for i in x:\n    pass", pyast.For},
		{"with open(p) as f:\n    pass", pyast.With},
		{"try:\n    pass\nexcept E:\n    pass", pyast.Try},
		{"async def g():\n    pass", pyast.AsyncFunctionDef},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			f, err := parse(t, tt.src+"\n")
			require.NoError(t, err)
			require.Len(t, f.Body, 1)
			assert.Equal(t, tt.kind, f.Body[0].Kind)
		})
	}
}

func TestParseElifChain(t *testing.T) {
	f, err := parse(t, "if a:\n    x = 1\nelif b:\n    x = 2\nelse:\n    x = 3\n")
	require.NoError(t, err)

	elif := f.Body[0].Orelse
	require.Len(t, elif, 1)
	assert.Equal(t, pyast.If, elif[0].Kind)
	require.Len(t, elif[0].Orelse, 1)
	assert.Equal(t, pyast.Assign, elif[0].Orelse[0].Kind)
}

func TestParseAssignmentShapes(t *testing.T) {
	tests := []struct {
		src     string
		targets int
		value   pyast.ExprKind
		konst   pyast.ConstKind
	}{
		{"a = b = 1", 2, pyast.Constant, pyast.Int},
		{"x = -1", 1, pyast.UnaryOp, pyast.NotConst},
		{"x = 1 + 2", 1, pyast.BinOp, pyast.NotConst},
		{"x = 1.5", 1, pyast.Constant, pyast.Float},
		{"x = 'a'", 1, pyast.Constant, pyast.String},
		{"x = True", 1, pyast.Constant, pyast.Bool},
		{"x = None", 1, pyast.Constant, pyast.None},
		{"x = (7)", 1, pyast.Constant, pyast.Int},
		{"x = [1]", 1, pyast.List, pyast.NotConst},
		{"x = f(1)", 1, pyast.Call, pyast.NotConst},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			f, err := parse(t, tt.src+"\n")
			require.NoError(t, err)
			require.Len(t, f.Body, 1)

			s := f.Body[0]
			assert.Equal(t, pyast.Assign, s.Kind)
			assert.Len(t, s.Targets, tt.targets)
			assert.Equal(t, tt.value, s.Value.Kind)
			assert.Equal(t, tt.konst, s.Value.Const)
		})
	}
}

func TestParseParameters(t *testing.T) {
	f, err := parse(t, "def g(a, /, b: int, c=3, *rest, k, **kw) -> None:\n    pass\n")
	require.NoError(t, err)

	args := f.Body[0].Args
	assert.Equal(t, []pyast.Param{{Name: "a"}}, args.PosOnly)
	assert.Equal(t, []pyast.Param{{Name: "b", Annotated: true}, {Name: "c", HasDefault: true}}, args.Args)
	assert.Equal(t, &pyast.Param{Name: "rest"}, args.VarArg)
	assert.Equal(t, []pyast.Param{{Name: "k"}}, args.KwOnly)
	assert.Equal(t, &pyast.Param{Name: "kw"}, args.KwArg)
}

func TestParseDecorators(t *testing.T) {
	f, err := parse(t, "@a\n@b.c(1)\ndef f():\n    pass\n")
	require.NoError(t, err)
	require.Len(t, f.Body, 1)
	assert.Equal(t, pyast.FunctionDef, f.Body[0].Kind)
	assert.Len(t, f.Body[0].Decorators, 2)
}

func TestParseSyntaxErrors(t *testing.T) {
	for name, src := range map[string]string{
		"missing colon":      "def f()\n    pass\n",
		"unclosed paren":     "x = (1,\n",
		"duplicate argument": "def f(a, a):\n    pass\n",
		"dangling else":      "else:\n    pass\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := parse(t, src)
			require.Error(t, err)
			assert.True(t, errors.Is(err, pyast.ErrSyntax), "got %v", err)

			var serr *pyast.SyntaxError
			require.True(t, errors.As(err, &serr))
			assert.Equal(t, "ts.py", serr.File)
		})
	}
}

func TestParseLayoutErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		line int
	}{
		{"indented module statement", "x = 1\n    y = 2\n", 2},
		{"dedent to unknown level", "def f():\n    x = 1\n  y = 2\n", 3},
		{"nested dedent to unknown level", "class A:\n    def f():\n        x = 1\n      y = 2\n", 4},
		{"indent after inline suite", "def f(): x = 1\n    y = 2\n", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse(t, tt.src)
			require.Error(t, err)
			assert.True(t, errors.Is(err, pyast.ErrSyntax), "got %v", err)

			var serr *pyast.SyntaxError
			require.True(t, errors.As(err, &serr))
			assert.Equal(t, tt.line, serr.Pos.Line)
		})
	}
}

func TestParseLayoutAccepted(t *testing.T) {
	tests := []struct {
		src   string
		roots int
		body  int
	}{
		{"def f(): x = 1; y = 2\nz = 3\n", 2, 2},
		{"def f():\n\tx = 1\n\ty = 2\n", 1, 2},
		{"def f():\n    x = 1\n\n\n    y = 2\n", 1, 2},
		{"def f():\n    x = 1\n# note\n    y = 2\n", 1, 2},
		{"x = 1; y = 2;\n", 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			f, err := parse(t, tt.src)
			require.NoError(t, err)
			require.Len(t, f.Body, tt.roots)
			assert.Len(t, f.Body[0].Body, tt.body)
		})
	}
}

func TestParseEmpty(t *testing.T) {
	f, err := parse(t, "")
	require.NoError(t, err)
	assert.Empty(t, f.Body)
}

func TestNilParser(t *testing.T) {
	var p *Parser
	_, err := p.Parse("x.py", nil)
	assert.Error(t, err)
	p.Close()
}
