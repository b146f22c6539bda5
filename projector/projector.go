// By Navid M (c)
// Date: 2025
// License: GPL3
//
// Projection of the generic source tree onto the intermediate model.

package projector

import (
	"github.com/cockroachdb/errors"

	"pytoc/pyast"
	"pytoc/renderer"
)

// Projector maps source statements to model nodes. The zero value drops
// statements without a model counterpart from bodies; Strict turns every
// such statement into ErrUnsupportedConstruct.
type Projector struct {
	Strict bool

	file string
}

// ProjectModule projects every top-level statement of f. Each one must
// yield a renderable node.
func (p *Projector) ProjectModule(f *pyast.File) ([]renderer.Node, error) {
	if f == nil {
		return nil, errors.New("projector: nil file")
	}
	p.file = f.Name
	defer func() { p.file = "" }()

	roots := make([]renderer.Node, 0, len(f.Body))
	for _, s := range f.Body {
		n, err := p.Project(s)
		if err != nil {
			return nil, err
		}
		roots = append(roots, n)
	}
	return roots, nil
}

// Project applies the top-level rule to one statement: an Ignored result
// is a structural mismatch.
func (p *Projector) Project(s *pyast.Stmt) (renderer.Node, error) {
	n, err := p.dispatch(s)
	if err != nil {
		return nil, err
	}
	if renderer.IsIgnored(n) {
		return nil, p.mismatch(s)
	}
	return n, nil
}

// dispatch is the single translation point from source kinds to model
// nodes. Unlisted kinds project to Ignored and never fail by themselves.
func (p *Projector) dispatch(s *pyast.Stmt) (renderer.Node, error) {
	switch s.Kind {
	case pyast.Assign:
		return p.assignment(s)
	case pyast.FunctionDef:
		return p.function(s)
	case pyast.ClassDef:
		return p.class(s)
	case pyast.Module, pyast.AsyncFunctionDef, pyast.Return, pyast.Delete,
		pyast.AugAssign, pyast.AnnAssign, pyast.For, pyast.AsyncFor,
		pyast.While, pyast.If, pyast.With, pyast.AsyncWith, pyast.Match,
		pyast.Raise, pyast.Try, pyast.Assert, pyast.Import, pyast.ImportFrom,
		pyast.Global, pyast.Nonlocal, pyast.ExprStmt, pyast.Pass, pyast.Break,
		pyast.Continue, pyast.TypeAlias:
		return renderer.Ignored{Kind: s.Kind, Pos: s.Pos}, nil
	default:
		return renderer.Ignored{Kind: s.Kind, Pos: s.Pos}, nil
	}
}

// body projects a function or class body. Nested definitions are not
// recursed into.
func (p *Projector) body(stmts []*pyast.Stmt) ([]renderer.Node, error) {
	nodes := make([]renderer.Node, 0, len(stmts))
	for _, s := range stmts {
		var (
			n   renderer.Node
			err error
		)
		switch s.Kind {
		case pyast.FunctionDef, pyast.ClassDef:
			n = renderer.Ignored{Kind: s.Kind, Pos: s.Pos}
		default:
			n, err = p.dispatch(s)
		}
		if err != nil {
			return nil, err
		}
		if p.Strict && renderer.IsIgnored(n) {
			return nil, errors.WithHint(
				p.unsupported(s, s.Pos, "statement has no translation"),
				"disable strict mode to drop statements that have no translation",
			)
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func (p *Projector) assignment(s *pyast.Stmt) (renderer.Node, error) {
	if len(s.Targets) != 1 {
		return nil, p.unsupported(s, s.Pos, "chained assignment to %d targets", len(s.Targets))
	}
	target := s.Targets[0]
	if target.Kind != pyast.Name {
		return nil, p.unsupported(s, target.Pos, "assignment target is a %s, not a name", target.Kind)
	}

	v := s.Value
	if v == nil || v.Kind != pyast.Constant || v.Const != pyast.Int {
		err := p.unsupported(s, s.Pos, "value of %s is not an integer literal", target.ID)
		return nil, errors.WithHint(err, "only integer literals such as `x = 1` can be translated")
	}

	value, err := IntValue(v.Literal)
	if err != nil {
		return nil, p.unsupported(s, v.Pos, "%s", err)
	}
	return &renderer.Assignment{Name: target.ID, Value: value}, nil
}

func (p *Projector) function(s *pyast.Stmt) (renderer.Node, error) {
	if err := p.checkDecorators(s); err != nil {
		return nil, err
	}
	if p.Strict && s.Args.HasStarred() {
		return nil, p.unsupported(s, s.Pos, "%s has starred or keyword-only parameters", s.Name)
	}

	var params []string
	for _, a := range s.Args.Positional() {
		params = append(params, a.Name)
	}

	body, err := p.body(s.Body)
	if err != nil {
		return nil, err
	}
	return &renderer.Function{Name: s.Name, Params: params, Body: body}, nil
}

func (p *Projector) class(s *pyast.Stmt) (renderer.Node, error) {
	if err := p.checkDecorators(s); err != nil {
		return nil, err
	}

	members, err := p.body(s.Body)
	if err != nil {
		return nil, err
	}
	return &renderer.Struct{Name: s.Name, Members: members}, nil
}

func (p *Projector) checkDecorators(s *pyast.Stmt) error {
	if !p.Strict || len(s.Decorators) == 0 {
		return nil
	}
	return p.unsupported(s, s.Decorators[0].Pos, "decorated %s is not supported", s.Name)
}
