// By Navid M (c)
// Date: 2025
// License: GPL3
//
// Source parser backed by the tree-sitter Python grammar.

package treesitter

import (
	"github.com/cockroachdb/errors"
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"

	"pytoc/pyast"
)

// Parser wraps a tree-sitter parser configured for the Python grammar.
// A Parser is not safe for concurrent use.
type Parser struct {
	parser *sitter.Parser
}

// New constructs a parser with the Python language loaded.
func New() (*Parser, error) {
	lang := sitter.NewLanguage(tree_sitter_python.Language())
	if lang == nil {
		return nil, errors.New("treesitter: python language not available")
	}

	p := sitter.NewParser()
	if err := p.SetLanguage(lang); err != nil {
		p.Close()
		return nil, errors.Wrap(err, "treesitter")
	}
	return &Parser{parser: p}, nil
}

// Close releases parser resources.
func (p *Parser) Close() {
	if p == nil || p.parser == nil {
		return
	}
	p.parser.Close()
	p.parser = nil
}

// Parse implements pyast.Parser.
func (p *Parser) Parse(name string, src []byte) (*pyast.File, error) {
	if p == nil || p.parser == nil {
		return nil, errors.New("treesitter: nil parser")
	}

	tree := p.parser.Parse(src, nil)
	if tree == nil {
		return nil, errors.New("treesitter: parse returned no tree")
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil || root.Kind() != "module" {
		return nil, errors.New("treesitter: unexpected root node")
	}
	if root.HasError() {
		return nil, syntaxError(name, root)
	}

	c := &converter{file: name, src: src}
	body, err := c.statements(root)
	if err != nil {
		return nil, err
	}
	return &pyast.File{Name: name, Body: body}, nil
}
