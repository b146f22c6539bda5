// By Navid M (c)
// Date: 2025
// License: GPL3
//
// Syntax error location for tree-sitter parse failures.

package treesitter

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"pytoc/pyast"
)

func position(n *sitter.Node) pyast.Pos {
	start := n.StartPosition()
	return pyast.Pos{Line: int(start.Row) + 1, Column: int(start.Column) + 1}
}

func syntaxError(file string, root *sitter.Node) error {
	if missing := findFirst(root, func(n *sitter.Node) bool { return n.IsMissing() }); missing != nil {
		return pyast.NewSyntaxError(file, position(missing), "expected %s", missing.Kind())
	}
	if bad := findFirst(root, func(n *sitter.Node) bool { return n.IsError() }); bad != nil {
		return pyast.NewSyntaxError(file, position(bad), "invalid syntax")
	}
	return pyast.NewSyntaxError(file, position(root), "invalid syntax")
}

func findFirst(root *sitter.Node, match func(*sitter.Node) bool) *sitter.Node {
	var best *sitter.Node
	walkNodes(root, func(node *sitter.Node) {
		if !match(node) {
			return
		}
		if best == nil || node.StartByte() < best.StartByte() {
			best = node
		}
	})
	return best
}

func walkNodes(root *sitter.Node, visit func(node *sitter.Node)) {
	if root == nil {
		return
	}
	visit(root)
	for i := uint(0); i < root.ChildCount(); i++ {
		child := root.Child(i)
		if child == nil {
			continue
		}
		walkNodes(child, visit)
	}
}
