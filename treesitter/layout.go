// By Navid M (c)
// Date: 2025
// License: GPL3
//
// Indentation and statement boundary checks the grammar leaves to the caller.

package treesitter

import (
	"bytes"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"pytoc/pyast"
)

const tabSize = 8

// orphanKeywords only ever continue a compound statement.
var orphanKeywords = map[string]bool{
	"else": true, "elif": true, "except": true, "finally": true,
}

// clauseKinds are nodes that must never stand as a statement of their own.
var clauseKinds = map[string]bool{
	"ERROR": true, "block": true, "else_clause": true, "elif_clause": true,
	"except_clause": true, "except_group_clause": true, "finally_clause": true,
	"case_clause": true,
}

// checkLayout verifies the statements of a module or block. Statements that
// start a line share one indentation, which is zero at module level, and only
// separators, comments and whitespace sit between siblings. The grammar's
// scanner accepts dedents to unknown levels without reporting an error.
func (c *converter) checkLayout(n *sitter.Node) error {
	module := n.Kind() == "module"

	var prevEnd uint
	if !module {
		prevEnd = n.StartByte()
	}
	expected, inline, first := 0, false, true

	for i := uint(0); i < n.NamedChildCount(); i++ {
		child := n.NamedChild(i)
		if child == nil {
			continue
		}
		if err := c.checkGap(prevEnd, child.StartByte()); err != nil {
			return err
		}
		prevEnd = child.EndByte()
		if isExtra(child) {
			continue
		}
		if clauseKinds[child.Kind()] || orphanKeywords[c.leadingWord(child)] {
			return c.errorf(child, "invalid syntax")
		}

		width, atStart := c.indentOf(child)
		switch {
		case first && !module:
			expected, inline = width, !atStart
		case !atStart:
		case inline, width > expected:
			return c.errorf(child, "unexpected indent")
		case width < expected:
			return c.errorf(child, "unindent does not match any outer indentation level")
		}
		first = false
	}

	if module {
		return c.checkGap(prevEnd, uint(len(c.src)))
	}
	return nil
}

// checkGap rejects source text between statements that no node claims.
func (c *converter) checkGap(from, to uint) error {
	if to > uint(len(c.src)) {
		to = uint(len(c.src))
	}
	for off := from; off < to; off++ {
		switch c.src[off] {
		case ' ', '\t', '\f', '\r', '\n', ';', '\\':
			continue
		}
		return pyast.NewSyntaxError(c.file, c.posAt(off), "invalid syntax")
	}
	return nil
}

// indentOf measures the indentation of the line n starts on. atStart is false
// when other text precedes n on that line.
func (c *converter) indentOf(n *sitter.Node) (width int, atStart bool) {
	start := int(n.StartByte())
	lineStart := bytes.LastIndexByte(c.src[:start], '\n') + 1
	for _, b := range c.src[lineStart:start] {
		switch b {
		case ' ':
			width++
		case '\t':
			width += tabSize - width%tabSize
		case '\f':
			width = 0
		case '\r':
		default:
			return 0, false
		}
	}
	return width, true
}

func (c *converter) leadingWord(n *sitter.Node) string {
	start := int(n.StartByte())
	end := start
	for end < len(c.src) && isWordByte(c.src[end]) {
		end++
	}
	return string(c.src[start:end])
}

func isWordByte(b byte) bool {
	return b == '_' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}

func (c *converter) posAt(off uint) pyast.Pos {
	before := c.src[:off]
	line := bytes.Count(before, []byte{'\n'}) + 1
	col := int(off) - (bytes.LastIndexByte(before, '\n') + 1) + 1
	return pyast.Pos{Line: line, Column: col}
}
