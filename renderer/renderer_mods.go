// By Navid M (c)
// Date: 2025
// License: GPL3
//
// Contains the intermediate model the projector builds and the renderer prints.

package renderer

import "pytoc/pyast"

// Node is one element of the intermediate model forest.
type Node interface {
	Render() string
}

// Assignment is an integer variable declaration.
type Assignment struct {
	Name  string
	Value string
}

// Function is a function definition whose parameters are all typed int.
type Function struct {
	Name   string
	Params []string
	Body   []Node
}

// Struct is a class lowered to a record type.
type Struct struct {
	Name    string
	Members []Node
}

// Ignored stands in for a source statement that has no model counterpart.
// It renders nothing.
type Ignored struct {
	Kind pyast.Kind
	Pos  pyast.Pos
}
