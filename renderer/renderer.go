// By Navid M (c)
// Date: 2025
// License: GPL3
//
// C code generator for the intermediate model.

package renderer

import "strings"

const (
	IntType    = "int"
	ReturnType = "void"
	Indent     = "    "
)

func (a *Assignment) Render() string {
	return IntType + " " + a.Name + " = " + a.Value + ";"
}

func (f *Function) Render() string {
	var b strings.Builder

	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = IntType + " " + p
	}

	b.WriteString(ReturnType + " " + f.Name + "(" + strings.Join(params, ", ") + ") {\n")
	writeBlock(&b, f.Body)
	b.WriteString("}\n")
	return b.String()
}

func (s *Struct) Render() string {
	var b strings.Builder
	b.WriteString("struct " + s.Name + " {\n")
	writeBlock(&b, s.Members)
	b.WriteString("};\n")
	return b.String()
}

func (Ignored) Render() string {
	return ""
}

// IsIgnored reports whether n is the Ignored marker.
func IsIgnored(n Node) bool {
	switch n.(type) {
	case Ignored, *Ignored:
		return true
	}
	return false
}

// KeepAssignments drops every body element that is not an Assignment.
// Only assignments are emitted inside function and struct bodies.
func KeepAssignments(nodes []Node) []*Assignment {
	var kept []*Assignment
	for _, n := range nodes {
		if a, ok := n.(*Assignment); ok {
			kept = append(kept, a)
		}
	}
	return kept
}

func writeBlock(b *strings.Builder, body []Node) {
	for _, a := range KeepAssignments(body) {
		b.WriteString(Indent + a.Render() + "\n")
	}
}

// RenderUnit renders the root declarations of one translation unit, each
// followed by a newline.
func RenderUnit(roots []Node) string {
	var b strings.Builder
	for _, n := range roots {
		b.WriteString(n.Render())
		b.WriteString("\n")
	}
	return b.String()
}
