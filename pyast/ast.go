// By Navid M (c)
// Date: 2025
// License: GPL3
//
// Generic source tree shared by every parser backend.

package pyast

import "fmt"

// Kind enumerates the statement node kinds of the source language.
// The set is closed: parser backends must map every statement onto one of these.
type Kind int

const (
	Module Kind = iota
	FunctionDef
	AsyncFunctionDef
	ClassDef
	Return
	Delete
	Assign
	AugAssign
	AnnAssign
	For
	AsyncFor
	While
	If
	With
	AsyncWith
	Match
	Raise
	Try
	Assert
	Import
	ImportFrom
	Global
	Nonlocal
	ExprStmt
	Pass
	Break
	Continue
	TypeAlias
)

var kindNames = [...]string{
	Module:           "Module",
	FunctionDef:      "FunctionDef",
	AsyncFunctionDef: "AsyncFunctionDef",
	ClassDef:         "ClassDef",
	Return:           "Return",
	Delete:           "Delete",
	Assign:           "Assign",
	AugAssign:        "AugAssign",
	AnnAssign:        "AnnAssign",
	For:              "For",
	AsyncFor:         "AsyncFor",
	While:            "While",
	If:               "If",
	With:             "With",
	AsyncWith:        "AsyncWith",
	Match:            "Match",
	Raise:            "Raise",
	Try:              "Try",
	Assert:           "Assert",
	Import:           "Import",
	ImportFrom:       "ImportFrom",
	Global:           "Global",
	Nonlocal:         "Nonlocal",
	ExprStmt:         "Expr",
	Pass:             "Pass",
	Break:            "Break",
	Continue:         "Continue",
	TypeAlias:        "TypeAlias",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ExprKind enumerates expression shapes. Only the shapes the projector
// inspects are distinguished; everything else is Other.
type ExprKind int

const (
	Other ExprKind = iota
	Name
	Constant
	Attribute
	Subscript
	Tuple
	List
	Set
	Dict
	Call
	UnaryOp
	BinOp
	BoolOp
	Compare
	Lambda
	Starred
)

var exprKindNames = [...]string{
	Other:     "Other",
	Name:      "Name",
	Constant:  "Constant",
	Attribute: "Attribute",
	Subscript: "Subscript",
	Tuple:     "Tuple",
	List:      "List",
	Set:       "Set",
	Dict:      "Dict",
	Call:      "Call",
	UnaryOp:   "UnaryOp",
	BinOp:     "BinOp",
	BoolOp:    "BoolOp",
	Compare:   "Compare",
	Lambda:    "Lambda",
	Starred:   "Starred",
}

func (k ExprKind) String() string {
	if k >= 0 && int(k) < len(exprKindNames) {
		return exprKindNames[k]
	}
	return fmt.Sprintf("ExprKind(%d)", int(k))
}

// ConstKind tells literal constants apart.
type ConstKind int

const (
	NotConst ConstKind = iota
	Int
	Float
	Imaginary
	String
	Bytes
	Bool
	None
	Ellipsis
)

var constKindNames = [...]string{
	NotConst:  "NotConst",
	Int:       "Int",
	Float:     "Float",
	Imaginary: "Imaginary",
	String:    "String",
	Bytes:     "Bytes",
	Bool:      "Bool",
	None:      "None",
	Ellipsis:  "Ellipsis",
}

func (k ConstKind) String() string {
	if k >= 0 && int(k) < len(constKindNames) {
		return constKindNames[k]
	}
	return fmt.Sprintf("ConstKind(%d)", int(k))
}

// Pos is a 1-based line and column.
type Pos struct {
	Line   int
	Column int
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Expr is an expression node.
type Expr struct {
	Kind  ExprKind
	Pos   Pos
	ID    string    // Name
	Const ConstKind // Constant
	// Literal is the raw source spelling of a Constant, e.g. "0x1F" or "'a'".
	Literal string
	Elts    []*Expr // Tuple, List, Set
}

// Param is one formal parameter of a function definition.
type Param struct {
	Name       string
	Annotated  bool
	HasDefault bool
}

// Arguments mirrors the parameter groups of a function signature.
type Arguments struct {
	PosOnly []Param
	Args    []Param
	VarArg  *Param
	KwOnly  []Param
	KwArg   *Param
}

// Stmt is a statement node. Fields not meaningful for Kind are left zero.
type Stmt struct {
	Kind       Kind
	Pos        Pos
	Name       string  // FunctionDef, AsyncFunctionDef, ClassDef, TypeAlias
	Targets    []*Expr // Assign (one per `=`), AugAssign, AnnAssign
	Value      *Expr   // Assign, AugAssign, AnnAssign, Return, Expr
	Args       *Arguments
	Decorators []*Expr
	Bases      []*Expr
	Body       []*Stmt
	// Orelse holds else/elif/except/finally clauses flattened in source order.
	Orelse []*Stmt
}

// File is the root of a parsed source unit.
type File struct {
	Name string
	Body []*Stmt
}

// Parser turns source text into a File.
type Parser interface {
	Parse(name string, src []byte) (*File, error)
}
