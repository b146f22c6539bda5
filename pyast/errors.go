// By Navid M (c)
// Date: 2025
// License: GPL3
//
// Syntax errors reported by parser backends.

package pyast

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// ErrSyntax marks source text the parser could not read.
var ErrSyntax = errors.New("syntax error")

// SyntaxError carries the location of a parse failure.
type SyntaxError struct {
	File string
	Pos  Pos
	Msg  string
}

func (e *SyntaxError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s:%s: syntax error: %s", e.File, e.Pos, e.Msg)
	}
	return fmt.Sprintf("%s: syntax error: %s", e.Pos, e.Msg)
}

func (e *SyntaxError) Is(target error) bool {
	return target == ErrSyntax
}

// NewSyntaxError builds a SyntaxError with a stack attached.
func NewSyntaxError(file string, pos Pos, format string, args ...interface{}) error {
	return errors.WithStack(&SyntaxError{File: file, Pos: pos, Msg: fmt.Sprintf(format, args...)})
}
