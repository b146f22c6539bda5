// By Navid M (c)
// Date: 2025
// License: GPL3
//
// Error taxonomy of the projection stage.

package projector

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"pytoc/pyast"
)

var (
	// ErrUnsupportedConstruct marks a recognised node whose shape has no
	// model counterpart, such as a string assignment.
	ErrUnsupportedConstruct = errors.New("unsupported construct")
	// ErrStructuralMismatch marks a root statement that projects to nothing.
	ErrStructuralMismatch = errors.New("structural mismatch")
)

func (p *Projector) where(pos pyast.Pos) string {
	if p.file == "" {
		return pos.String()
	}
	return fmt.Sprintf("%s:%s", p.file, pos)
}

func (p *Projector) unsupported(s *pyast.Stmt, pos pyast.Pos, format string, args ...interface{}) error {
	return errors.Wrapf(ErrUnsupportedConstruct, "%s: %s: %s", p.where(pos), s.Kind, fmt.Sprintf(format, args...))
}

func (p *Projector) mismatch(s *pyast.Stmt) error {
	err := errors.Wrapf(ErrStructuralMismatch, "%s: top-level %s has no translation", p.where(s.Pos), s.Kind)
	return errors.WithHint(err, "only integer assignments, function definitions and class definitions may appear at top level")
}
