// By Navid M (c)
// Date: 2025
// License: GPL3

package translator

import (
	"github.com/cockroachdb/errors"

	"pytoc/projector"
	"pytoc/pyast"
)

// Failure kinds reported for a unit.
const (
	KindSyntax      = "syntax"
	KindUnsupported = "unsupported"
	KindMismatch    = "mismatch"
	KindIO          = "io"
)

// Classify names the taxonomy kind of a translation error.
func Classify(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, pyast.ErrSyntax):
		return KindSyntax
	case errors.Is(err, projector.ErrUnsupportedConstruct):
		return KindUnsupported
	case errors.Is(err, projector.ErrStructuralMismatch):
		return KindMismatch
	}
	return KindIO
}
