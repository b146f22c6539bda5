// By Navid M (c)
// Date: 2025
// License: GPL3
//
// Integer literal validation.

package projector

import (
	"math"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

var errLeadingZero = errors.New("leading zeros in decimal integer literals are not permitted")

// IntValue returns the decimal spelling of an integer literal written in any
// of the source language's integer forms. The value must fit the 32-bit
// target int.
func IntValue(literal string) (string, error) {
	if hasLeadingZero(literal) {
		return "", errLeadingZero
	}

	v, err := strconv.ParseInt(literal, 0, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return "", errors.Newf("integer literal %s does not fit in int", literal)
		}
		return "", errors.Newf("invalid integer literal %s", literal)
	}
	if v > math.MaxInt32 {
		return "", errors.Newf("integer literal %s does not fit in int", literal)
	}
	return strconv.FormatInt(v, 10), nil
}

// hasLeadingZero reports a decimal literal like 017. Zero itself may be
// spelled with any number of zeros.
func hasLeadingZero(s string) bool {
	if len(s) < 2 || s[0] != '0' {
		return false
	}
	switch s[1] {
	case 'x', 'X', 'o', 'O', 'b', 'B':
		return false
	}
	return strings.Trim(s, "0_") != ""
}
