// By Navid M (c)
// Date: 2025
// License: GPL3
//
// Post C conversion processing.

package preprocessor

import (
	"path/filepath"
	"strings"
)

// InsertBanner prefixes rendered output with a comment naming its source.
func InsertBanner(output, source string) string {
	name := filepath.ToSlash(source)
	if name == "" {
		name = "<input>"
	}
	// A "*/" in the name would close the comment early.
	name = strings.ReplaceAll(name, "*/", "*\\/")
	return "/* generated by pytoc from " + name + " */\n" + output
}
