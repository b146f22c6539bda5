// By Navid M (c)
// Date: 2025
// License: GPL3
//
// Contains meta information and usage text for the pytoc translator.

package meta

import "fmt"

const (
	Name    = "pytoc"
	Version = "v0.1.0"
)

// Short is the one-line command description.
const Short = "Translate a small subset of Python declarations into C"

// Long is the help text shown by the root command.
const Long = `pytoc translates top-level integer assignments, function definitions and
class definitions written in Python into C declarations.

Every .py file under the given path is translated to a .c file next to it.
A file that cannot be translated is reported and left without output;
other files are still translated.

Examples:
  pytoc .                       # translate the current tree
  pytoc --dry-run src           # print translations instead of writing them
  pytoc --backend tree-sitter . # parse with the tree-sitter grammar
  pytoc watch src               # re-translate files as they change
  pytoc config show --format yaml`

// Banner is printed by the version command.
func Banner() string {
	return fmt.Sprintf("%s %v - By Navid M (c) 2025", Name, Version)
}
