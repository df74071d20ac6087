// Package export serializes a resolved program (and its timeline) to
// the alternate representations spec.md §6 requires: JSON, ICS and an
// HTML-like document.
package export

import (
	"encoding/json"

	"github.com/wodcraft/wodc/lang"
)

// JSON pretty-prints the resolved AST, the export format's only
// contract per spec.md §6.
func JSON(prog *lang.Program) ([]byte, error) {
	return json.MarshalIndent(prog, "", "  ")
}
