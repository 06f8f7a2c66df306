package output

import (
	"fmt"
	"io"

	"github.com/bigbrotr/sitenav/pkg/navconfig"
)

const maxMessageWidth = 120

// WriteViolations prints validation failures as a table ordered as reported.
func WriteViolations(w io.Writer, violations []navconfig.Violation) error {
	rows := make([][]string, 0, len(violations))
	for _, v := range violations {
		rows = append(rows, []string{string(v.Kind), v.Rule, v.Path, Truncate(v.Message, maxMessageWidth)})
	}
	if err := WriteTable(w, []string{"KIND", "RULE", "PATH", "MESSAGE"}, rows); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%d violation(s)\n", len(violations))
	return err
}
