package diff

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bigbrotr/sitenav/internal/output"
)

type DisplayOptions struct {
	Color bool
}

func AutoColor(w io.Writer) bool {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

func WriteTable(w io.Writer, result Result, opts DisplayOptions) error {
	if len(result.Changes) == 0 {
		fmt.Fprintln(w, "No changes detected.")
	} else {
		rows := make([][]string, 0, len(result.Changes))
		for _, change := range result.Changes {
			rows = append(rows, []string{
				colorize(string(change.ChangeType), change.ChangeType, opts.Color),
				string(change.Scope),
				change.Group,
				orDash(change.Item),
				detail(change),
			})
		}
		if err := output.WriteTable(w, []string{"CHANGE", "SCOPE", "GROUP", "ITEM", "DETAIL"}, rows); err != nil {
			return err
		}
	}
	fmt.Fprintf(
		w,
		"%d added, %d modified, %d removed, %d moved, %d unchanged\n",
		result.Summary.Added,
		result.Summary.Modified,
		result.Summary.Removed,
		result.Summary.Moved,
		result.Summary.Unchanged,
	)
	return nil
}

func detail(change Change) string {
	switch change.ChangeType {
	case ChangeModified:
		return fmt.Sprintf("%s: %s -> %s", change.Field, change.Old, change.New)
	case ChangeMoved:
		if change.FromGroup != "" {
			return fmt.Sprintf("from group %q", change.FromGroup)
		}
		return fmt.Sprintf("position %d -> %d", change.OldPosition, change.NewPosition)
	case ChangeAdded:
		return orDash(change.New)
	case ChangeRemoved:
		return orDash(change.Old)
	default:
		return "-"
	}
}

func orDash(v string) string {
	if strings.TrimSpace(v) == "" {
		return "-"
	}
	return v
}

func colorize(v string, changeType ChangeType, enabled bool) string {
	if !enabled {
		return v
	}
	var color string
	switch changeType {
	case ChangeAdded:
		color = "32"
	case ChangeModified:
		color = "33"
	case ChangeRemoved:
		color = "31"
	case ChangeMoved:
		color = "36"
	default:
		return v
	}
	return "\x1b[" + color + "m" + v + "\x1b[0m"
}
