package cli

import (
	"sort"

	"github.com/bigbrotr/sitenav/internal/output"
	"github.com/bigbrotr/sitenav/pkg/navconfig"
	"github.com/spf13/cobra"
)

type iconRow struct {
	Name   string `json:"name" yaml:"name"`
	Source string `json:"source" yaml:"source"`
}

func newIconsCmd() *cobra.Command {
	var outputMode string

	cmd := &cobra.Command{
		Use:   "icons",
		Short: "List accepted social link icons",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := runtimeFromCommand(cmd)
			if err != nil {
				return err
			}
			format, err := output.ParseFormat(outputMode)
			if err != nil {
				return err
			}

			icons := make([]iconRow, 0, len(navconfig.Icons()))
			for _, name := range navconfig.Icons() {
				icons = append(icons, iconRow{Name: name, Source: "builtin"})
			}
			site, ok, err := rt.site()
			if err != nil {
				return err
			}
			if ok {
				extra := append([]string(nil), site.Icons...)
				sort.Strings(extra)
				for _, name := range extra {
					if !navconfig.KnownIcon(name) {
						icons = append(icons, iconRow{Name: name, Source: "site/" + site.Name})
					}
				}
			}

			if format.Structured() {
				return output.WriteStructured(cmd.OutOrStdout(), format, icons)
			}
			rows := make([][]string, 0, len(icons))
			for _, icon := range icons {
				rows = append(rows, []string{icon.Name, icon.Source})
			}
			return output.WriteTable(cmd.OutOrStdout(), []string{"ICON", "SOURCE"}, rows)
		},
	}

	cmd.Flags().StringVarP(&outputMode, "output", "o", "table", "Output format (table|json|yaml)")
	return cmd
}
