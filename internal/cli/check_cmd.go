package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/bigbrotr/sitenav/internal/contentindex"
	"github.com/bigbrotr/sitenav/internal/output"
	"github.com/bigbrotr/sitenav/pkg/loader"
	"github.com/bigbrotr/sitenav/pkg/model"
	"github.com/bigbrotr/sitenav/pkg/navconfig"
	"github.com/spf13/cobra"
)

type checkReport struct {
	Site       string                  `json:"site,omitempty" yaml:"site,omitempty"`
	File       string                  `json:"file" yaml:"file"`
	Valid      bool                    `json:"valid" yaml:"valid"`
	Config     *model.SiteConfig       `json:"config,omitempty" yaml:"config,omitempty"`
	Violations []navconfig.Violation   `json:"violations,omitempty" yaml:"violations,omitempty"`
	Orphans    []contentindex.Document `json:"orphans,omitempty" yaml:"orphans,omitempty"`
}

func newCheckCmd() *cobra.Command {
	var src sourceFlags
	var orphans bool
	var outputMode string

	cmd := &cobra.Command{
		Use:   "check -f <site-input>",
		Short: "Validate site metadata and sidebar against the content collection",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := runtimeFromCommand(cmd)
			if err != nil {
				return err
			}
			resolved, err := src.resolve(cmd, rt)
			if err != nil {
				return err
			}
			if err := requireFile(cmd, resolved); err != nil {
				return err
			}
			format, err := output.ParseFormat(outputMode)
			if err != nil {
				return err
			}

			report, err := runCheck(cmd, rt, resolved, orphans)
			if err != nil {
				return err
			}
			if err := writeCheckReport(cmd.OutOrStdout(), format, report); err != nil {
				return err
			}
			if !report.Valid {
				return exitCodeError(ExitValidation, fmt.Errorf("%s: site configuration invalid (%d violation(s))", report.File, len(report.Violations)))
			}
			return nil
		},
	}

	src.register(cmd, true)
	cmd.Flags().BoolVar(&orphans, "orphans", false, "List documents the sidebar never links to")
	cmd.Flags().StringVarP(&outputMode, "output", "o", "tree", "Output format (tree|table|json|yaml)")
	return cmd
}

// runCheck builds the site configuration. Validation failures are reported
// in the returned report; only operational failures return an error.
func runCheck(cmd *cobra.Command, rt *commandRuntime, src resolvedSource, withOrphans bool) (checkReport, error) {
	report := checkReport{Site: src.Site, File: src.File}

	input, err := loader.LoadInput(src.File)
	if err != nil {
		return report, err
	}
	if !src.hasContent() {
		return report, errNoContentSource
	}
	idx, err := loadIndex(cmd.Context(), rt, src)
	if err != nil {
		return report, err
	}

	cfg, err := navconfig.New(idx, src.builderOptions(rt)...).Build(input)
	var buildErr *navconfig.BuildError
	if errors.As(err, &buildErr) {
		report.Violations = buildErr.Violations
		return report, nil
	}
	if err != nil {
		return report, err
	}

	report.Valid = true
	report.Config = &cfg
	if withOrphans {
		report.Orphans = contentindex.Orphans(idx, cfg.Nav)
		if len(report.Orphans) > 0 {
			rt.Logger.Warn("documents not linked from the sidebar", "count", len(report.Orphans))
		}
	}
	return report, nil
}

func writeCheckReport(w io.Writer, format output.Format, report checkReport) error {
	if format.Structured() {
		return output.WriteStructured(w, format, report)
	}
	if !report.Valid {
		return output.WriteViolations(w, report.Violations)
	}

	var err error
	if format == output.FormatTable {
		err = output.WriteTable(w, []string{"GROUP", "ITEM", "SLUG", "COLLAPSED"}, output.SidebarRows(report.Config.Nav))
	} else {
		err = output.WriteTree(w, *report.Config)
	}
	if err != nil {
		return err
	}

	if len(report.Orphans) > 0 {
		fmt.Fprintf(w, "\nUnlinked documents (%d):\n", len(report.Orphans))
		rows := make([][]string, 0, len(report.Orphans))
		for _, doc := range report.Orphans {
			rows = append(rows, []string{doc.Slug, doc.Path})
		}
		if err := output.WriteTable(w, []string{"SLUG", "PATH"}, rows); err != nil {
			return err
		}
	}
	return nil
}
