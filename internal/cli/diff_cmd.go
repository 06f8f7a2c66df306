package cli

import (
	"errors"
	"fmt"
	"strings"

	diffpkg "github.com/bigbrotr/sitenav/internal/diff"
	"github.com/bigbrotr/sitenav/internal/output"
	"github.com/bigbrotr/sitenav/pkg/loader"
	"github.com/bigbrotr/sitenav/pkg/model"
	"github.com/bigbrotr/sitenav/pkg/navconfig"
	"github.com/spf13/cobra"
)

var errDiffHasChanges = errors.New("diff detected changes")

func newDiffCmd() *cobra.Command {
	var src sourceFlags
	var against string
	var outputMode string

	cmd := &cobra.Command{
		Use:   "diff -f <old-input> --against <new-input>",
		Short: "Show sidebar changes between two site inputs",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := runtimeFromCommand(cmd)
			if err != nil {
				return exitCodeError(ExitValidation, err)
			}
			resolved, err := src.resolve(cmd, rt)
			if err != nil {
				return exitCodeError(ExitValidation, err)
			}
			against = strings.TrimSpace(against)
			if resolved.File == "" || against == "" {
				fmt.Fprint(cmd.ErrOrStderr(), cmd.UsageString())
				return exitCodeError(ExitValidation, fmt.Errorf("required flag(s) \"file\" and \"against\" not set"))
			}
			format, err := output.ParseFormat(outputMode)
			if err != nil {
				return exitCodeError(ExitValidation, err)
			}

			var resolver navconfig.SlugResolver = navconfig.AnySlug
			if resolved.hasContent() {
				idx, err := loadIndex(cmd.Context(), rt, resolved)
				if err != nil {
					return exitCodeError(ExitValidation, err)
				}
				resolver = idx
			}

			before, err := buildForDiff(cmd, rt, resolved, resolved.File, resolver)
			if err != nil {
				return exitCodeError(ExitValidation, err)
			}
			after, err := buildForDiff(cmd, rt, resolved, against, resolver)
			if err != nil {
				return exitCodeError(ExitValidation, err)
			}

			report := diffpkg.Report{Old: resolved.File, New: against, Result: diffpkg.Compute(before.Nav, after.Nav)}
			if format.Structured() {
				if err := output.WriteStructured(cmd.OutOrStdout(), format, report); err != nil {
					return exitCodeError(ExitValidation, err)
				}
			} else {
				if err := diffpkg.WriteTable(cmd.OutOrStdout(), report.Result, diffpkg.DisplayOptions{
					Color: diffpkg.AutoColor(cmd.OutOrStdout()),
				}); err != nil {
					return exitCodeError(ExitValidation, err)
				}
			}

			if report.Result.HasChanges() {
				return exitCodeError(ExitFailure, errDiffHasChanges)
			}
			return nil
		},
	}

	src.register(cmd, true)
	cmd.Flags().StringVar(&against, "against", "", "Site input to compare with")
	cmd.Flags().StringVarP(&outputMode, "output", "o", "table", "Output format (table|json|yaml)")
	return cmd
}

func buildForDiff(cmd *cobra.Command, rt *commandRuntime, src resolvedSource, path string, resolver navconfig.SlugResolver) (model.SiteConfig, error) {
	cfg, err := loader.LoadSite(path, resolver, src.builderOptions(rt)...)
	var buildErr *navconfig.BuildError
	if errors.As(err, &buildErr) {
		_ = output.WriteViolations(cmd.ErrOrStderr(), buildErr.Violations)
		return model.SiteConfig{}, fmt.Errorf("%s: site configuration invalid", path)
	}
	return cfg, err
}
