package cli

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bigbrotr/sitenav/internal/atomicfile"
	"github.com/bigbrotr/sitenav/internal/output"
	"github.com/bigbrotr/sitenav/pkg/loader"
	"github.com/bigbrotr/sitenav/pkg/navconfig"
	"github.com/spf13/cobra"
)

func newBuildCmd() *cobra.Command {
	var src sourceFlags
	var out string

	cmd := &cobra.Command{
		Use:   "build -f <site-input> --out <path>",
		Short: "Write the validated site configuration for the rendering framework",
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
			out = strings.TrimSpace(out)
			if out == "" {
				fmt.Fprint(cmd.ErrOrStderr(), cmd.UsageString())
				return fmt.Errorf("required flag(s) \"out\" not set")
			}
			format, err := formatForOutputPath(out)
			if err != nil {
				return err
			}
			if !resolved.hasContent() {
				return errNoContentSource
			}

			idx, err := loadIndex(cmd.Context(), rt, resolved)
			if err != nil {
				return err
			}
			cfg, err := loader.LoadSite(resolved.File, idx, resolved.builderOptions(rt)...)
			if err != nil {
				var buildErr *navconfig.BuildError
				if errors.As(err, &buildErr) {
					_ = output.WriteViolations(cmd.ErrOrStderr(), buildErr.Violations)
					return exitCodeError(ExitValidation, fmt.Errorf("%s: site configuration invalid, nothing written", resolved.File))
				}
				return err
			}

			var buf bytes.Buffer
			if err := output.WriteStructured(&buf, format, cfg); err != nil {
				return err
			}
			if out == "-" {
				_, err := cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}
			if err := atomicfile.Write(out, buf.Bytes(), 0o644); err != nil {
				return err
			}
			rt.Logger.Info("site configuration written", "path", out, "groups", len(cfg.Nav), "items", cfg.Nav.ItemCount())
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d group(s), %d item(s))\n", out, len(cfg.Nav), cfg.Nav.ItemCount())
			return nil
		},
	}

	src.register(cmd, true)
	cmd.Flags().StringVar(&out, "out", "", "Output file (.json, .yaml, .yml) or - for JSON on stdout")
	return cmd
}

func formatForOutputPath(path string) (output.Format, error) {
	if path == "-" {
		return output.FormatJSON, nil
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return output.FormatJSON, nil
	case ".yaml", ".yml":
		return output.FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported output extension for %s (expected .json, .yaml, or .yml)", path)
	}
}
