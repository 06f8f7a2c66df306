package cli

import (
	"fmt"
	"strings"

	"github.com/bigbrotr/sitenav/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage sitenav workspace sites",
	}
	markRequiresConfig(cmd)

	cmd.AddCommand(newConfigViewCmd())
	cmd.AddCommand(newConfigCurrentSiteCmd())
	cmd.AddCommand(newConfigUseSiteCmd())

	return cmd
}

func newConfigViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Print the loaded config",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := runtimeFromCommand(cmd)
			if err != nil {
				return err
			}
			out, err := yaml.Marshal(&rt.Config)
			if err != nil {
				return fmt.Errorf("marshal config output: %w", err)
			}
			if len(out) == 0 || out[len(out)-1] != '\n' {
				out = append(out, '\n')
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}

func newConfigCurrentSiteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "current-site",
		Short: "Print the active site name",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := runtimeFromCommand(cmd)
			if err != nil {
				return err
			}
			site, err := config.ResolveSite(rt.Config, rt.SiteOverride)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), site.Name)
			return nil
		},
	}
}

func newConfigUseSiteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "use-site <name>",
		Short: "Switch current-site",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := runtimeFromCommand(cmd)
			if err != nil {
				return err
			}

			site, err := config.ResolveSite(rt.Config, args[0])
			if err != nil {
				return err
			}

			rt.Config.CurrentSite = strings.TrimSpace(site.Name)
			if err := config.Save(rt.ConfigPath, rt.Config); err != nil {
				return err
			}

			rt.Logger.Debug("current site switched", "site", site.Name, "config", rt.ConfigPath)
			fmt.Fprintf(cmd.OutOrStdout(), "Switched to site %q\n", site.Name)
			return nil
		},
	}
}
