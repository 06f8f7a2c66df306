package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/bigbrotr/sitenav/internal/config"
	"github.com/spf13/cobra"
)

const requiresConfigAnnotation = "sitenav/requires-config"

type runtimeKey struct{}

// commandRuntime is the state shared by every subcommand: the workspace
// config, if one was found, and the logger.
type commandRuntime struct {
	ConfigPath   string
	Config       config.Config
	ConfigLoaded bool
	SiteOverride string
	Logger       *slog.Logger
}

type rootOptions struct {
	configPath string
	site       string
	logLevel   string
}

// NewRootCmd builds the sitenav root command tree.
func NewRootCmd(version string) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "sitenav",
		Short:        "Validate and build documentation site navigation",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(cmd, opts)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(context.WithValue(ctx, runtimeKey{}, rt))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Workspace config path (default $"+config.EnvConfigPath+", the nearest .sitenav/config.yaml, or ~/.sitenav/config.yaml)")
	cmd.PersistentFlags().StringVar(&opts.site, "site", "", "Site from the workspace config (default current-site)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level (debug|info|warn|error)")

	cmd.AddCommand(newCheckCmd())
	cmd.AddCommand(newBuildCmd())
	cmd.AddCommand(newIndexCmd())
	cmd.AddCommand(newDiffCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newIconsCmd())
	cmd.AddCommand(newVersionCmd(version))

	return cmd
}

func newRuntime(cmd *cobra.Command, opts *rootOptions) (*commandRuntime, error) {
	rt := &commandRuntime{SiteOverride: strings.TrimSpace(opts.site)}

	cfg, path, err := config.Load(opts.configPath)
	rt.ConfigPath = path
	switch {
	case err == nil:
		rt.Config = cfg
		rt.ConfigLoaded = true
	case errors.Is(err, config.ErrNotFound) && !requiresConfig(cmd) && rt.SiteOverride == "" && strings.TrimSpace(opts.configPath) == "":
		// No workspace config: flags must name every input.
	default:
		return nil, err
	}

	level := strings.TrimSpace(opts.logLevel)
	if level == "" {
		level = rt.Config.LogLevel
	}
	if level == "" {
		level = "warn"
	}
	logger, err := NewLogger(cmd.ErrOrStderr(), level)
	if err != nil {
		return nil, err
	}
	rt.Logger = logger
	if rt.ConfigLoaded {
		logger.Debug("workspace config loaded", "path", rt.ConfigPath, "sites", len(rt.Config.Sites))
	}
	return rt, nil
}

func runtimeFromCommand(cmd *cobra.Command) (*commandRuntime, error) {
	ctx := cmd.Context()
	if ctx == nil {
		return nil, fmt.Errorf("internal: command runtime is not initialized")
	}
	rt, ok := ctx.Value(runtimeKey{}).(*commandRuntime)
	if !ok || rt == nil {
		return nil, fmt.Errorf("internal: command runtime is not initialized")
	}
	return rt, nil
}

// site resolves the selected workspace site. ok is false when no config was
// loaded, or the config selects no site and none was requested.
func (rt *commandRuntime) site() (config.SiteInfo, bool, error) {
	if !rt.ConfigLoaded {
		return config.SiteInfo{}, false, nil
	}
	if rt.SiteOverride == "" && strings.TrimSpace(rt.Config.CurrentSite) == "" {
		return config.SiteInfo{}, false, nil
	}
	info, err := config.ResolveSite(rt.Config, rt.SiteOverride)
	if err != nil {
		return config.SiteInfo{}, false, err
	}
	return info, true, nil
}

func markRequiresConfig(cmd *cobra.Command) {
	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	cmd.Annotations[requiresConfigAnnotation] = "true"
}

func requiresConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[requiresConfigAnnotation] == "true" {
			return true
		}
	}
	return false
}

func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level %q (expected debug|info|warn|error)", level)
	}
}

// NewLogger returns a text logger writing to w at the given level.
func NewLogger(w io.Writer, level string) (*slog.Logger, error) {
	parsed, err := parseLogLevel(level)
	if err != nil {
		return nil, err
	}
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: parsed})
	return slog.New(h), nil
}
