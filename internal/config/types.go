package config

import (
	"fmt"
	"strings"

	"github.com/bigbrotr/sitenav/internal/names"
)

const (
	EnvConfigPath     = "SITENAV_CONFIG"
	DefaultAPIVersion = "sitenav.dev/v1"
)

var logLevels = map[string]struct{}{"debug": {}, "info": {}, "warn": {}, "error": {}}

// Config is the sitenav workspace configuration file structure.
type Config struct {
	APIVersion  string `yaml:"apiVersion,omitempty"`
	CurrentSite string `yaml:"current-site"`
	LogLevel    string `yaml:"log-level,omitempty"`
	Sites       []Site `yaml:"sites"`

	// dir is the directory of the file the config was loaded from.
	dir string
}

// Site names one documentation site: its declarative input and the content
// collection its sidebar links into.
type Site struct {
	Name          string   `yaml:"name"`
	Config        string   `yaml:"config"`
	ContentDir    string   `yaml:"contentDir,omitempty"`
	Index         string   `yaml:"index,omitempty"`
	IncludeDrafts bool     `yaml:"includeDrafts,omitempty"`
	Icons         []string `yaml:"icons,omitempty"`
}

// SiteInfo is the resolved site used by commands. Paths are absolute or
// relative to the working directory.
type SiteInfo struct {
	Name          string
	Config        string
	ContentDir    string
	Index         string
	IncludeDrafts bool
	Icons         []string
}

func (c *Config) normalize() {
	if strings.TrimSpace(c.APIVersion) == "" {
		c.APIVersion = DefaultAPIVersion
	}
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
}

// Validate checks config invariants that must hold for the file to be usable.
func (c Config) Validate() error {
	if c.LogLevel != "" {
		if _, ok := logLevels[strings.ToLower(strings.TrimSpace(c.LogLevel))]; !ok {
			return fmt.Errorf("log-level %q must be one of debug, info, warn, error", c.LogLevel)
		}
	}

	seen := make(map[string]struct{}, len(c.Sites))
	for i, site := range c.Sites {
		name := strings.TrimSpace(site.Name)
		if name == "" {
			return fmt.Errorf("sites[%d].name is required", i)
		}
		if err := names.ValidateSiteName(name); err != nil {
			return fmt.Errorf("sites[%d].name: %w", i, err)
		}
		if _, exists := seen[name]; exists {
			return fmt.Errorf("duplicate site name %q", name)
		}
		seen[name] = struct{}{}

		if strings.TrimSpace(site.Config) == "" {
			return fmt.Errorf("site %q: config is required", name)
		}
		for j, icon := range site.Icons {
			if strings.TrimSpace(icon) == "" {
				return fmt.Errorf("site %q: icons[%d] is empty", name, j)
			}
		}
	}

	if current := strings.TrimSpace(c.CurrentSite); current != "" {
		if _, ok := seen[current]; !ok {
			return fmt.Errorf("current-site %q does not name a configured site", current)
		}
	}
	return nil
}
