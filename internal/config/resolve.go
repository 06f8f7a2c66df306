package config

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// ResolveSite resolves either an explicit site name or current-site. Site
// paths are resolved against the directory of the loaded config file.
func ResolveSite(cfg Config, explicitName string) (SiteInfo, error) {
	name := strings.TrimSpace(explicitName)
	if name == "" {
		name = strings.TrimSpace(cfg.CurrentSite)
		if name == "" {
			return SiteInfo{}, fmt.Errorf("no site selected: set current-site or pass --site")
		}
	}

	for _, site := range cfg.Sites {
		if strings.TrimSpace(site.Name) != name {
			continue
		}
		icons := make([]string, 0, len(site.Icons))
		for _, icon := range site.Icons {
			icons = append(icons, strings.TrimSpace(icon))
		}
		return SiteInfo{
			Name:          name,
			Config:        cfg.resolvePath(site.Config),
			ContentDir:    cfg.resolvePath(site.ContentDir),
			Index:         cfg.resolvePath(site.Index),
			IncludeDrafts: site.IncludeDrafts,
			Icons:         icons,
		}, nil
	}

	available := SiteNames(cfg)
	if len(available) == 0 {
		return SiteInfo{}, fmt.Errorf("site %q not found: config has no sites", name)
	}
	return SiteInfo{}, fmt.Errorf("site %q not found; available sites: %s", name, strings.Join(available, ", "))
}

// SiteNames returns the configured site names sorted.
func SiteNames(cfg Config) []string {
	out := make([]string, 0, len(cfg.Sites))
	for _, site := range cfg.Sites {
		name := strings.TrimSpace(site.Name)
		if name != "" {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

func (c Config) resolvePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" || filepath.IsAbs(p) || c.dir == "" {
		return p
	}
	return filepath.Join(c.dir, p)
}
