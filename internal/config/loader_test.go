package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config file: %v", err)
	}
}

func TestLoadFromPathValidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeConfig(t, path, `current-site: bigbrotr
log-level: DEBUG
sites:
  - name: bigbrotr
    config: docs/site.yaml
    contentDir: docs/src/content/docs
    index: .sitenav/index.db
    icons: [nostrudel]
  - name: sandbox
    config: /srv/sandbox/site.jsonc
    includeDrafts: true
`)

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}
	if cfg.APIVersion != DefaultAPIVersion {
		t.Fatalf("expected default apiVersion %q, got %q", DefaultAPIVersion, cfg.APIVersion)
	}
	if cfg.CurrentSite != "bigbrotr" {
		t.Fatalf("expected current-site bigbrotr, got %q", cfg.CurrentSite)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("expected normalized log level debug, got %q", cfg.LogLevel)
	}
	if len(cfg.Sites) != 2 || !cfg.Sites[1].IncludeDrafts {
		t.Fatalf("unexpected sites %#v", cfg.Sites)
	}
	if cfg.dir != filepath.Dir(path) {
		t.Fatalf("expected config dir %q, got %q", filepath.Dir(path), cfg.dir)
	}
}

func TestLoadFromPathMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.yaml")
	_, err := LoadFromPath(path)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), path) || !strings.Contains(err.Error(), EnvConfigPath) {
		t.Fatalf("expected path and env var in missing-file error, got %v", err)
	}
}

func TestLoadFromPathMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeConfig(t, path, "current-site: [")

	_, err := LoadFromPath(path)
	if err == nil || !strings.Contains(err.Error(), "parse config file") {
		t.Fatalf("expected parse error context, got %v", err)
	}
}

func TestLoadFromPathRejectsUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeConfig(t, path, `sites:
  - name: bigbrotr
    config: site.yaml
    contentdir: docs
`)

	_, err := LoadFromPath(path)
	if err == nil || !strings.Contains(err.Error(), "contentdir") {
		t.Fatalf("expected unknown field error, got %v", err)
	}
}

func TestLoadFromPathAllowsEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeConfig(t, path, "")

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("expected empty config to load, got %v", err)
	}
	if len(cfg.Sites) != 0 || cfg.APIVersion != DefaultAPIVersion {
		t.Fatalf("unexpected config %#v", cfg)
	}
}

func TestLoadFromPathValidationErrors(t *testing.T) {
	tests := map[string]struct {
		content string
		want    string
	}{
		"missing name": {
			content: "sites:\n  - config: site.yaml\n",
			want:    "sites[0].name is required",
		},
		"invalid name": {
			content: "sites:\n  - name: -docs\n    config: site.yaml\n",
			want:    "sites[0].name",
		},
		"duplicate name": {
			content: "sites:\n  - name: docs\n    config: a.yaml\n  - name: docs\n    config: b.yaml\n",
			want:    `duplicate site name "docs"`,
		},
		"missing config": {
			content: "sites:\n  - name: docs\n",
			want:    "config is required",
		},
		"blank icon": {
			content: "sites:\n  - name: docs\n    config: a.yaml\n    icons: [\" \"]\n",
			want:    "icons[0] is empty",
		},
		"unknown current site": {
			content: "current-site: prod\nsites:\n  - name: docs\n    config: a.yaml\n",
			want:    `current-site "prod"`,
		},
		"bad log level": {
			content: "log-level: verbose\n",
			want:    "log-level",
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			writeConfig(t, path, tc.content)
			_, err := LoadFromPath(path)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
			if !strings.Contains(err.Error(), "validate config file") {
				t.Fatalf("expected validation context, got %v", err)
			}
		})
	}
}

func TestLoadUsesSitenavConfigEnvVar(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	writeConfig(t, path, "current-site: docs\nsites:\n  - name: docs\n    config: site.yaml\n")
	t.Setenv(EnvConfigPath, path)

	cfg, resolvedPath, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if resolvedPath != path {
		t.Fatalf("expected resolved path %q, got %q", path, resolvedPath)
	}
	if cfg.CurrentSite != "docs" {
		t.Fatalf("unexpected current-site: %q", cfg.CurrentSite)
	}
}

func TestLoadExplicitPathWins(t *testing.T) {
	t.Setenv(EnvConfigPath, filepath.Join(t.TempDir(), "env.yaml"))
	explicit := filepath.Join(t.TempDir(), "explicit.yaml")
	writeConfig(t, explicit, "")

	_, resolvedPath, err := Load(explicit)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if resolvedPath != explicit {
		t.Fatalf("expected explicit path %q, got %q", explicit, resolvedPath)
	}
}

func TestLoadUsesDefaultPathUnderHome(t *testing.T) {
	home := t.TempDir()
	configPath := filepath.Join(home, ".sitenav", "config.yaml")
	writeConfig(t, configPath, "current-site: docs\nsites:\n  - name: docs\n    config: site.yaml\n")

	t.Setenv("HOME", home)
	t.Setenv(EnvConfigPath, "")
	t.Chdir(t.TempDir())

	cfg, resolvedPath, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if resolvedPath != configPath {
		t.Fatalf("expected default path %q, got %q", configPath, resolvedPath)
	}
	if cfg.CurrentSite != "docs" {
		t.Fatalf("unexpected current-site: %q", cfg.CurrentSite)
	}
}

func TestLoadPrefersNearestWorkspace(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, filepath.Join(home, ".sitenav", "config.yaml"), "current-site: home\nsites:\n  - name: home\n    config: site.yaml\n")
	repo := t.TempDir()
	workspace := filepath.Join(repo, ".sitenav", "config.yaml")
	writeConfig(t, workspace, "current-site: docs\nsites:\n  - name: docs\n    config: ../site.yaml\n")
	nested := filepath.Join(repo, "content", "guides")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	t.Setenv("HOME", home)
	t.Setenv(EnvConfigPath, "")
	t.Chdir(nested)

	cfg, resolvedPath, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if resolvedPath != workspace {
		t.Fatalf("expected workspace path %q, got %q", workspace, resolvedPath)
	}
	site, err := ResolveSite(cfg, "")
	if err != nil {
		t.Fatalf("ResolveSite() error = %v", err)
	}
	if site.Config != filepath.Join(repo, "site.yaml") {
		t.Fatalf("expected site config resolved against the workspace, got %q", site.Config)
	}
}

func TestFindWorkspaceStopsAtRoot(t *testing.T) {
	if path, ok := FindWorkspace(t.TempDir()); ok {
		t.Fatalf("expected no workspace, got %q", path)
	}
}

func TestSaveWritesUpdatedConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Config{
		CurrentSite: "docs",
		Sites:       []Site{{Name: "docs", Config: "site.yaml", ContentDir: "content"}},
	}

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat saved config: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("expected 0600 permissions on new config, got %v", info.Mode().Perm())
	}

	loaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() after Save error = %v", err)
	}
	if loaded.CurrentSite != "docs" || loaded.Sites[0].ContentDir != "content" {
		t.Fatalf("unexpected reloaded config %#v", loaded)
	}
	if loaded.APIVersion != DefaultAPIVersion {
		t.Fatalf("expected default apiVersion %q, got %q", DefaultAPIVersion, loaded.APIVersion)
	}
}

func TestSaveRejectsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	err := Save(path, Config{Sites: []Site{{Name: "docs"}}})
	if err == nil || !strings.Contains(err.Error(), "config is required") {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Fatalf("expected no file written, stat err = %v", statErr)
	}
}
