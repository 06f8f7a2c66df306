package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bigbrotr/sitenav/internal/atomicfile"
	"gopkg.in/yaml.v3"
)

const (
	workspaceDirName = ".sitenav"
	configFileName   = "config.yaml"
)

// ErrNotFound reports that no config file exists at the resolved path.
var ErrNotFound = errors.New("config file not found")

// DefaultPath returns the config path under the user's home directory.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve user home directory: %w", err)
	}
	home = strings.TrimSpace(home)
	if home == "" {
		return "", fmt.Errorf("resolve user home directory: empty path")
	}
	return filepath.Join(home, workspaceDirName, configFileName), nil
}

// FindWorkspace returns the nearest .sitenav/config.yaml in start or one of
// its parents, so a docs repository can carry its own site list.
func FindWorkspace(start string) (string, bool) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", false
	}
	for {
		candidate := filepath.Join(dir, workspaceDirName, configFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// ResolvePath picks the config path: explicit input, then $SITENAV_CONFIG,
// then the nearest workspace above the working directory, then the home
// directory default.
func ResolvePath(explicit string) (string, error) {
	if path := strings.TrimSpace(explicit); path != "" {
		return path, nil
	}
	if path := strings.TrimSpace(os.Getenv(EnvConfigPath)); path != "" {
		return path, nil
	}
	if wd, err := os.Getwd(); err == nil {
		if path, ok := FindWorkspace(wd); ok {
			return path, nil
		}
	}
	return DefaultPath()
}

// Load loads config from the resolved path and returns the config and path used.
func Load(explicitPath string) (Config, string, error) {
	path, err := ResolvePath(explicitPath)
	if err != nil {
		return Config{}, "", err
	}
	cfg, err := LoadFromPath(path)
	if err != nil {
		return Config{}, path, err
	}
	return cfg, path, nil
}

// LoadFromPath loads and validates config from the provided path.
func LoadFromPath(path string) (Config, error) {
	cfg := Config{}

	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("%w at %s (create it or set %s)", ErrNotFound, path, EnvConfigPath)
		}
		return cfg, fmt.Errorf("read config file %s: %w", path, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse config file %s: %w", path, err)
	}
	if abs, err := filepath.Abs(path); err == nil {
		cfg.dir = filepath.Dir(abs)
	} else {
		cfg.dir = filepath.Dir(path)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validate config file %s: %w", path, err)
	}

	return cfg, nil
}

// Save writes config back to path, replacing the file atomically. New
// files are created private to the user.
func Save(path string, cfg Config) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return fmt.Errorf("config path is required")
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validate config file %s: %w", path, err)
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config file %s: %w", path, err)
	}
	if err := atomicfile.Write(path, data, 0o600); err != nil {
		return fmt.Errorf("save config file: %w", err)
	}
	return nil
}
