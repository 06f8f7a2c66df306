package loader

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bigbrotr/sitenav/pkg/model"
	"github.com/bigbrotr/sitenav/pkg/navconfig"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Format is the syntax of a site configuration document.
type Format string

const (
	FormatYAML  Format = "yaml"
	FormatJSON  Format = "json"
	FormatJSONC Format = "jsonc"
)

// FormatForPath picks the document format from the file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".jsonc":
		return FormatJSONC, nil
	default:
		return "", fmt.Errorf("unsupported site config extension %q (expected .yaml, .yml, .json, or .jsonc)", filepath.Ext(path))
	}
}

// LoadInput reads and strictly decodes a site configuration file. Unknown
// fields are rejected so typos surface before validation.
func LoadInput(path string) (model.Input, error) {
	if err := mustFile(path); err != nil {
		return model.Input{}, err
	}
	format, err := FormatForPath(path)
	if err != nil {
		return model.Input{}, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return model.Input{}, fmt.Errorf("read site config %s: %w", path, err)
	}

	in, err := DecodeInput(content, format)
	if err != nil {
		return model.Input{}, fmt.Errorf("parse site config %s: %w", path, err)
	}
	return in, nil
}

// DecodeInput strictly decodes a site configuration document.
func DecodeInput(content []byte, format Format) (model.Input, error) {
	var in model.Input
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(content))
		dec.KnownFields(true)
		if err := dec.Decode(&in); err != nil {
			if errors.Is(err, io.EOF) {
				return in, fmt.Errorf("document is empty")
			}
			return in, err
		}
	case FormatJSON, FormatJSONC:
		if format == FormatJSONC {
			content = jsonc.ToJSON(content)
		}
		dec := json.NewDecoder(bytes.NewReader(content))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&in); err != nil {
			if errors.Is(err, io.EOF) {
				return in, fmt.Errorf("document is empty")
			}
			return in, err
		}
		if dec.More() {
			return in, fmt.Errorf("unexpected data after top-level object")
		}
	default:
		return in, fmt.Errorf("unsupported format %q", format)
	}
	return in, nil
}

// LoadSite loads a site configuration file and validates it against the
// content index behind resolver.
func LoadSite(path string, resolver navconfig.SlugResolver, opts ...navconfig.Option) (model.SiteConfig, error) {
	in, err := LoadInput(path)
	if err != nil {
		return model.SiteConfig{}, err
	}
	return navconfig.New(resolver, opts...).Build(in)
}

func mustFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("required file missing: %s", path)
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("required file is a directory: %s", path)
	}
	return nil
}
