package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/bigbrotr/sitenav/internal/config"
)

const bigbrotrInput = `title: Bigbrotr
description: Nostr relay monitoring
social:
  - icon: github
    label: GitHub
    href: https://github.com/bigbrotr/bigbrotr
sidebar:
  - label: Overview
    items:
      - label: Introduction
        slug: overview/introduction
      - label: Architecture
        slug: overview/architecture
  - label: Deamons
    collapsed: true
    items:
      - label: Monitor
        slug: deamons/monitor
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// writeWorkspace lays out a site input, a content collection with one
// unlinked page, and a workspace config pointing at both.
func writeWorkspace(t *testing.T, currentSite string) (dir, configPath string) {
	t.Helper()
	dir = t.TempDir()
	writeFile(t, filepath.Join(dir, "site.yaml"), bigbrotrInput)
	writeFile(t, filepath.Join(dir, "content", "overview", "introduction.md"), "# Introduction\n")
	writeFile(t, filepath.Join(dir, "content", "overview", "architecture.md"), "---\ntitle: Architecture\n---\n")
	writeFile(t, filepath.Join(dir, "content", "deamons", "monitor.mdx"), "# Monitor\n")
	writeFile(t, filepath.Join(dir, "content", "extra", "unlinked.md"), "# Unlinked\n")

	configPath = filepath.Join(dir, "config.yaml")
	writeFile(t, configPath, `apiVersion: sitenav.dev/v1
current-site: `+currentSite+`
sites:
  - name: bigbrotr
    config: site.yaml
    contentDir: content
    icons: [nostrudel]
  - name: indexed
    config: site.yaml
    index: index.db
`)
	return dir, configPath
}

// runRoot executes the root command. Without a workspace config in env the
// config path points at a missing file so the caller's home is never read.
func runRoot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	if os.Getenv(config.EnvConfigPath) == "" {
		t.Setenv(config.EnvConfigPath, filepath.Join(t.TempDir(), "missing.yaml"))
	}
	cmd := NewRootCmd("test")
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}
