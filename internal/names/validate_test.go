package names

import (
	"strings"
	"testing"
)

func TestValidateSlug(t *testing.T) {
	tests := []struct {
		slug    string
		wantErr string
	}{
		{slug: "guides/getting-started"},
		{slug: "api/relay-metadata"},
		{slug: "index"},
		{slug: "v1.2/notes_final"},
		{slug: "", wantErr: "required"},
		{slug: "guides//intro", wantErr: "empty path segment"},
		{slug: "guides/../secret", wantErr: "relative path segment"},
		{slug: "Guides/Intro"},
		{slug: "guides/café"},
		{slug: "guides/intro page"},
		{slug: "guides/./intro", wantErr: "relative path segment"},
		{slug: "guides/in\x00tro", wantErr: "control character"},
		{slug: strings.Repeat("a", MaxSlugLength+1), wantErr: "at most"},
	}

	for _, tc := range tests {
		err := ValidateSlug(tc.slug)
		if tc.wantErr == "" {
			if err != nil {
				t.Fatalf("ValidateSlug(%q) unexpected error: %v", tc.slug, err)
			}
			continue
		}
		if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
			t.Fatalf("ValidateSlug(%q) error = %v, want %q", tc.slug, err, tc.wantErr)
		}
	}
}

func TestNormalizeSlug(t *testing.T) {
	if got := NormalizeSlug("  /guides/intro/ "); got != "guides/intro" {
		t.Fatalf("NormalizeSlug() = %q", got)
	}
}

func TestSlugFromPath(t *testing.T) {
	tests := map[string]string{
		"index.md":                  "index",
		"guides/index.mdx":          "guides",
		"guides/Getting-Started.md": "guides/getting-started",
		"api\\relay.mdoc":           "api/relay",
		"deamons/relays-monitor.md": "deamons/relays-monitor",
		"guides/Release Notes.md":   "guides/release-notes",
	}
	for in, want := range tests {
		if got := SlugFromPath(in); got != want {
			t.Fatalf("SlugFromPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestValidateSiteName(t *testing.T) {
	if err := ValidateSiteName("bigbrotr-docs"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateSiteName("-docs"); err == nil {
		t.Fatalf("expected invalid name error")
	}
	if err := ValidateSiteName(""); err == nil || !strings.Contains(err.Error(), "required") {
		t.Fatalf("expected required error, got %v", err)
	}
}
