package names

import (
	"fmt"
	"path"
	"regexp"
	"strings"
	"unicode"
)

const (
	MaxSiteNameLength = 128
	MaxSlugLength     = 256
)

var siteNamePattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_-]*$`)

// ValidateSiteName checks a workspace site name.
func ValidateSiteName(name string) error {
	if name == "" {
		return fmt.Errorf("name is required")
	}
	if len(name) > MaxSiteNameLength {
		return fmt.Errorf("name must be at most %d characters", MaxSiteNameLength)
	}
	if !siteNamePattern.MatchString(name) {
		return fmt.Errorf("name must match %q", siteNamePattern.String())
	}
	return nil
}

// NormalizeSlug trims whitespace and surrounding slashes.
func NormalizeSlug(slug string) string {
	return strings.Trim(strings.TrimSpace(slug), "/")
}

// ValidateSlug checks the structure of a content identifier. Which
// characters a slug may hold is up to the content index that resolves it.
func ValidateSlug(slug string) error {
	if slug == "" {
		return fmt.Errorf("slug is required")
	}
	if len(slug) > MaxSlugLength {
		return fmt.Errorf("slug must be at most %d characters", MaxSlugLength)
	}
	for _, segment := range strings.Split(slug, "/") {
		if segment == "" {
			return fmt.Errorf("slug %q contains an empty path segment", slug)
		}
		if segment == "." || segment == ".." {
			return fmt.Errorf("slug %q contains a relative path segment", slug)
		}
		if strings.IndexFunc(segment, unicode.IsControl) >= 0 {
			return fmt.Errorf("slug %q contains a control character", slug)
		}
	}
	return nil
}

// SlugFromPath derives the slug of a content file from its path relative to
// the content root. "guides/index.md" maps to "guides"; a root "index.md"
// keeps the slug "index". Spaces become hyphens.
func SlugFromPath(rel string) string {
	rel = strings.ReplaceAll(rel, "\\", "/")
	rel = strings.TrimSuffix(rel, path.Ext(rel))
	rel = strings.ToLower(NormalizeSlug(rel))
	rel = strings.Join(strings.Fields(rel), "-")
	if rel != "index" {
		rel = strings.TrimSuffix(rel, "/index")
	}
	return rel
}
