// Package navconfig validates declarative site input and produces the
// immutable site configuration consumed by the rendering framework.
//
// Validation is batch: every violation in the input is collected and
// returned together in a *BuildError. A build that reports any violation
// returns no configuration.
package navconfig

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"reflect"
	"strings"

	"github.com/bigbrotr/sitenav/internal/names"
	"github.com/bigbrotr/sitenav/pkg/model"
	"github.com/go-playground/validator/v10"
)

// SlugResolver answers whether a slug names a document in the content index.
type SlugResolver interface {
	SlugExists(slug string) bool
}

// SlugResolverFunc adapts a function to SlugResolver.
type SlugResolverFunc func(slug string) bool

func (f SlugResolverFunc) SlugExists(slug string) bool {
	return f(slug)
}

// AnySlug resolves every slug. It is meant for structural comparisons where
// no content index is available, never for producing a renderable site.
var AnySlug SlugResolver = SlugResolverFunc(func(string) bool { return true })

type Option func(*Builder)

// WithIcons accepts additional social icon identifiers.
func WithIcons(extra ...string) Option {
	return func(b *Builder) {
		b.extraIcons = append(b.extraIcons, extra...)
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// Builder validates input against a content index. A Builder holds no
// per-build state and may be reused.
type Builder struct {
	resolver   SlugResolver
	extraIcons []string
	icons      map[string]struct{}
	logger     *slog.Logger
	validate   *validator.Validate
}

// New returns a Builder resolving slugs through resolver. A nil resolver
// resolves nothing, so every item fails the slug check.
func New(resolver SlugResolver, opts ...Option) *Builder {
	b := &Builder{
		resolver: resolver,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.resolver == nil {
		b.resolver = SlugResolverFunc(func(string) bool { return false })
	}
	b.icons = iconSet(b.extraIcons)
	b.validate = newStructValidator(b.icons)
	return b
}

// Build validates input with the given resolver and default options.
func Build(input model.Input, resolver SlugResolver) (model.SiteConfig, error) {
	return New(resolver).Build(input)
}

// Build validates metadata and navigation together. Violations from both
// halves are reported in one *BuildError.
func (b *Builder) Build(input model.Input) (model.SiteConfig, error) {
	metadata, violations := b.siteMetadata(input)
	nav, navViolations := b.navTree(input.Sidebar)
	violations = append(violations, navViolations...)

	if len(violations) > 0 {
		b.logger.Debug("site configuration rejected", "title", strings.TrimSpace(input.Title), "violations", len(violations))
		return model.SiteConfig{}, &BuildError{Violations: violations}
	}

	b.logger.Debug("site configuration built", "title", metadata.Title, "groups", len(nav), "items", nav.ItemCount())
	return model.SiteConfig{Metadata: metadata, Nav: nav}, nil
}

// BuildSiteMetadata validates the site identity. Failures are InvalidMetadata.
func (b *Builder) BuildSiteMetadata(input model.Input) (model.SiteMetadata, error) {
	metadata, violations := b.siteMetadata(input)
	if len(violations) > 0 {
		return model.SiteMetadata{}, &BuildError{Violations: violations}
	}
	return metadata, nil
}

// BuildNavTree validates the sidebar. Failures are InvalidGroup or InvalidItem.
func (b *Builder) BuildNavTree(input model.Input) (model.NavTree, error) {
	nav, violations := b.navTree(input.Sidebar)
	if len(violations) > 0 {
		return nil, &BuildError{Violations: violations}
	}
	return nav, nil
}

func (b *Builder) siteMetadata(input model.Input) (model.SiteMetadata, []Violation) {
	var violations []Violation

	title := strings.TrimSpace(input.Title)
	if title == "" {
		violations = append(violations, metadataViolation(RuleTitleRequired, "title", "title is required"))
	}

	social := make([]model.SocialLink, 0, len(input.Social))
	for i, raw := range input.Social {
		link := model.SocialLinkInput{
			Icon:  strings.TrimSpace(raw.Icon),
			Label: strings.TrimSpace(raw.Label),
			Href:  strings.TrimSpace(raw.Href),
		}
		linkViolations := b.socialLink(fmt.Sprintf("social[%d]", i), link)
		violations = append(violations, linkViolations...)
		social = append(social, model.SocialLink{Icon: link.Icon, Label: link.Label, Href: link.Href})
	}

	return model.SiteMetadata{
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Social:      social,
	}, violations
}

func (b *Builder) socialLink(path string, link model.SocialLinkInput) []Violation {
	var violations []Violation
	hrefChecked := false

	var fieldErrs validator.ValidationErrors
	if err := b.validate.Struct(link); errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			fieldPath := path + "." + fe.Field()
			switch fe.Field() {
			case "icon":
				if fe.Tag() == "required" {
					violations = append(violations, metadataViolation(RuleSocialIconKnown, fieldPath, "icon is required"))
				} else {
					violations = append(violations, metadataViolation(RuleSocialIconKnown, fieldPath, fmt.Sprintf("unknown icon %q (run `sitenav icons` for the supported set)", link.Icon)))
				}
			case "label":
				violations = append(violations, metadataViolation(RuleSocialLabelRequired, fieldPath, "social link label is required"))
			case "href":
				hrefChecked = true
				if fe.Tag() == "required" {
					violations = append(violations, metadataViolation(RuleSocialHrefAbsolute, fieldPath, "href is required"))
				} else {
					violations = append(violations, metadataViolation(RuleSocialHrefAbsolute, fieldPath, fmt.Sprintf("href %q is not a valid absolute URL", link.Href)))
				}
			}
		}
	} else if err != nil {
		violations = append(violations, metadataViolation(RuleSocialHrefAbsolute, path, fmt.Sprintf("validate social link: %v", err)))
		hrefChecked = true
	}

	if !hrefChecked {
		if err := checkAbsoluteURL(link.Href); err != nil {
			violations = append(violations, metadataViolation(RuleSocialHrefAbsolute, path+".href", err.Error()))
		}
	}
	return violations
}

func (b *Builder) navTree(groups []model.GroupInput) (model.NavTree, []Violation) {
	var violations []Violation
	nav := make(model.NavTree, 0, len(groups))
	seen := make(map[string]int, len(groups))

	for i, raw := range groups {
		path := fmt.Sprintf("sidebar[%d]", i)
		label := strings.TrimSpace(raw.Label)

		if label == "" {
			violations = append(violations, groupViolation(RuleGroupLabelRequired, path+".label", "", "group label is required"))
		} else if first, dup := seen[LabelKey(label)]; dup {
			violations = append(violations, groupViolation(RuleGroupLabelUnique, path+".label", label,
				fmt.Sprintf("duplicate group label %q (first declared at sidebar[%d])", label, first)))
		} else {
			seen[LabelKey(label)] = i
		}

		if len(raw.Items) == 0 {
			violations = append(violations, groupViolation(RuleGroupItemsNonEmpty, path+".items", label,
				fmt.Sprintf("group %s has no items", describeLabel(label, path))))
		}

		items, itemViolations := b.navItems(path, label, raw.Items)
		violations = append(violations, itemViolations...)
		nav = append(nav, model.NavGroup{Label: label, Collapsed: raw.Collapsed, Items: items})
	}

	return nav, violations
}

func (b *Builder) navItems(groupPath, group string, raw []model.ItemInput) ([]model.NavItem, []Violation) {
	var violations []Violation
	items := make([]model.NavItem, 0, len(raw))
	seen := make(map[string]int, len(raw))

	for j, in := range raw {
		path := fmt.Sprintf("%s.items[%d]", groupPath, j)
		label := strings.TrimSpace(in.Label)
		slug := names.NormalizeSlug(in.Slug)
		where := fmt.Sprintf("item %s in group %s", describeLabel(label, path), describeLabel(group, groupPath))

		if label == "" {
			violations = append(violations, itemViolation(RuleItemLabelRequired, path+".label", group, "", where+": label is required"))
		} else if first, dup := seen[LabelKey(label)]; dup {
			violations = append(violations, itemViolation(RuleItemLabelUnique, path+".label", group, label,
				fmt.Sprintf("%s: duplicate label (first declared at %s.items[%d])", where, groupPath, first)))
		} else {
			seen[LabelKey(label)] = j
		}

		if err := names.ValidateSlug(slug); err != nil {
			violations = append(violations, itemViolation(RuleItemSlugSyntax, path+".slug", group, label, where+": "+err.Error()))
		} else if !b.resolver.SlugExists(slug) {
			violations = append(violations, itemViolation(RuleItemSlugResolves, path+".slug", group, label,
				fmt.Sprintf("%s: slug %q does not resolve to a content document", where, slug)))
		}

		items = append(items, model.NavItem{Label: label, Slug: slug})
	}

	return items, violations
}

func checkAbsoluteURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("href %q is not a valid URL: %v", raw, err)
	}
	if !u.IsAbs() {
		return fmt.Errorf("href %q must be an absolute URL", raw)
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		if u.Host == "" {
			return fmt.Errorf("href %q must include a host", raw)
		}
	}
	return nil
}

func describeLabel(label, path string) string {
	if label == "" {
		return path
	}
	return fmt.Sprintf("%q", label)
}

func newStructValidator(icons map[string]struct{}) *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("socialicon", func(fl validator.FieldLevel) bool {
		_, ok := icons[fl.Field().String()]
		return ok
	}); err != nil {
		panic(fmt.Sprintf("register socialicon validation: %v", err))
	}
	return v
}
