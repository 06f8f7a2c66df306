package navconfig

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a configuration violation.
type Kind string

const (
	KindInvalidMetadata Kind = "InvalidMetadata"
	KindInvalidGroup    Kind = "InvalidGroup"
	KindInvalidItem     Kind = "InvalidItem"
)

var (
	ErrInvalidMetadata = errors.New("invalid site metadata")
	ErrInvalidGroup    = errors.New("invalid sidebar group")
	ErrInvalidItem     = errors.New("invalid sidebar item")
)

const (
	RuleTitleRequired       = "title-required"
	RuleSocialLabelRequired = "social-label-required"
	RuleSocialHrefAbsolute  = "social-href-absolute"
	RuleSocialIconKnown     = "social-icon-known"
	RuleGroupLabelRequired  = "group-label-required"
	RuleGroupLabelUnique    = "group-label-unique"
	RuleGroupItemsNonEmpty  = "group-items-nonempty"
	RuleItemLabelRequired   = "item-label-required"
	RuleItemLabelUnique     = "item-label-unique"
	RuleItemSlugSyntax      = "item-slug-syntax"
	RuleItemSlugResolves    = "item-slug-resolves"
)

// Violation is one configuration error located by its input path.
type Violation struct {
	Kind    Kind   `json:"kind" yaml:"kind"`
	Rule    string `json:"rule" yaml:"rule"`
	Path    string `json:"path" yaml:"path"`
	Group   string `json:"group,omitempty" yaml:"group,omitempty"`
	Item    string `json:"item,omitempty" yaml:"item,omitempty"`
	Message string `json:"message" yaml:"message"`
}

func (v Violation) Error() string {
	return fmt.Sprintf("[%s] %s (%s): %s", v.Kind, v.Path, v.Rule, v.Message)
}

func (v Violation) Unwrap() error {
	switch v.Kind {
	case KindInvalidMetadata:
		return ErrInvalidMetadata
	case KindInvalidGroup:
		return ErrInvalidGroup
	case KindInvalidItem:
		return ErrInvalidItem
	default:
		return nil
	}
}

// BuildError carries every violation found in one build.
type BuildError struct {
	Violations []Violation
}

func (e *BuildError) Error() string {
	if e == nil || len(e.Violations) == 0 {
		return "site configuration invalid"
	}
	return fmt.Sprintf("site configuration invalid (%d error(s)):\n%s", len(e.Violations), FormatViolations(e.Violations))
}

func (e *BuildError) Unwrap() []error {
	if e == nil {
		return nil
	}
	out := make([]error, 0, len(e.Violations))
	for _, v := range e.Violations {
		out = append(out, v)
	}
	return out
}

// ByKind returns the violations of the given kind in report order.
func (e *BuildError) ByKind(kind Kind) []Violation {
	if e == nil {
		return nil
	}
	var out []Violation
	for _, v := range e.Violations {
		if v.Kind == kind {
			out = append(out, v)
		}
	}
	return out
}

// Violations extracts the violations carried by err, if any.
func Violations(err error) []Violation {
	var buildErr *BuildError
	if errors.As(err, &buildErr) {
		return buildErr.Violations
	}
	return nil
}

func FormatViolations(violations []Violation) string {
	if len(violations) == 0 {
		return ""
	}
	lines := make([]string, 0, len(violations))
	for _, v := range violations {
		lines = append(lines, v.Error())
	}
	return strings.Join(lines, "\n")
}

func metadataViolation(rule, path, message string) Violation {
	return Violation{Kind: KindInvalidMetadata, Rule: rule, Path: path, Message: message}
}

func groupViolation(rule, path, group, message string) Violation {
	return Violation{Kind: KindInvalidGroup, Rule: rule, Path: path, Group: group, Message: message}
}

func itemViolation(rule, path, group, item, message string) Violation {
	return Violation{Kind: KindInvalidItem, Rule: rule, Path: path, Group: group, Item: item, Message: message}
}
