package model

// Input is the declarative site configuration as authored.
type Input struct {
	Title       string            `yaml:"title" json:"title"`
	Description string            `yaml:"description,omitempty" json:"description,omitempty"`
	Social      []SocialLinkInput `yaml:"social,omitempty" json:"social,omitempty"`
	Sidebar     []GroupInput      `yaml:"sidebar" json:"sidebar"`
}

type SocialLinkInput struct {
	Icon  string `yaml:"icon" json:"icon" validate:"required,socialicon"`
	Label string `yaml:"label" json:"label" validate:"required"`
	Href  string `yaml:"href" json:"href" validate:"required,url"`
}

type GroupInput struct {
	Label     string      `yaml:"label" json:"label"`
	Collapsed bool        `yaml:"collapsed,omitempty" json:"collapsed,omitempty"`
	Items     []ItemInput `yaml:"items" json:"items"`
}

type ItemInput struct {
	Label string `yaml:"label" json:"label"`
	Slug  string `yaml:"slug" json:"slug"`
}

// SiteMetadata is the validated site identity.
type SiteMetadata struct {
	Title       string       `yaml:"title" json:"title"`
	Description string       `yaml:"description,omitempty" json:"description,omitempty"`
	Social      []SocialLink `yaml:"social" json:"social"`
}

type SocialLink struct {
	Icon  string `yaml:"icon" json:"icon"`
	Label string `yaml:"label" json:"label"`
	Href  string `yaml:"href" json:"href"`
}

// NavTree is the ordered list of sidebar groups. Order is rendering order.
type NavTree []NavGroup

type NavGroup struct {
	Label     string    `yaml:"label" json:"label"`
	Collapsed bool      `yaml:"collapsed,omitempty" json:"collapsed,omitempty"`
	Items     []NavItem `yaml:"items" json:"items"`
}

type NavItem struct {
	Label string `yaml:"label" json:"label"`
	Slug  string `yaml:"slug" json:"slug"`
}

// SiteConfig is the validated output handed to the rendering framework.
// It is read-only once built; use Clone before modifying a copy.
type SiteConfig struct {
	Metadata SiteMetadata `yaml:"metadata" json:"metadata"`
	Nav      NavTree      `yaml:"nav" json:"nav"`
}

// ItemCount returns the number of items across all groups.
func (t NavTree) ItemCount() int {
	n := 0
	for _, g := range t {
		n += len(g.Items)
	}
	return n
}

// Slugs returns every referenced slug in sidebar order, duplicates included.
func (t NavTree) Slugs() []string {
	out := make([]string, 0, t.ItemCount())
	for _, g := range t {
		for _, item := range g.Items {
			out = append(out, item.Slug)
		}
	}
	return out
}

func (t NavTree) Clone() NavTree {
	if t == nil {
		return nil
	}
	out := make(NavTree, len(t))
	for i, g := range t {
		out[i] = NavGroup{
			Label:     g.Label,
			Collapsed: g.Collapsed,
			Items:     append([]NavItem(nil), g.Items...),
		}
	}
	return out
}

func (m SiteMetadata) Clone() SiteMetadata {
	m.Social = append([]SocialLink{}, m.Social...)
	return m
}

func (c SiteConfig) Clone() SiteConfig {
	return SiteConfig{
		Metadata: c.Metadata.Clone(),
		Nav:      c.Nav.Clone(),
	}
}
