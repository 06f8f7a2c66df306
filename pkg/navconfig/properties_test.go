package navconfig

import (
	"errors"
	"reflect"
	"testing"

	"github.com/bigbrotr/sitenav/pkg/model"
	"pgregory.net/rapid"
)

var (
	labelGen = rapid.StringMatching(`[A-Z][a-z]{0,6}( [A-Z][a-z]{0,6})?`)
	slugGen  = rapid.StringMatching(`[a-z][a-z0-9-]{0,7}(/[a-z0-9][a-z0-9-]{0,7})?`)
)

func validInputGen() *rapid.Generator[model.Input] {
	return rapid.Custom(func(t *rapid.T) model.Input {
		groupLabels := rapid.SliceOfNDistinct(labelGen, 1, 6, rapid.ID[string]).Draw(t, "groupLabels")
		groups := make([]model.GroupInput, 0, len(groupLabels))
		for _, label := range groupLabels {
			itemLabels := rapid.SliceOfNDistinct(labelGen, 1, 5, rapid.ID[string]).Draw(t, "itemLabels")
			items := make([]model.ItemInput, 0, len(itemLabels))
			for _, itemLabel := range itemLabels {
				items = append(items, model.ItemInput{Label: itemLabel, Slug: slugGen.Draw(t, "slug")})
			}
			groups = append(groups, model.GroupInput{
				Label:     label,
				Collapsed: rapid.Bool().Draw(t, "collapsed"),
				Items:     items,
			})
		}
		return model.Input{
			Title:   labelGen.Draw(t, "title"),
			Social:  []model.SocialLinkInput{{Icon: "github", Label: "GitHub", Href: "https://github.com/x"}},
			Sidebar: groups,
		}
	})
}

func TestPropertyBuildIsIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		in := validInputGen().Draw(t, "input")
		b := New(AnySlug)

		first, err := b.Build(in)
		if err != nil {
			t.Fatalf("first Build() error = %v", err)
		}
		second, err := b.Build(in)
		if err != nil {
			t.Fatalf("second Build() error = %v", err)
		}
		if !reflect.DeepEqual(first, second) {
			t.Fatalf("build not idempotent:\n%#v\n%#v", first, second)
		}
	})
}

func TestPropertyOrderIsPreserved(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		in := validInputGen().Draw(t, "input")

		cfg, err := Build(in, AnySlug)
		if err != nil {
			t.Fatalf("Build() error = %v", err)
		}
		if len(cfg.Nav) != len(in.Sidebar) {
			t.Fatalf("group count changed: %d != %d", len(cfg.Nav), len(in.Sidebar))
		}
		for i, group := range in.Sidebar {
			if cfg.Nav[i].Label != group.Label || cfg.Nav[i].Collapsed != group.Collapsed {
				t.Fatalf("group %d mismatch: %#v vs %#v", i, cfg.Nav[i], group)
			}
			if len(cfg.Nav[i].Items) != len(group.Items) {
				t.Fatalf("group %d item count changed", i)
			}
			for j, item := range group.Items {
				if cfg.Nav[i].Items[j] != (model.NavItem{Label: item.Label, Slug: item.Slug}) {
					t.Fatalf("item %d.%d mismatch: %#v vs %#v", i, j, cfg.Nav[i].Items[j], item)
				}
			}
		}
	})
}

func TestPropertyUnresolvedSlugAlwaysInvalidItem(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		in := validInputGen().Draw(t, "input")
		gi := rapid.IntRange(0, len(in.Sidebar)-1).Draw(t, "group")
		ii := rapid.IntRange(0, len(in.Sidebar[gi].Items)-1).Draw(t, "item")
		in.Sidebar[gi].Items[ii].Slug = "missing/document"

		resolver := SlugResolverFunc(func(slug string) bool { return slug != "missing/document" })
		_, err := Build(in, resolver)
		if !errors.Is(err, ErrInvalidItem) {
			t.Fatalf("expected ErrInvalidItem, got %v", err)
		}
		found := false
		for _, v := range Violations(err) {
			if v.Rule == RuleItemSlugResolves && v.Item == in.Sidebar[gi].Items[ii].Label && v.Group == in.Sidebar[gi].Label {
				found = true
			}
		}
		if !found {
			t.Fatalf("no violation names item %q in group %q: %v", in.Sidebar[gi].Items[ii].Label, in.Sidebar[gi].Label, err)
		}
	})
}

func TestPropertyDuplicateGroupAlwaysInvalidGroup(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		in := validInputGen().Draw(t, "input")
		src := rapid.IntRange(0, len(in.Sidebar)-1).Draw(t, "source")
		dup := in.Sidebar[src]
		in.Sidebar = append(in.Sidebar, model.GroupInput{Label: dup.Label, Items: dup.Items})

		_, err := Build(in, AnySlug)
		if !errors.Is(err, ErrInvalidGroup) {
			t.Fatalf("expected ErrInvalidGroup, got %v", err)
		}
		v := Violations(err)
		if len(v) != 1 || v[0].Rule != RuleGroupLabelUnique || v[0].Group != dup.Label {
			t.Fatalf("unexpected violations: %#v", v)
		}
	})
}

func TestPropertyEmptyGroupAlwaysInvalidGroup(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		in := validInputGen().Draw(t, "input")
		target := rapid.IntRange(0, len(in.Sidebar)-1).Draw(t, "group")
		in.Sidebar[target].Items = nil

		_, err := Build(in, AnySlug)
		found := false
		for _, v := range Violations(err) {
			if v.Kind == KindInvalidGroup && v.Rule == RuleGroupItemsNonEmpty && v.Group == in.Sidebar[target].Label {
				found = true
			}
		}
		if !found {
			t.Fatalf("expected empty group violation, got %v", err)
		}
	})
}
