package diff

import (
	"reflect"
	"testing"

	"github.com/bigbrotr/sitenav/pkg/model"
)

func items(pairs ...string) []model.NavItem {
	out := make([]model.NavItem, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, model.NavItem{Label: pairs[i], Slug: pairs[i+1]})
	}
	return out
}

func bigbrotrTree() model.NavTree {
	return model.NavTree{
		{Label: "Overview", Items: items("Home", "index", "Architecture", "overview/architecture")},
		{Label: "API", Items: items("Relay", "api/relay", "Client", "api/client")},
		{Label: "Legacy", Items: items("Old", "legacy/old")},
	}
}

func TestComputeIdenticalTrees(t *testing.T) {
	tree := bigbrotrTree()
	out := Compute(tree, tree.Clone())
	if out.HasChanges() {
		t.Fatalf("expected no changes, got %#v", out.Changes)
	}
	if out.Summary.Unchanged != 3+5 {
		t.Fatalf("expected 8 unchanged entries, got %d", out.Summary.Unchanged)
	}
	if out.Changes == nil {
		t.Fatalf("expected empty, non-nil changes")
	}
}

func TestComputeMixedChanges(t *testing.T) {
	after := model.NavTree{
		{Label: "Overview", Items: items("Architecture", "overview/architecture", "Home", "index")},
		{Label: "API", Collapsed: true, Items: items("Relay", "api/relay-v2")},
		{Label: "Guides", Items: items("Client", "api/client", "Intro", "guides/intro")},
	}

	out := Compute(bigbrotrTree(), after)
	want := []Change{
		{Scope: ScopeItem, ChangeType: ChangeMoved, Group: "Overview", Item: "Home", OldPosition: 1, NewPosition: 2},
		{Scope: ScopeGroup, ChangeType: ChangeModified, Group: "API", Field: "collapsed", Old: "false", New: "true"},
		{Scope: ScopeItem, ChangeType: ChangeModified, Group: "API", Item: "Relay", Field: "slug", Old: "api/relay", New: "api/relay-v2"},
		{Scope: ScopeGroup, ChangeType: ChangeAdded, Group: "Guides"},
		{Scope: ScopeItem, ChangeType: ChangeMoved, Group: "Guides", FromGroup: "API", Item: "Client", New: "api/client"},
		{Scope: ScopeItem, ChangeType: ChangeAdded, Group: "Guides", Item: "Intro", New: "guides/intro"},
		{Scope: ScopeItem, ChangeType: ChangeRemoved, Group: "Legacy", Item: "Old", Old: "legacy/old"},
		{Scope: ScopeGroup, ChangeType: ChangeRemoved, Group: "Legacy"},
	}
	if !reflect.DeepEqual(out.Changes, want) {
		t.Fatalf("unexpected changes:\n got %#v\nwant %#v", out.Changes, want)
	}
	wantSummary := Summary{Added: 2, Modified: 2, Removed: 2, Moved: 2, Unchanged: 2}
	if out.Summary != wantSummary {
		t.Fatalf("summary = %#v, want %#v", out.Summary, wantSummary)
	}
}

func TestComputeInsertionDoesNotMoveFollowers(t *testing.T) {
	before := model.NavTree{
		{Label: "A", Items: items("One", "a/one", "Two", "a/two", "Three", "a/three")},
		{Label: "B", Items: items("Four", "b/four")},
	}
	after := model.NavTree{
		{Label: "New", Items: items("Zero", "new/zero")},
		{Label: "A", Items: items("Pre", "a/pre", "One", "a/one", "Two", "a/two", "Three", "a/three")},
		{Label: "B", Items: items("Four", "b/four")},
	}

	out := Compute(before, after)
	if out.Summary.Moved != 0 {
		t.Fatalf("expected no moves, got %#v", out.Changes)
	}
	if out.Summary.Added != 3 || out.Summary.Removed != 0 {
		t.Fatalf("unexpected summary %#v", out.Summary)
	}
}

func TestComputeGroupReorder(t *testing.T) {
	before := bigbrotrTree()
	after := model.NavTree{before[2], before[0], before[1]}

	out := Compute(before, after)
	if out.Summary.Moved != 1 {
		t.Fatalf("expected one group move, got %#v", out.Changes)
	}
	got := out.Changes[0]
	if got.Scope != ScopeGroup || got.Group != "Legacy" || got.OldPosition != 3 || got.NewPosition != 1 {
		t.Fatalf("unexpected move %#v", got)
	}
}

func TestComputeEmptyStates(t *testing.T) {
	out := Compute(nil, nil)
	if out.HasChanges() || len(out.Changes) != 0 {
		t.Fatalf("expected no changes, got %#v", out)
	}

	out = Compute(nil, bigbrotrTree())
	if out.Summary.Added != 3+5 || out.Summary.Removed != 0 {
		t.Fatalf("unexpected summary for additions: %#v", out.Summary)
	}

	out = Compute(bigbrotrTree(), nil)
	if out.Summary.Removed != 3+5 || out.Summary.Added != 0 {
		t.Fatalf("unexpected summary for removals: %#v", out.Summary)
	}
}

func TestComputeMatchesNormalizedLabels(t *testing.T) {
	before := model.NavTree{{Label: "Caf\u00e9", Items: items("R\u00e9sum\u00e9", "cafe/resume")}}
	after := model.NavTree{{Label: "Cafe\u0301", Items: items("Re\u0301sume\u0301", "cafe/resume")}}

	out := Compute(before, after)
	if out.HasChanges() {
		t.Fatalf("expected NFC-equal labels to match, got %#v", out.Changes)
	}
	if out.Summary.Unchanged != 2 {
		t.Fatalf("expected 2 unchanged entries, got %d", out.Summary.Unchanged)
	}
}
