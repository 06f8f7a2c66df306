package diff

import (
	"strconv"

	"github.com/bigbrotr/sitenav/pkg/model"
	"github.com/bigbrotr/sitenav/pkg/navconfig"
)

// Compute lists the changes that turn before into after. Groups are matched
// by label, items by label within their group. An element counts as moved when
// it falls outside the longest common ordering of the elements both trees
// share, so an insertion does not mark everything after it as moved. An
// item removed from one group and added with the same slug to another is
// reported as a single move.
func Compute(before, after model.NavTree) Result {
	oldGroups := indexGroups(before)
	newGroups := indexGroups(after)

	var out Result
	var added, removed []Change

	movedGroups := movedKeys(groupLabels(before), groupLabels(after), oldGroups)
	for newPos, group := range after {
		label := navconfig.LabelKey(group.Label)
		oldPos, ok := oldGroups[label]
		if !ok {
			out.add(Change{Scope: ScopeGroup, ChangeType: ChangeAdded, Group: group.Label})
			for _, item := range group.Items {
				added = append(added, Change{Scope: ScopeItem, ChangeType: ChangeAdded, Group: group.Label, Item: item.Label, New: item.Slug})
			}
			continue
		}
		prev := before[oldPos]

		groupChanged := false
		if _, moved := movedGroups[label]; moved {
			out.add(Change{Scope: ScopeGroup, ChangeType: ChangeMoved, Group: group.Label, OldPosition: oldPos + 1, NewPosition: newPos + 1})
			groupChanged = true
		}
		if prev.Collapsed != group.Collapsed {
			out.add(Change{
				Scope:      ScopeGroup,
				ChangeType: ChangeModified,
				Group:      group.Label,
				Field:      "collapsed",
				Old:        strconv.FormatBool(prev.Collapsed),
				New:        strconv.FormatBool(group.Collapsed),
			})
			groupChanged = true
		}
		if !groupChanged {
			out.Summary.Unchanged++
		}

		a, r := out.compareItems(group.Label, prev.Items, group.Items)
		added = append(added, a...)
		removed = append(removed, r...)
	}

	for _, group := range before {
		if _, ok := newGroups[navconfig.LabelKey(group.Label)]; ok {
			continue
		}
		for _, item := range group.Items {
			removed = append(removed, Change{Scope: ScopeItem, ChangeType: ChangeRemoved, Group: group.Label, Item: item.Label, Old: item.Slug})
		}
	}

	for _, change := range pairCrossGroupMoves(added, removed) {
		out.add(change)
	}
	for _, change := range removedGroups(before, newGroups) {
		out.add(change)
	}

	if out.Changes == nil {
		out.Changes = []Change{}
	}
	return out
}

func (r *Result) add(change Change) {
	r.Changes = append(r.Changes, change)
	r.Summary.count(change.ChangeType)
}

// compareItems records moves and slug changes for items present in both
// versions of a group and returns the additions and removals, which are
// resolved once every group has been seen.
func (r *Result) compareItems(group string, before, after []model.NavItem) (added, removed []Change) {
	oldItems := indexItems(before)
	newItems := indexItems(after)
	moved := movedKeys(itemLabels(before), itemLabels(after), oldItems)

	for newPos, item := range after {
		label := navconfig.LabelKey(item.Label)
		oldPos, ok := oldItems[label]
		if !ok {
			added = append(added, Change{Scope: ScopeItem, ChangeType: ChangeAdded, Group: group, Item: item.Label, New: item.Slug})
			continue
		}
		prev := before[oldPos]
		changed := false
		if _, ok := moved[label]; ok {
			r.add(Change{Scope: ScopeItem, ChangeType: ChangeMoved, Group: group, Item: item.Label, OldPosition: oldPos + 1, NewPosition: newPos + 1})
			changed = true
		}
		if prev.Slug != item.Slug {
			r.add(Change{Scope: ScopeItem, ChangeType: ChangeModified, Group: group, Item: item.Label, Field: "slug", Old: prev.Slug, New: item.Slug})
			changed = true
		}
		if !changed {
			r.Summary.Unchanged++
		}
	}
	for _, item := range before {
		if _, ok := newItems[navconfig.LabelKey(item.Label)]; !ok {
			removed = append(removed, Change{Scope: ScopeItem, ChangeType: ChangeRemoved, Group: group, Item: item.Label, Old: item.Slug})
		}
	}
	return added, removed
}

// pairCrossGroupMoves folds a removal and an addition of the same label and
// slug in different groups into one move. Unpaired changes keep their order:
// additions first, then removals.
func pairCrossGroupMoves(added, removed []Change) []Change {
	used := make([]bool, len(removed))
	out := make([]Change, 0, len(added)+len(removed))
	for _, add := range added {
		paired := false
		for i, rem := range removed {
			if used[i] || rem.Group == add.Group || navconfig.LabelKey(rem.Item) != navconfig.LabelKey(add.Item) || rem.Old != add.New {
				continue
			}
			used[i] = true
			paired = true
			out = append(out, Change{Scope: ScopeItem, ChangeType: ChangeMoved, Group: add.Group, FromGroup: rem.Group, Item: add.Item, New: add.New})
			break
		}
		if !paired {
			out = append(out, add)
		}
	}
	for i, rem := range removed {
		if !used[i] {
			out = append(out, rem)
		}
	}
	return out
}

func removedGroups(before model.NavTree, newGroups map[string]int) []Change {
	var out []Change
	for _, group := range before {
		if _, ok := newGroups[navconfig.LabelKey(group.Label)]; !ok {
			out = append(out, Change{Scope: ScopeGroup, ChangeType: ChangeRemoved, Group: group.Label})
		}
	}
	return out
}

// movedKeys returns the shared keys that are not part of the longest common
// subsequence of before and after.
func movedKeys(before, after []string, oldIndex map[string]int) map[string]struct{} {
	var oldShared, newShared []string
	newSet := make(map[string]struct{}, len(after))
	for _, k := range after {
		newSet[k] = struct{}{}
		if _, ok := oldIndex[k]; ok {
			newShared = append(newShared, k)
		}
	}
	for _, k := range before {
		if _, ok := newSet[k]; ok {
			oldShared = append(oldShared, k)
		}
	}

	n, m := len(oldShared), len(newShared)
	lcs := make([][]int, n+1)
	for i := range lcs {
		lcs[i] = make([]int, m+1)
	}
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if oldShared[i] == newShared[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else {
				lcs[i][j] = max(lcs[i+1][j], lcs[i][j+1])
			}
		}
	}

	stable := make(map[string]struct{}, lcs[0][0])
	for i, j := 0, 0; i < n && j < m; {
		switch {
		case oldShared[i] == newShared[j]:
			stable[oldShared[i]] = struct{}{}
			i++
			j++
		case lcs[i+1][j] >= lcs[i][j+1]:
			i++
		default:
			j++
		}
	}

	moved := make(map[string]struct{})
	for _, k := range newShared {
		if _, ok := stable[k]; !ok {
			moved[k] = struct{}{}
		}
	}
	return moved
}

func indexGroups(tree model.NavTree) map[string]int {
	out := make(map[string]int, len(tree))
	for i, group := range tree {
		if _, ok := out[navconfig.LabelKey(group.Label)]; !ok {
			out[navconfig.LabelKey(group.Label)] = i
		}
	}
	return out
}

func indexItems(items []model.NavItem) map[string]int {
	out := make(map[string]int, len(items))
	for i, item := range items {
		if _, ok := out[navconfig.LabelKey(item.Label)]; !ok {
			out[navconfig.LabelKey(item.Label)] = i
		}
	}
	return out
}

func groupLabels(tree model.NavTree) []string {
	out := make([]string, 0, len(tree))
	for _, group := range tree {
		out = append(out, navconfig.LabelKey(group.Label))
	}
	return out
}

func itemLabels(items []model.NavItem) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, navconfig.LabelKey(item.Label))
	}
	return out
}
