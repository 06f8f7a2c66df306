package contentindex

import (
	"sort"

	"github.com/bigbrotr/sitenav/internal/names"
	"github.com/bigbrotr/sitenav/pkg/model"
	"github.com/bigbrotr/sitenav/pkg/navconfig"
)

// Index answers slug lookups over a fixed document set. Drafts are hidden
// unless the index was built with drafts included.
type Index struct {
	docs          []Document
	bySlug        map[string]int
	includeDrafts bool
}

var _ navconfig.SlugResolver = (*Index)(nil)

func NewIndex(docs []Document, includeDrafts bool) *Index {
	idx := &Index{
		docs:          append([]Document(nil), docs...),
		bySlug:        make(map[string]int, len(docs)),
		includeDrafts: includeDrafts,
	}
	sort.SliceStable(idx.docs, func(i, j int) bool { return idx.docs[i].Slug < idx.docs[j].Slug })
	for i, doc := range idx.docs {
		idx.bySlug[doc.Slug] = i
	}
	return idx
}

// SlugExists reports whether slug names a visible document.
func (idx *Index) SlugExists(slug string) bool {
	_, ok := idx.Lookup(slug)
	return ok
}

func (idx *Index) Lookup(slug string) (Document, bool) {
	if idx == nil {
		return Document{}, false
	}
	i, ok := idx.bySlug[names.NormalizeSlug(slug)]
	if !ok {
		return Document{}, false
	}
	doc := idx.docs[i]
	if doc.Draft && !idx.includeDrafts {
		return Document{}, false
	}
	return doc, true
}

// Documents returns the visible documents sorted by slug.
func (idx *Index) Documents() []Document {
	if idx == nil {
		return nil
	}
	out := make([]Document, 0, len(idx.docs))
	for _, doc := range idx.docs {
		if doc.Draft && !idx.includeDrafts {
			continue
		}
		out = append(out, doc)
	}
	return out
}

func (idx *Index) Len() int {
	return len(idx.Documents())
}

// Orphans lists visible documents no sidebar item links to.
func Orphans(idx *Index, nav model.NavTree) []Document {
	linked := make(map[string]struct{}, nav.ItemCount())
	for _, slug := range nav.Slugs() {
		linked[slug] = struct{}{}
	}
	var out []Document
	for _, doc := range idx.Documents() {
		if _, ok := linked[doc.Slug]; !ok {
			out = append(out, doc)
		}
	}
	return out
}
