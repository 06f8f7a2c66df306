package diff

type ChangeType string

const (
	ChangeAdded    ChangeType = "added"
	ChangeModified ChangeType = "modified"
	ChangeRemoved  ChangeType = "removed"
	ChangeMoved    ChangeType = "moved"
)

type Scope string

const (
	ScopeGroup Scope = "group"
	ScopeItem  Scope = "item"
)

// Change is one difference between two sidebars. Positions are 1-based
// and only set for moves.
type Change struct {
	Scope       Scope      `json:"scope" yaml:"scope"`
	ChangeType  ChangeType `json:"changeType" yaml:"changeType"`
	Group       string     `json:"group" yaml:"group"`
	FromGroup   string     `json:"fromGroup,omitempty" yaml:"fromGroup,omitempty"`
	Item        string     `json:"item,omitempty" yaml:"item,omitempty"`
	Field       string     `json:"field,omitempty" yaml:"field,omitempty"`
	Old         string     `json:"old,omitempty" yaml:"old,omitempty"`
	New         string     `json:"new,omitempty" yaml:"new,omitempty"`
	OldPosition int        `json:"oldPosition,omitempty" yaml:"oldPosition,omitempty"`
	NewPosition int        `json:"newPosition,omitempty" yaml:"newPosition,omitempty"`
}

type Summary struct {
	Added     int `json:"added" yaml:"added"`
	Modified  int `json:"modified" yaml:"modified"`
	Removed   int `json:"removed" yaml:"removed"`
	Moved     int `json:"moved" yaml:"moved"`
	Unchanged int `json:"unchanged" yaml:"unchanged"`
}

type Result struct {
	Changes []Change `json:"changes" yaml:"changes"`
	Summary Summary  `json:"summary" yaml:"summary"`
}

func (r Result) HasChanges() bool {
	return r.Summary.Added+r.Summary.Modified+r.Summary.Removed+r.Summary.Moved > 0
}

func (s *Summary) count(t ChangeType) {
	switch t {
	case ChangeAdded:
		s.Added++
	case ChangeModified:
		s.Modified++
	case ChangeRemoved:
		s.Removed++
	case ChangeMoved:
		s.Moved++
	}
}
