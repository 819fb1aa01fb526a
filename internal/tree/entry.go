package tree

import "github.com/alexanderramin/opsmap/internal/domain"

// Entry is one row of render data handed to the presentation layer.
type Entry struct {
	Path   domain.Path
	ID     string // encoded path
	Label  string
	Depth  int // 0 for top-level departments
	IsTask bool
	IsLast bool // last child of its parent
	Record domain.TaskRecord
}

// Entries flattens the tree into render rows in Walk order.
func (s *Store) Entries() []Entry {
	var out []Entry
	for p, n := range s.Walk() {
		e := Entry{
			Path:   p,
			ID:     domain.EncodePath(p),
			Label:  n.name,
			Depth:  len(p) - 1,
			IsTask: n.IsTask(),
		}
		if n.IsTask() {
			e.Record = n.task
		}
		if parent, ok := s.Get(p.Parent()); ok {
			e.IsLast = parent.children[len(parent.children)-1] == n
		}
		out = append(out, e)
	}
	return out
}
