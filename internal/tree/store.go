package tree

import (
	"fmt"
	"iter"

	"github.com/alexanderramin/opsmap/internal/domain"
)

// Store owns a root department and provides path-addressed operations.
// Every mutation either succeeds or leaves the tree unchanged.
//
// A Store is not safe for concurrent use. Callers hand one Store to one
// request at a time.
type Store struct {
	root *Node
}

// NewStore returns an empty tree.
func NewStore() *Store {
	return &Store{root: Branch("")}
}

// Seed returns the starter hierarchy new maps are created with.
func Seed() *Store {
	s := NewStore()
	s.root.AddBranch("Headquarters").
		AddTask("Accounting", domain.DefaultTaskRecord()).
		AddTask("Human Resources", domain.DefaultTaskRecord())
	return s
}

// Root returns the root department.
func (s *Store) Root() *Node { return s.root }

// Len returns the number of nodes below the root.
func (s *Store) Len() int {
	n := 0
	for range s.Paths() {
		n++
	}
	return n
}

// IsTaskNode reports whether n carries a task record.
func IsTaskNode(n *Node) bool {
	return n != nil && n.IsTask()
}

// Get walks from the root following path. It reports absence instead of
// failing, so stale ids from the presentation layer degrade gracefully.
func (s *Store) Get(path domain.Path) (*Node, bool) {
	cur := s.root
	for _, seg := range path {
		next, ok := cur.Child(seg)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// AddOption configures AddChild.
type AddOption func(*addOptions)

type addOptions struct {
	overwrite bool
}

// WithOverwrite lets AddChild replace an existing sibling of the same name
// in place.
func WithOverwrite() AddOption {
	return func(o *addOptions) { o.overwrite = true }
}

// AddChild attaches child under the department at parent. The empty parent
// path is the root. The store takes ownership of child.
func (s *Store) AddChild(parent domain.Path, child *Node, opts ...AddOption) error {
	var o addOptions
	for _, opt := range opts {
		opt(&o)
	}
	if child == nil {
		return fmt.Errorf("adding child: %w", ErrInvalidName)
	}
	p, ok := s.Get(parent)
	if !ok {
		return fmt.Errorf("parent %q: %w", parent.String(), ErrNotFound)
	}
	if err := p.attach(child, o.overwrite); err != nil {
		return fmt.Errorf("adding %q under %q: %w", child.name, parent.String(), err)
	}
	return nil
}

// AddBranch adds an empty department under parent.
func (s *Store) AddBranch(parent domain.Path, name string, opts ...AddOption) error {
	return s.AddChild(parent, Branch(name), opts...)
}

// AddTask adds a task node under parent.
func (s *Store) AddTask(parent domain.Path, name string, rec domain.TaskRecord, opts ...AddOption) error {
	return s.AddChild(parent, Task(name, rec), opts...)
}

// DeleteSubtree removes the node at path and everything beneath it.
func (s *Store) DeleteSubtree(path domain.Path) error {
	if path.IsRoot() {
		return ErrRootPath
	}
	parent, ok := s.Get(path.Parent())
	if !ok || !parent.detach(path.Name()) {
		return fmt.Errorf("deleting %q: %w", path.String(), ErrNotFound)
	}
	return nil
}

// Rename changes the name of the node at path, keeping its position among
// its siblings.
func (s *Store) Rename(path domain.Path, newName string) error {
	if path.IsRoot() {
		return ErrRootPath
	}
	if err := domain.ValidateName(newName); err != nil {
		return err
	}
	parent, ok := s.Get(path.Parent())
	if !ok {
		return fmt.Errorf("renaming %q: %w", path.String(), ErrNotFound)
	}
	node, ok := parent.Child(path.Name())
	if !ok {
		return fmt.Errorf("renaming %q: %w", path.String(), ErrNotFound)
	}
	if newName == node.name {
		return nil
	}
	if _, taken := parent.Child(newName); taken {
		return fmt.Errorf("renaming %q to %q: %w", path.String(), newName, ErrAlreadyExists)
	}
	node.name = newName
	return nil
}

// SetTask replaces the whole task record at path. A department without
// children becomes a task the first time a record is saved onto it.
func (s *Store) SetTask(path domain.Path, rec domain.TaskRecord) error {
	if path.IsRoot() {
		return ErrRootPath
	}
	n, ok := s.Get(path)
	if !ok {
		return fmt.Errorf("saving task %q: %w", path.String(), ErrNotFound)
	}
	if !n.IsTask() && len(n.children) > 0 {
		return fmt.Errorf("saving task %q: %w", path.String(), ErrHasChildren)
	}
	n.kind = domain.NodeTask
	n.task = rec
	return nil
}

// Task returns the record of the task node at path.
func (s *Store) Task(path domain.Path) (domain.TaskRecord, error) {
	n, ok := s.Get(path)
	if !ok {
		return domain.TaskRecord{}, fmt.Errorf("task %q: %w", path.String(), ErrNotFound)
	}
	rec, ok := n.Record()
	if !ok {
		return domain.TaskRecord{}, fmt.Errorf("task %q: %w", path.String(), ErrNotTask)
	}
	return rec, nil
}

// Walk yields every node below the root with its path, depth-first
// pre-order, children in insertion order. Each yielded path is a fresh
// slice. The sequence is recomputed per call.
func (s *Store) Walk() iter.Seq2[domain.Path, *Node] {
	return func(yield func(domain.Path, *Node) bool) {
		walk(s.root, domain.Path{}, yield)
	}
}

func walk(n *Node, prefix domain.Path, yield func(domain.Path, *Node) bool) bool {
	for _, c := range n.children {
		p := prefix.Child(c.name)
		if !yield(p, c) {
			return false
		}
		if !walk(c, p, yield) {
			return false
		}
	}
	return true
}

// Paths yields the path of every node, in Walk order.
func (s *Store) Paths() iter.Seq[domain.Path] {
	return func(yield func(domain.Path) bool) {
		for p := range s.Walk() {
			if !yield(p) {
				return
			}
		}
	}
}

// Clone returns a deep copy.
func (s *Store) Clone() *Store {
	return &Store{root: s.root.clone()}
}

// Equal reports whether both trees have the same nodes, order and records.
func (s *Store) Equal(other *Store) bool {
	return s.root.equal(other.root)
}
