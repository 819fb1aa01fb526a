// Package tree holds the path-addressed organization tree.
//
// A Node is either a branch (a department holding uniquely named children
// in insertion order) or a task (a leaf carrying a domain.TaskRecord).
// The two kinds are exclusive: a task never has children and a branch
// never carries a record.
package tree

import "github.com/alexanderramin/opsmap/internal/domain"

type Node struct {
	name     string
	kind     domain.NodeKind
	task     domain.TaskRecord
	children []*Node
}

// Branch returns a new empty department node.
func Branch(name string) *Node {
	return &Node{name: name, kind: domain.NodeBranch}
}

// Task returns a new task node carrying rec.
func Task(name string, rec domain.TaskRecord) *Node {
	return &Node{name: name, kind: domain.NodeTask, task: rec}
}

func (n *Node) Name() string          { return n.name }
func (n *Node) Kind() domain.NodeKind { return n.kind }
func (n *Node) IsTask() bool          { return n.kind == domain.NodeTask }

// Record returns the task record; ok is false for branches.
func (n *Node) Record() (domain.TaskRecord, bool) {
	if !n.IsTask() {
		return domain.TaskRecord{}, false
	}
	return n.task, true
}

// Children returns the child nodes in insertion order. The slice is a copy;
// the nodes are not.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// Len returns the number of direct children.
func (n *Node) Len() int { return len(n.children) }

// Child looks up a direct child by name.
func (n *Node) Child(name string) (*Node, bool) {
	i := n.indexOf(name)
	if i < 0 {
		return nil, false
	}
	return n.children[i], true
}

// AddBranch appends (or finds) a branch child and returns it. It is meant
// for building trees in code and tests; it panics on invalid input.
func (n *Node) AddBranch(name string) *Node {
	if err := n.attach(Branch(name), false); err != nil {
		if existing, ok := n.Child(name); ok && !existing.IsTask() {
			return existing
		}
		panic(err)
	}
	c, _ := n.Child(name)
	return c
}

// AddTask appends a task child and returns n for chaining. It panics on
// invalid input.
func (n *Node) AddTask(name string, rec domain.TaskRecord) *Node {
	if err := n.attach(Task(name, rec), false); err != nil {
		panic(err)
	}
	return n
}

func (n *Node) indexOf(name string) int {
	for i, c := range n.children {
		if c.name == name {
			return i
		}
	}
	return -1
}

func (n *Node) attach(child *Node, overwrite bool) error {
	if n.IsTask() {
		return ErrNotBranch
	}
	if err := domain.ValidateName(child.name); err != nil {
		return err
	}
	if i := n.indexOf(child.name); i >= 0 {
		if !overwrite {
			return ErrAlreadyExists
		}
		n.children[i] = child
		return nil
	}
	n.children = append(n.children, child)
	return nil
}

func (n *Node) detach(name string) bool {
	i := n.indexOf(name)
	if i < 0 {
		return false
	}
	n.children = append(n.children[:i], n.children[i+1:]...)
	return true
}

func (n *Node) clone() *Node {
	c := &Node{name: n.name, kind: n.kind, task: n.task}
	if len(n.children) > 0 {
		c.children = make([]*Node, len(n.children))
		for i, ch := range n.children {
			c.children[i] = ch.clone()
		}
	}
	return c
}

func (n *Node) equal(o *Node) bool {
	if n.name != o.name || n.kind != o.kind || n.task != o.task || len(n.children) != len(o.children) {
		return false
	}
	for i := range n.children {
		if !n.children[i].equal(o.children[i]) {
			return false
		}
	}
	return true
}
