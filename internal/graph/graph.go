// Package graph projects an organization tree onto a node/edge list for
// mind-map style rendering.
package graph

import (
	"github.com/alexanderramin/opsmap/internal/domain"
	"github.com/alexanderramin/opsmap/internal/tree"
)

type Shape string

const (
	ShapeDiamond Shape = "diamond" // top-level departments
	ShapeCircle  Shape = "circle"
)

// Node is one vertex. ID is the encoded path of the tree node.
type Node struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Shape  Shape  `json:"shape"`
	Size   int    `json:"size"`
	Depth  int    `json:"depth"`
	IsTask bool   `json:"is_task"`
}

// Edge points from a parent to a child.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

const defaultNodeSize = 30

// Project flattens s into nodes (tree pre-order) and parent->child edges.
func Project(s *tree.Store) Graph {
	g := Graph{Nodes: []Node{}, Edges: []Edge{}}
	for _, e := range s.Entries() {
		shape, mark := ShapeCircle, "○"
		if e.Depth == 0 {
			shape, mark = ShapeDiamond, "◇"
		}
		g.Nodes = append(g.Nodes, Node{
			ID:     e.ID,
			Label:  mark + e.Label,
			Shape:  shape,
			Size:   defaultNodeSize,
			Depth:  e.Depth,
			IsTask: e.IsTask,
		})
		if e.Depth > 0 {
			g.Edges = append(g.Edges, Edge{
				Source: domain.EncodePath(e.Path.Parent()),
				Target: e.ID,
			})
		}
	}
	return g
}

// Node looks up a vertex by id, as a click handler would.
func (g Graph) Node(id string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}
