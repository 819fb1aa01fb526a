package graph

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/alexanderramin/opsmap/internal/domain"
	"github.com/alexanderramin/opsmap/internal/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample(t *testing.T) *tree.Store {
	t.Helper()
	s := tree.NewStore()
	require.NoError(t, s.AddBranch(nil, "Sales"))
	require.NoError(t, s.AddTask(domain.Path{"Sales"}, "Invoicing", domain.DefaultTaskRecord()))
	require.NoError(t, s.AddBranch(nil, "Support"))
	return s
}

func TestProject_NodesAndEdges(t *testing.T) {
	g := Project(sample(t))

	require.Len(t, g.Nodes, 3)
	assert.Equal(t, Node{ID: "Sales", Label: "◇Sales", Shape: ShapeDiamond, Size: 30, Depth: 0}, g.Nodes[0])
	assert.Equal(t, Node{ID: "Sales/Invoicing", Label: "○Invoicing", Shape: ShapeCircle, Size: 30, Depth: 1, IsTask: true}, g.Nodes[1])
	assert.Equal(t, "Support", g.Nodes[2].ID)

	assert.Equal(t, []Edge{{Source: "Sales", Target: "Sales/Invoicing"}}, g.Edges)
}

func TestProject_EmptyTree(t *testing.T) {
	g := Project(tree.NewStore())
	assert.Empty(t, g.Nodes)
	assert.Empty(t, g.Edges)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, g))
	assert.JSONEq(t, `{"nodes":[],"edges":[]}`, buf.String())
}

func TestProject_ClickedIDResolvesToNode(t *testing.T) {
	s := sample(t)
	g := Project(s)
	for _, n := range g.Nodes {
		_, ok := s.Get(domain.DecodePath(n.ID))
		assert.True(t, ok, "graph id %q should resolve", n.ID)
	}

	stale, ok := g.Node("Gone")
	assert.False(t, ok)
	assert.Empty(t, stale.ID)
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, Project(sample(t))))

	var decoded Graph
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Len(t, decoded.Nodes, 3)
	assert.Contains(t, buf.String(), `"label": "◇Sales"`)
}

func TestWriteDOT(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDOT(&buf, Project(sample(t)), DefaultOptions()))
	out := buf.String()

	assert.Contains(t, out, "digraph opsmap {")
	assert.Contains(t, out, "rankdir=TB;")
	assert.Contains(t, out, `"Sales" [label="◇Sales", shape=diamond];`)
	assert.Contains(t, out, `"Sales" -> "Sales/Invoicing";`)
}

func TestWriteDOT_Undirected(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDOT(&buf, Project(sample(t)), Options{}))
	assert.Contains(t, buf.String(), "graph opsmap {")
	assert.Contains(t, buf.String(), `"Sales" -- "Sales/Invoicing";`)
	assert.NotContains(t, buf.String(), "rankdir")
}
