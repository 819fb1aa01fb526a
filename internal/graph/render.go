package graph

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Options mirror the layout switches of the interactive graph view.
type Options struct {
	Directed     bool
	Hierarchical bool
}

// DefaultOptions draws a directed, top-down hierarchy.
func DefaultOptions() Options {
	return Options{Directed: true, Hierarchical: true}
}

// WriteJSON writes g as indented JSON.
func WriteJSON(w io.Writer, g Graph) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(g); err != nil {
		return fmt.Errorf("encoding graph: %w", err)
	}
	return nil
}

// WriteDOT writes g in Graphviz DOT syntax.
func WriteDOT(w io.Writer, g Graph, opts Options) error {
	keyword, arrow := "graph", "--"
	if opts.Directed {
		keyword, arrow = "digraph", "->"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s opsmap {\n", keyword)
	if opts.Hierarchical {
		b.WriteString("  rankdir=TB;\n")
	}
	for _, n := range g.Nodes {
		fmt.Fprintf(&b, "  %s [label=%s, shape=%s];\n", strconv.Quote(n.ID), strconv.Quote(n.Label), n.Shape)
	}
	for _, e := range g.Edges {
		fmt.Fprintf(&b, "  %s %s %s;\n", strconv.Quote(e.Source), arrow, strconv.Quote(e.Target))
	}
	b.WriteString("}\n")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("writing dot: %w", err)
	}
	return nil
}
