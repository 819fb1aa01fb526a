// Package treefile reads and writes the nested-mapping JSON file format:
// an object per department whose keys are child names, and an object per
// task carrying the five task attributes. Key order is child order.
package treefile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/alexanderramin/opsmap/internal/tree"
)

const indentUnit = "  "

// Export writes s as pretty-printed JSON, children in insertion order.
func Export(w io.Writer, s *tree.Store) error {
	var buf bytes.Buffer
	if err := writeNode(&buf, s.Root(), 0); err != nil {
		return err
	}
	buf.WriteByte('\n')
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("writing tree file: %w", err)
	}
	return nil
}

func writeNode(buf *bytes.Buffer, n *tree.Node, depth int) error {
	if rec, ok := n.Record(); ok {
		attrs := rec.Attrs()
		buf.WriteString("{\n")
		for i, a := range attrs {
			if err := writeKey(buf, a.Key, depth+1); err != nil {
				return err
			}
			if err := writeScalar(buf, a.Value); err != nil {
				return err
			}
			writeSep(buf, i, len(attrs))
		}
		buf.WriteString(strings.Repeat(indentUnit, depth) + "}")
		return nil
	}

	children := n.Children()
	if len(children) == 0 {
		buf.WriteString("{}")
		return nil
	}
	buf.WriteString("{\n")
	for i, c := range children {
		if err := writeKey(buf, c.Name(), depth+1); err != nil {
			return err
		}
		if err := writeNode(buf, c, depth+1); err != nil {
			return err
		}
		writeSep(buf, i, len(children))
	}
	buf.WriteString(strings.Repeat(indentUnit, depth) + "}")
	return nil
}

func writeKey(buf *bytes.Buffer, key string, depth int) error {
	buf.WriteString(strings.Repeat(indentUnit, depth))
	if err := writeScalar(buf, key); err != nil {
		return err
	}
	buf.WriteString(": ")
	return nil
}

func writeSep(buf *bytes.Buffer, i, n int) {
	if i < n-1 {
		buf.WriteByte(',')
	}
	buf.WriteByte('\n')
}

// writeScalar encodes v without HTML escaping or a trailing newline.
func writeScalar(buf *bytes.Buffer, v any) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding %v: %w", v, err)
	}
	buf.Write(bytes.TrimRight(tmp.Bytes(), "\n"))
	return nil
}
