package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/opsmap/internal/domain"
	"github.com/alexanderramin/opsmap/internal/tree"
	"github.com/google/uuid"
)

// flattenTree converts s into rows in pre-order so every parent precedes
// its children. OrderIndex records the position among siblings.
func flattenTree(s *tree.Store, mapID string, now time.Time) []*domain.MapNode {
	rows := make([]*domain.MapNode, 0, s.Len())
	ids := map[string]string{}
	nextIndex := map[string]int{}

	for path, n := range s.Walk() {
		row := &domain.MapNode{
			ID:        uuid.New().String(),
			MapID:     mapID,
			Name:      n.Name(),
			Kind:      n.Kind(),
			CreatedAt: now,
		}
		parentKey := ""
		if parent := path.Parent(); !parent.IsRoot() {
			parentKey = ids[domain.EncodePath(parent)]
			row.ParentID = &parentKey
		}
		row.OrderIndex = nextIndex[parentKey]
		nextIndex[parentKey]++
		if rec, ok := n.Record(); ok {
			row.Task = &rec
		}
		ids[domain.EncodePath(path)] = row.ID
		rows = append(rows, row)
	}
	return rows
}

// buildTree rebuilds a store from rows ordered by order_index. Rows that
// cannot be attached, such as orphans or children of tasks, fail with
// ErrCorruptMap.
func buildTree(rows []*domain.MapNode) (*tree.Store, error) {
	childrenByParent := make(map[string][]*domain.MapNode)
	for _, row := range rows {
		key := ""
		if row.ParentID != nil {
			key = *row.ParentID
		}
		childrenByParent[key] = append(childrenByParent[key], row)
	}

	s := tree.NewStore()
	attached := 0
	var attach func(parentID string, parent domain.Path) error
	attach = func(parentID string, parent domain.Path) error {
		for _, row := range childrenByParent[parentID] {
			var child *tree.Node
			if row.Kind == domain.NodeTask {
				rec := domain.DefaultTaskRecord()
				if row.Task != nil {
					rec = *row.Task
				}
				child = tree.Task(row.Name, rec)
			} else {
				child = tree.Branch(row.Name)
			}
			if err := s.AddChild(parent, child); err != nil {
				return fmt.Errorf("%w: node %s: %v", ErrCorruptMap, row.ID, err)
			}
			attached++
			if err := attach(row.ID, parent.Child(row.Name)); err != nil {
				return err
			}
		}
		return nil
	}
	if err := attach("", domain.Path{}); err != nil {
		return nil, err
	}
	if attached != len(rows) {
		return nil, fmt.Errorf("%w: %d of %d nodes unreachable from the root", ErrCorruptMap, len(rows)-attached, len(rows))
	}
	return s, nil
}

func validateRecord(rec domain.TaskRecord) error {
	problems := rec.Validate()
	if len(problems) == 0 {
		return nil
	}
	msgs := make([]string, len(problems))
	for i, p := range problems {
		msgs[i] = p.Error()
	}
	return fmt.Errorf("%w: %s", ErrInvalidTask, strings.Join(msgs, "; "))
}

// countKinds returns the number of branches and tasks in s.
func countKinds(s *tree.Store) (branches, tasks int) {
	for _, n := range s.Walk() {
		if n.IsTask() {
			tasks++
		} else {
			branches++
		}
	}
	return branches, tasks
}
