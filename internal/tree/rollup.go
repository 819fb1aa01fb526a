package tree

import (
	"fmt"

	"github.com/alexanderramin/opsmap/internal/domain"
)

// Rollup aggregates the tasks beneath a department.
type Rollup struct {
	Departments    int
	Tasks          int
	EffortHours    float64 // summed hours/week
	EstimateMin    float64 // summed minutes/task
	MeanImportance float64 // 0 when there are no tasks
	ByFrequency    map[domain.Frequency]int
}

// Rollup computes aggregates for the subtree at path, excluding the node
// itself. On a task node it reports that single task.
func (s *Store) Rollup(path domain.Path) (Rollup, error) {
	n, ok := s.Get(path)
	if !ok {
		return Rollup{}, fmt.Errorf("rollup %q: %w", path.String(), ErrNotFound)
	}
	r := Rollup{ByFrequency: make(map[domain.Frequency]int)}
	importance := 0
	add := func(rec domain.TaskRecord) {
		r.Tasks++
		r.EffortHours += rec.EffortHours
		r.EstimateMin += rec.EstimateMin
		r.ByFrequency[rec.Frequency]++
		importance += rec.Importance
	}
	if n.IsTask() {
		add(n.task)
	} else {
		sub := &Store{root: n}
		for _, c := range sub.Walk() {
			if c.IsTask() {
				add(c.task)
			} else {
				r.Departments++
			}
		}
	}
	if r.Tasks > 0 {
		r.MeanImportance = float64(importance) / float64(r.Tasks)
	}
	return r, nil
}
