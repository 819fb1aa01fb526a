package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alexanderramin/opsmap/internal/domain"
	"github.com/alexanderramin/opsmap/internal/tree"
	"github.com/google/uuid"
)

var testMapCounter atomic.Int64

// NewTestMap returns an unsaved map. An empty name gets a unique one.
func NewTestMap(name string) *domain.OrgMap {
	if name == "" {
		name = fmt.Sprintf("test-map-%02d", testMapCounter.Add(1))
	}
	now := time.Now().UTC().Truncate(time.Second)
	return &domain.OrgMap{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// TaskOption adjusts a task record built by NewTestTask.
type TaskOption func(*domain.TaskRecord)

func WithContent(c string) TaskOption {
	return func(r *domain.TaskRecord) { r.Content = c }
}

func WithFrequency(f domain.Frequency) TaskOption {
	return func(r *domain.TaskRecord) { r.Frequency = f }
}

func WithImportance(i int) TaskOption {
	return func(r *domain.TaskRecord) { r.Importance = i }
}

func WithEffort(hours float64) TaskOption {
	return func(r *domain.TaskRecord) { r.EffortHours = hours }
}

func WithEstimate(minutes float64) TaskOption {
	return func(r *domain.TaskRecord) { r.EstimateMin = minutes }
}

// NewTestTask returns a default record with opts applied.
func NewTestTask(opts ...TaskOption) domain.TaskRecord {
	rec := domain.DefaultTaskRecord()
	for _, opt := range opts {
		opt(&rec)
	}
	return rec
}

// SampleTree builds a small organization:
//
//	Sales
//	  Invoicing (task, monthly, importance 4)
//	  Field
//	    North (task, daily, importance 5)
//	Support
//	  Helpdesk (task)
func SampleTree(t *testing.T) *tree.Store {
	t.Helper()
	s := tree.NewStore()
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("building sample tree: %v", err)
		}
	}
	must(s.AddBranch(domain.Path{}, "Sales"))
	must(s.AddTask(domain.Path{"Sales"}, "Invoicing", NewTestTask(
		WithContent("Send invoices"), WithFrequency(domain.FrequencyMonthly), WithImportance(4), WithEffort(3), WithEstimate(45),
	)))
	must(s.AddBranch(domain.Path{"Sales"}, "Field"))
	must(s.AddTask(domain.Path{"Sales", "Field"}, "North", NewTestTask(
		WithContent("Visit clients"), WithFrequency(domain.FrequencyDaily), WithImportance(5), WithEffort(10), WithEstimate(90),
	)))
	must(s.AddBranch(domain.Path{}, "Support"))
	must(s.AddTask(domain.Path{"Support"}, "Helpdesk", NewTestTask()))
	return s
}

// Paths returns the encoded paths of s in traversal order.
func Paths(s *tree.Store) []string {
	out := []string{}
	for p := range s.Paths() {
		out = append(out, domain.EncodePath(p))
	}
	return out
}
