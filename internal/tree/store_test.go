package tree

import (
	"slices"
	"testing"

	"github.com/alexanderramin/opsmap/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectPaths(s *Store) []string {
	var out []string
	for p := range s.Paths() {
		out = append(out, domain.EncodePath(p))
	}
	return out
}

// sampleStore builds:
//
//	Sales
//	  Invoicing (task)
//	  Field
//	    North (task)
//	Support
func sampleStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore()
	require.NoError(t, s.AddBranch(nil, "Sales"))
	require.NoError(t, s.AddTask(domain.Path{"Sales"}, "Invoicing", domain.DefaultTaskRecord()))
	require.NoError(t, s.AddBranch(domain.Path{"Sales"}, "Field"))
	require.NoError(t, s.AddTask(domain.Path{"Sales", "Field"}, "North", domain.TaskRecord{
		Content: "Visit clients", Frequency: domain.FrequencyDaily, Importance: 5, EffortHours: 10, EstimateMin: 90,
	}))
	require.NoError(t, s.AddBranch(domain.Path{}, "Support"))
	return s
}

func TestScenario_AddTopLevelDepartment(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.AddBranch(domain.Path{}, "Sales"))
	assert.Equal(t, []string{"Sales"}, collectPaths(s))
}

func TestScenario_AddTaskUnderDepartment(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.AddBranch(domain.Path{}, "Sales"))
	require.NoError(t, s.AddTask(domain.Path{"Sales"}, "Invoicing", domain.TaskRecord{
		Frequency: domain.FrequencyWeekly, Importance: 3,
	}))

	n, ok := s.Get(domain.Path{"Sales", "Invoicing"})
	require.True(t, ok)
	assert.True(t, IsTaskNode(n))
	rec, ok := n.Record()
	require.True(t, ok)
	assert.Equal(t, domain.FrequencyWeekly, rec.Frequency)
}

func TestScenario_DeleteDepartmentRemovesSubtree(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.AddBranch(domain.Path{}, "Sales"))
	require.NoError(t, s.AddTask(domain.Path{"Sales"}, "Invoicing", domain.DefaultTaskRecord()))

	require.NoError(t, s.DeleteSubtree(domain.Path{"Sales"}))
	assert.Empty(t, collectPaths(s))
}

func TestScenario_GetMissingIsAbsent(t *testing.T) {
	s := NewStore()
	n, ok := s.Get(domain.Path{"NoSuchDept"})
	assert.False(t, ok)
	assert.Nil(t, n)
}

func TestScenario_AddUnderMissingParentIsNoOp(t *testing.T) {
	s := NewStore()
	before := s.Clone()
	err := s.AddBranch(domain.Path{"NoSuchDept"}, "X")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.True(t, s.Equal(before))
	assert.Equal(t, 0, s.Len())
}

func TestPaths_PreOrderInsertionOrder(t *testing.T) {
	s := sampleStore(t)
	assert.Equal(t, []string{
		"Sales",
		"Sales/Invoicing",
		"Sales/Field",
		"Sales/Field/North",
		"Support",
	}, collectPaths(s))
}

func TestPaths_Restartable(t *testing.T) {
	s := sampleStore(t)
	first := collectPaths(s)
	second := collectPaths(s)
	assert.Equal(t, first, second)
}

func TestPaths_EarlyBreak(t *testing.T) {
	s := sampleStore(t)
	var got []string
	for p := range s.Paths() {
		got = append(got, p.String())
		if len(got) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"Sales", "Sales/Invoicing"}, got)
}

func TestPaths_YieldedPathsAreIndependent(t *testing.T) {
	s := sampleStore(t)
	var all []domain.Path
	for p := range s.Paths() {
		all = append(all, p)
	}
	all[0][0] = "mutated"
	assert.Equal(t, "Sales", collectPaths(s)[0])
	assert.Equal(t, domain.Path{"Sales", "Field", "North"}, all[3])
}

func TestPaths_RoundTripThroughCodec(t *testing.T) {
	s := sampleStore(t)
	for p := range s.Paths() {
		assert.True(t, p.Equal(domain.DecodePath(domain.EncodePath(p))), "path %v", p)
	}
}

func TestGet_RootForEmptyPath(t *testing.T) {
	s := sampleStore(t)
	n, ok := s.Get(domain.Path{})
	require.True(t, ok)
	assert.Same(t, s.Root(), n)
	assert.Equal(t, 2, n.Len())
}

func TestGet_ThroughTaskIsAbsent(t *testing.T) {
	s := sampleStore(t)
	_, ok := s.Get(domain.Path{"Sales", "Invoicing", "Deeper"})
	assert.False(t, ok)
}

func TestAddChild_UnderTaskFails(t *testing.T) {
	s := sampleStore(t)
	before := s.Clone()
	err := s.AddBranch(domain.Path{"Sales", "Invoicing"}, "Sub")
	assert.ErrorIs(t, err, ErrNotBranch)
	assert.True(t, s.Equal(before))
}

func TestAddChild_DuplicateFailsWithoutOverwrite(t *testing.T) {
	s := sampleStore(t)
	err := s.AddBranch(domain.Path{"Sales"}, "Invoicing")
	assert.ErrorIs(t, err, ErrAlreadyExists)

	n, _ := s.Get(domain.Path{"Sales", "Invoicing"})
	assert.True(t, n.IsTask(), "original node must be untouched")
}

func TestAddChild_OverwriteReplacesInPlace(t *testing.T) {
	s := sampleStore(t)
	require.NoError(t, s.AddBranch(domain.Path{"Sales"}, "Invoicing", WithOverwrite()))

	n, ok := s.Get(domain.Path{"Sales", "Invoicing"})
	require.True(t, ok)
	assert.False(t, n.IsTask())
	// Position among siblings is preserved.
	assert.Equal(t, []string{"Sales", "Sales/Invoicing", "Sales/Field", "Sales/Field/North", "Support"}, collectPaths(s))
}

func TestAddChild_InvalidNames(t *testing.T) {
	s := NewStore()
	assert.ErrorIs(t, s.AddBranch(nil, ""), ErrInvalidName)
	assert.ErrorIs(t, s.AddBranch(nil, "R/D"), ErrInvalidName)
	assert.ErrorIs(t, s.AddChild(nil, nil), ErrInvalidName)
	assert.Equal(t, 0, s.Len())
}

func TestAddDelete_Inverse(t *testing.T) {
	parents := []domain.Path{{}, {"Sales"}, {"Sales", "Field"}, {"Support"}}
	for _, parent := range parents {
		t.Run(parent.String(), func(t *testing.T) {
			s := sampleStore(t)
			before := s.Clone()
			require.NoError(t, s.AddBranch(parent, "Temp"))
			require.NoError(t, s.DeleteSubtree(parent.Child("Temp")))
			assert.True(t, s.Equal(before))
			assert.Equal(t, collectPaths(before), collectPaths(s))
		})
	}
}

func TestDeleteSubtree_MissingIsTypedFailure(t *testing.T) {
	s := sampleStore(t)
	before := s.Clone()

	assert.ErrorIs(t, s.DeleteSubtree(domain.Path{"Nope"}), ErrNotFound)
	assert.ErrorIs(t, s.DeleteSubtree(domain.Path{"Nope", "Deeper"}), ErrNotFound)
	assert.ErrorIs(t, s.DeleteSubtree(domain.Path{"Sales", "Invoicing", "X"}), ErrNotFound)
	assert.ErrorIs(t, s.DeleteSubtree(domain.Path{}), ErrRootPath)
	assert.True(t, s.Equal(before))
}

func TestDeleteSubtree_Nested(t *testing.T) {
	s := sampleStore(t)
	require.NoError(t, s.DeleteSubtree(domain.Path{"Sales", "Field"}))
	assert.Equal(t, []string{"Sales", "Sales/Invoicing", "Support"}, collectPaths(s))
}

func TestRename_KeepsPositionAndChildren(t *testing.T) {
	s := sampleStore(t)
	require.NoError(t, s.Rename(domain.Path{"Sales"}, "Revenue"))
	assert.Equal(t, []string{
		"Revenue",
		"Revenue/Invoicing",
		"Revenue/Field",
		"Revenue/Field/North",
		"Support",
	}, collectPaths(s))
}

func TestRename_Errors(t *testing.T) {
	s := sampleStore(t)
	assert.ErrorIs(t, s.Rename(domain.Path{"Sales"}, "Support"), ErrAlreadyExists)
	assert.ErrorIs(t, s.Rename(domain.Path{"Nope"}, "X"), ErrNotFound)
	assert.ErrorIs(t, s.Rename(domain.Path{"Sales"}, "a/b"), ErrInvalidName)
	assert.ErrorIs(t, s.Rename(domain.Path{}, "X"), ErrRootPath)
	assert.NoError(t, s.Rename(domain.Path{"Sales"}, "Sales"))
}

func TestSetTask_ReplacesWholeRecord(t *testing.T) {
	s := sampleStore(t)
	rec := domain.TaskRecord{Content: "Bill", Frequency: domain.FrequencyMonthly, Importance: 4, EffortHours: 2, EstimateMin: 15}
	require.NoError(t, s.SetTask(domain.Path{"Sales", "Invoicing"}, rec))

	got, err := s.Task(domain.Path{"Sales", "Invoicing"})
	require.NoError(t, err)
	assert.Equal(t, rec, got)
}

func TestSetTask_ConvertsEmptyDepartment(t *testing.T) {
	s := sampleStore(t)
	require.NoError(t, s.SetTask(domain.Path{"Support"}, domain.DefaultTaskRecord()))
	n, _ := s.Get(domain.Path{"Support"})
	assert.True(t, n.IsTask())
}

func TestSetTask_Errors(t *testing.T) {
	s := sampleStore(t)
	assert.ErrorIs(t, s.SetTask(domain.Path{"Sales"}, domain.DefaultTaskRecord()), ErrHasChildren)
	assert.ErrorIs(t, s.SetTask(domain.Path{"Nope"}, domain.DefaultTaskRecord()), ErrNotFound)
	assert.ErrorIs(t, s.SetTask(domain.Path{}, domain.DefaultTaskRecord()), ErrRootPath)

	_, err := s.Task(domain.Path{"Sales"})
	assert.ErrorIs(t, err, ErrNotTask)
}

func TestTaskTagging_Invariant(t *testing.T) {
	s := sampleStore(t)
	for p, n := range s.Walk() {
		_, hasRecord := n.Record()
		assert.Equal(t, IsTaskNode(n), hasRecord, "path %v", p)
		if n.IsTask() {
			assert.Zero(t, n.Len(), "task %v must not have children", p)
		}
	}
}

func TestClone_IsDeep(t *testing.T) {
	s := sampleStore(t)
	c := s.Clone()
	require.NoError(t, c.DeleteSubtree(domain.Path{"Sales"}))
	assert.Len(t, collectPaths(s), 5)
	assert.False(t, s.Equal(c))
}

func TestSeed(t *testing.T) {
	s := Seed()
	assert.Equal(t, []string{"Headquarters", "Headquarters/Accounting", "Headquarters/Human Resources"}, collectPaths(s))
	rec, err := s.Task(domain.Path{"Headquarters", "Accounting"})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultTaskRecord(), rec)
}

func TestEntries(t *testing.T) {
	s := sampleStore(t)
	entries := s.Entries()
	require.Len(t, entries, 5)

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ID)
	}
	assert.True(t, slices.Equal(collectPaths(s), ids))

	assert.Equal(t, 0, entries[0].Depth)
	assert.False(t, entries[0].IsLast)
	assert.True(t, entries[1].IsTask)
	assert.Equal(t, "Invoicing", entries[1].Label)
	assert.True(t, entries[2].IsLast, "Field is the last child of Sales")
	assert.Equal(t, 2, entries[3].Depth)
	assert.Equal(t, 5, entries[3].Record.Importance)
	assert.True(t, entries[4].IsLast)
}

func TestRollup(t *testing.T) {
	s := sampleStore(t)
	require.NoError(t, s.SetTask(domain.Path{"Sales", "Invoicing"}, domain.TaskRecord{
		Frequency: domain.FrequencyWeekly, Importance: 1, EffortHours: 2, EstimateMin: 30,
	}))

	r, err := s.Rollup(domain.Path{"Sales"})
	require.NoError(t, err)
	assert.Equal(t, 2, r.Tasks)
	assert.Equal(t, 1, r.Departments)
	assert.InDelta(t, 12.0, r.EffortHours, 1e-9)
	assert.InDelta(t, 120.0, r.EstimateMin, 1e-9)
	assert.InDelta(t, 3.0, r.MeanImportance, 1e-9)
	assert.Equal(t, 1, r.ByFrequency[domain.FrequencyDaily])

	empty, err := s.Rollup(domain.Path{"Support"})
	require.NoError(t, err)
	assert.Zero(t, empty.Tasks)
	assert.Zero(t, empty.MeanImportance)

	_, err = s.Rollup(domain.Path{"Nope"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNode_BuilderHelpers(t *testing.T) {
	s := NewStore()
	hq := s.Root().AddBranch("HQ")
	hq.AddTask("Payroll", domain.DefaultTaskRecord())
	assert.Same(t, hq, s.Root().AddBranch("HQ"), "AddBranch returns the existing department")

	assert.Equal(t, []string{"HQ", "HQ/Payroll"}, collectPaths(s))
	assert.Panics(t, func() { hq.AddTask("Payroll", domain.DefaultTaskRecord()) })
}
