package treefile

import (
	"bytes"
	"strings"
	"testing"

	"github.com/alexanderramin/opsmap/internal/domain"
	"github.com/alexanderramin/opsmap/internal/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paths(s *tree.Store) []string {
	var out []string
	for p := range s.Paths() {
		out = append(out, p.String())
	}
	return out
}

func TestExport_Format(t *testing.T) {
	s := tree.NewStore()
	require.NoError(t, s.AddBranch(nil, "Sales"))
	require.NoError(t, s.AddTask(domain.Path{"Sales"}, "Invoicing", domain.TaskRecord{
		Content: "Send <invoices> & chase", Frequency: domain.FrequencyMonthly, Importance: 4, EffortHours: 1.5, EstimateMin: 20,
	}))
	require.NoError(t, s.AddBranch(nil, "Empty"))

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, s))

	want := `{
  "Sales": {
    "Invoicing": {
      "content": "Send <invoices> & chase",
      "frequency": "monthly",
      "importance": 4,
      "effort": 1.5,
      "estimate": 20
    }
  },
  "Empty": {}
}
`
	assert.Equal(t, want, buf.String())
}

func TestExport_EmptyTree(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, tree.NewStore()))
	assert.Equal(t, "{}\n", buf.String())
}

func TestRoundTrip_PreservesOrderAndRecords(t *testing.T) {
	s := tree.Seed()
	require.NoError(t, s.AddBranch(nil, "Zeta"))
	require.NoError(t, s.AddBranch(nil, "Alpha"))
	require.NoError(t, s.AddTask(domain.Path{"Alpha"}, "Audit", domain.TaskRecord{
		Content: "年次監査", Frequency: domain.FrequencyOther, Importance: 5, EffortHours: 0.25, EstimateMin: 240,
	}))

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, s))

	got, err := Import(&buf)
	require.NoError(t, err)
	assert.True(t, s.Equal(got))
	assert.Equal(t, paths(s), paths(got))
}

func TestImport_LegacyPrototypeFile(t *testing.T) {
	doc := `{
	  "経営本部": {
	    "経理部": {"業務": "", "頻度": "毎週", "重要度": 3, "工数": 0.0, "時間目安": 0.0},
	    "人事部": {"業務": "採用", "頻度": "毎日", "重要度": 5, "工数": 4.5, "時間目安": 30}
	  }
	}`
	s, err := Import(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, []string{"経営本部", "経営本部/経理部", "経営本部/人事部"}, paths(s))

	rec, err := s.Task(domain.Path{"経営本部", "人事部"})
	require.NoError(t, err)
	assert.Equal(t, domain.TaskRecord{Content: "採用", Frequency: domain.FrequencyDaily, Importance: 5, EffortHours: 4.5, EstimateMin: 30}, rec)
}

func TestImport_TaskWithMissingFieldsIsDefaulted(t *testing.T) {
	s, err := Import(strings.NewReader(`{"Ops": {"Backup": {"content": "nightly"}}}`))
	require.NoError(t, err)
	rec, err := s.Task(domain.Path{"Ops", "Backup"})
	require.NoError(t, err)
	assert.Equal(t, "nightly", rec.Content)
	assert.Equal(t, domain.FrequencyWeekly, rec.Frequency)
	assert.Equal(t, 3, rec.Importance)
}

func TestImport_FailsClosed(t *testing.T) {
	cases := map[string]string{
		"not json":          `{"Sales": `,
		"top-level array":   `[1, 2]`,
		"scalar child":      `{"Sales": 3}`,
		"array child":       `{"Sales": []}`,
		"task root":         `{"content": "x"}`,
		"mixed node":        `{"Sales": {"content": "", "Sub": {}}}`,
		"bad importance":    `{"Sales": {"T": {"content": "", "importance": 9}}}`,
		"bad frequency":     `{"Sales": {"T": {"content": "", "frequency": "hourly"}}}`,
		"bad type":          `{"Sales": {"T": {"content": 1}}}`,
		"delimiter in name": `{"R/D": {}}`,
		"duplicate sibling": `{"Sales": {}, "Sales": {}}`,
		"trailing data":     `{} {}`,
		"empty input":       ``,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			s, err := Import(strings.NewReader(doc))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformed)
			assert.Nil(t, s)
		})
	}
}

func TestImport_ReportsEveryProblem(t *testing.T) {
	doc := `{"A": 1, "B": {"T": {"content": "", "importance": 0}}, "C/D": {}}`
	_, err := Import(strings.NewReader(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "3 problems")
	assert.Contains(t, err.Error(), `"A"`)
	assert.Contains(t, err.Error(), `"B/T"`)
}
