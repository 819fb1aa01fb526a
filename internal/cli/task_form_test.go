package cli

import (
	"testing"

	"github.com/alexanderramin/opsmap/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskFormValues_RoundTrip(t *testing.T) {
	rec := domain.TaskRecord{
		Content:     "Payroll run",
		Frequency:   domain.FrequencyMonthly,
		Importance:  4,
		EffortHours: 1.5,
		EstimateMin: 45,
	}
	v := newTaskFormValues(rec)
	assert.Equal(t, "1.5", v.Effort)
	assert.Equal(t, "45", v.Estimate)

	got, err := v.record()
	require.NoError(t, err)
	assert.Equal(t, rec, got)
}

func TestTaskFormValues_NormalizesOutOfRange(t *testing.T) {
	v := newTaskFormValues(domain.TaskRecord{Frequency: "hourly", Importance: 0})
	assert.Equal(t, domain.FrequencyWeekly, v.Frequency)
	assert.Equal(t, domain.DefaultImportance, v.Importance)
}

func TestTaskFormValues_BlankNumbersAreZero(t *testing.T) {
	v := &taskFormValues{Frequency: domain.FrequencyDaily, Importance: 2, Effort: " ", Estimate: ""}
	got, err := v.record()
	require.NoError(t, err)
	assert.Zero(t, got.EffortHours)
	assert.Zero(t, got.EstimateMin)
}

func TestValidateNonNegativeFloat(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"", false},
		{"0", false},
		{"2.25", false},
		{"-1", true},
		{"abc", true},
		{"NaN", true},
		{"+Inf", true},
		{"-Inf", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := validateNonNegativeFloat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTaskForm_Builds(t *testing.T) {
	v := newTaskFormValues(domain.DefaultTaskRecord())
	assert.NotNil(t, taskForm("HQ/Accounting", v))
	assert.NotNil(t, opsmapHuhTheme())
}

func TestParsePath(t *testing.T) {
	assert.Equal(t, domain.Path{}, parsePath(""))
	assert.Equal(t, domain.Path{}, parsePath("/"))
	assert.Equal(t, domain.Path{"Sales", "Field"}, parsePath("/Sales/Field/"))
	assert.Equal(t, domain.Path{"Human Resources"}, parsePath(" Human Resources "))
}
