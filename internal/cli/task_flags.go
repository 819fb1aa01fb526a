package cli

import (
	"fmt"

	"github.com/alexanderramin/opsmap/internal/domain"
	"github.com/spf13/pflag"
)

// taskFlags binds the five task record fields to a flag set. Only flags
// the user actually set are applied, so a partial edit keeps the rest of
// the record.
type taskFlags struct {
	content    string
	frequency  string
	importance int
	effort     float64
	estimate   float64
}

const (
	flagContent    = "content"
	flagFrequency  = "frequency"
	flagImportance = "importance"
	flagEffort     = "effort"
	flagEstimate   = "estimate"
)

func (f *taskFlags) register(fs *pflag.FlagSet) {
	def := domain.DefaultTaskRecord()
	fs.StringVar(&f.content, flagContent, def.Content, "Task description")
	fs.StringVar(&f.frequency, flagFrequency, string(def.Frequency), "How often the task runs (daily|weekly|monthly|other)")
	fs.IntVar(&f.importance, flagImportance, def.Importance, "Importance from 1 to 5")
	fs.Float64Var(&f.effort, flagEffort, def.EffortHours, "Effort in hours per week")
	fs.Float64Var(&f.estimate, flagEstimate, def.EstimateMin, "Estimated minutes per run")
}

// anyChanged reports whether any task flag was set.
func (f *taskFlags) anyChanged(fs *pflag.FlagSet) bool {
	for _, name := range []string{flagContent, flagFrequency, flagImportance, flagEffort, flagEstimate} {
		if fs.Changed(name) {
			return true
		}
	}
	return false
}

// overlay copies the set flags onto rec.
func (f *taskFlags) overlay(fs *pflag.FlagSet, rec *domain.TaskRecord) error {
	if fs.Changed(flagContent) {
		rec.Content = f.content
	}
	if fs.Changed(flagFrequency) {
		freq, err := domain.ParseFrequency(f.frequency)
		if err != nil {
			return fmt.Errorf("--%s: %w", flagFrequency, err)
		}
		rec.Frequency = freq
	}
	if fs.Changed(flagImportance) {
		rec.Importance = f.importance
	}
	if fs.Changed(flagEffort) {
		rec.EffortHours = f.effort
	}
	if fs.Changed(flagEstimate) {
		rec.EstimateMin = f.estimate
	}
	return nil
}
