package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/opsmap/internal/cli/formatter"
	"github.com/alexanderramin/opsmap/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// opsmapHuhTheme returns a custom huh theme using the Gruvbox palette.
func opsmapHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// taskFormValues backs the task edit form. Numbers are edited as text and
// converted after validation.
type taskFormValues struct {
	Content    string
	Frequency  domain.Frequency
	Importance int
	Effort     string
	Estimate   string
}

func newTaskFormValues(rec domain.TaskRecord) *taskFormValues {
	freq := rec.Frequency
	if !freq.Valid() {
		freq = domain.FrequencyWeekly
	}
	importance := rec.Importance
	if importance < domain.MinImportance || importance > domain.MaxImportance {
		importance = domain.DefaultImportance
	}
	return &taskFormValues{
		Content:    rec.Content,
		Frequency:  freq,
		Importance: importance,
		Effort:     formatter.FormatNumber(rec.EffortHours),
		Estimate:   formatter.FormatNumber(rec.EstimateMin),
	}
}

// record converts the form values back into a TaskRecord.
func (v *taskFormValues) record() (domain.TaskRecord, error) {
	effort, err := parseNonNegativeFloat(v.Effort)
	if err != nil {
		return domain.TaskRecord{}, fmt.Errorf("effort: %w", err)
	}
	estimate, err := parseNonNegativeFloat(v.Estimate)
	if err != nil {
		return domain.TaskRecord{}, fmt.Errorf("estimate: %w", err)
	}
	return domain.TaskRecord{
		Content:     strings.TrimSpace(v.Content),
		Frequency:   v.Frequency,
		Importance:  v.Importance,
		EffortHours: effort,
		EstimateMin: estimate,
	}, nil
}

// taskForm builds the themed edit form for the task at title.
func taskForm(title string, v *taskFormValues) *huh.Form {
	freqOptions := make([]huh.Option[domain.Frequency], 0, len(domain.Frequencies))
	for _, f := range domain.Frequencies {
		freqOptions = append(freqOptions, huh.NewOption(string(f), f))
	}
	importanceOptions := make([]huh.Option[int], 0, domain.MaxImportance)
	for i := domain.MinImportance; i <= domain.MaxImportance; i++ {
		importanceOptions = append(importanceOptions, huh.NewOption(fmt.Sprintf("%d %s", i, strings.Repeat("★", i)), i))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Task: "+title).
				Description("What the task involves").
				Value(&v.Content),
			huh.NewSelect[domain.Frequency]().
				Title("Frequency").
				Options(freqOptions...).
				Value(&v.Frequency),
			huh.NewSelect[int]().
				Title("Importance").
				Options(importanceOptions...).
				Value(&v.Importance),
			huh.NewInput().
				Title("Effort (hours/week)").
				Placeholder("0").
				Value(&v.Effort).
				Validate(validateNonNegativeFloat),
			huh.NewInput().
				Title("Estimate (minutes/run)").
				Placeholder("0").
				Value(&v.Estimate).
				Validate(validateNonNegativeFloat),
		),
	).WithTheme(opsmapHuhTheme()).WithShowHelp(false)
}

// parseNonNegativeFloat treats empty input as zero.
func parseNonNegativeFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || !domain.IsFiniteNonNegative(v) {
		return 0, fmt.Errorf("enter a non-negative number")
	}
	return v, nil
}

// validateNonNegativeFloat accepts empty or a non-negative number.
func validateNonNegativeFloat(s string) error {
	_, err := parseNonNegativeFloat(s)
	return err
}
